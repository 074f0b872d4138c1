// ==============================================================================================
// FILE: repl/repl_test.go
// ==============================================================================================
// PURPOSE: Unit tests for the REPL's `:`-continuation protocol, variable
//          persistence across lines, and the `conclude` exit token.
// ==============================================================================================

package repl

import (
	"bytes"
	"strings"
	"testing"
)

type discardSink struct{}

func (discardSink) Emit(string, string) {}

func runSession(input string) string {
	in := strings.NewReader(input)
	var out bytes.Buffer
	Start(in, &out, discardSink{})
	return out.String()
}

func TestREPLSimpleExpression(t *testing.T) {
	output := runSession("10 + 20\nconclude\n")
	if !strings.Contains(output, "30") {
		t.Errorf("expected output to contain 30, got:\n%s", output)
	}
}

func TestREPLVariablePersistsAcrossLines(t *testing.T) {
	input := "designate x = 50\nx = x + 10\nx\nconclude\n"
	output := runSession(input)
	if !strings.Contains(output, "60") {
		t.Errorf("expected output to contain 60, got:\n%s", output)
	}
}

func TestREPLColonContinuationReadsBlock(t *testing.T) {
	input := "foresee true:\n\tdesignate y = 99\n\ty\n\nconclude\n"
	output := runSession(input)
	if !strings.Contains(output, "99") {
		t.Errorf("expected output to contain 99, got:\n%s", output)
	}
}

func TestREPLConcludeExits(t *testing.T) {
	output := runSession("conclude\nthis line should never run\n")
	if strings.Contains(output, "never run") {
		t.Errorf("expected conclude to stop the session immediately, got:\n%s", output)
	}
}
