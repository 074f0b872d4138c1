// ==============================================================================================
// FILE: repl/repl.go
// ==============================================================================================
// PACKAGE: repl
// PURPOSE: The Read-Eval-Print Loop. Implements spec.md §6.1's `:`-continuation
//          protocol: a line ending in `:` opens an indented block, read with
//          the `... ` prompt until a blank line closes it, then the whole
//          buffered block is parsed and executed as one program. The literal
//          token `conclude` exits the session.
// ==============================================================================================

package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kei-lang/kei/evaluator"
	"github.com/kei-lang/kei/lexer"
	"github.com/kei-lang/kei/object"
	"github.com/kei-lang/kei/parser"
)

const (
	prompt         = ">> "
	continuePrompt = "... "
)

// Start launches the REPL, reading lines from in and writing prompts and
// results to out, using sink as the evaluator's voice channel (spec.md
// §6.2) for scheme/preview/override/absolute/anomaly/error events.
func Start(in io.Reader, out io.Writer, sink evaluator.MessageSink) {
	scanner := bufio.NewScanner(in)
	e := evaluator.New(sink)

	sink.Emit("repl", "banner")
	fmt.Fprintln(out, "kei REPL — type 'conclude' to exit.")

	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			sink.Emit("repl", "goodbye")
			return
		}
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed == "conclude" {
			sink.Emit("repl", "goodbye")
			return
		}

		buf := line
		if strings.HasSuffix(strings.TrimRight(line, " \t"), ":") {
			for {
				fmt.Fprint(out, continuePrompt)
				if !scanner.Scan() {
					break
				}
				cont := scanner.Text()
				if strings.TrimSpace(cont) == "" {
					break
				}
				buf += "\n" + cont
			}
		}

		evalAndPrint(out, e, sink, buf)
	}
}

func evalAndPrint(out io.Writer, e *evaluator.Evaluator, sink evaluator.MessageSink, source string) {
	p := parser.New(lexer.New(source))
	program := p.ParseProgram()
	if errs := p.Errors(); errs != nil && errs.Len() > 0 {
		fmt.Fprintf(out, "parse error: %s\n", errs.Error())
		return
	}

	result := e.Run(program)
	if result == nil || result == object.NULL {
		return
	}
	if result.Type() == "ANOMALY" {
		sink.Emit("error", result.Inspect())
		fmt.Fprintf(out, "error: %s\n", result.Inspect())
		return
	}
	fmt.Fprintln(out, result.Inspect())
}
