// ==============================================================================================
// FILE: evaluator/evaluator_test.go
// ==============================================================================================
// PURPOSE: End-to-end Eval tests driven through the real lexer/parser
//          pipeline — arithmetic, identifier resolution, and bindings.
// ==============================================================================================

package evaluator

import (
	"strings"
	"testing"

	"github.com/kei-lang/kei/ast"
	"github.com/kei-lang/kei/lexer"
	"github.com/kei-lang/kei/object"
	"github.com/kei-lang/kei/parser"
)

// newParserRun parses input and fails the test on any parser error,
// returning the resulting program for tests that need to drive evaluation
// manually (e.g. reaching into the generator it produced).
func newParserRun(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(input))
	program := p.ParseProgram()
	if errs := p.Errors(); errs != nil && errs.Len() > 0 {
		t.Fatalf("parser errors: %v", errs)
	}
	return program
}

func run(t *testing.T, input string) object.Value {
	t.Helper()
	program := newParserRun(t, input)
	e := New(nil)
	return e.Run(program)
}

func requireInt(t *testing.T, v object.Value, want int64) {
	t.Helper()
	i, ok := v.(*object.Integer)
	if !ok {
		t.Fatalf("expected *object.Integer, got %T (%s)", v, v.Inspect())
	}
	if i.Value != want {
		t.Errorf("expected %d, got %d", want, i.Value)
	}
}

func requireAnomaly(t *testing.T, v object.Value) *anomaly {
	t.Helper()
	a, ok := v.(*anomaly)
	if !ok {
		t.Fatalf("expected an anomaly, got %T (%s)", v, v.Inspect())
	}
	return a
}

func TestIntegerArithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"2 + 3 * 4\n", 14},
		{"(2 + 3) * 4\n", 20},
		{"7 // 2\n", 3},
		{"-7 // 2\n", -4},
		{"7 % -2\n", -1},
		{"2 ** 10\n", 1024},
	}
	for _, tt := range tests {
		requireInt(t, run(t, tt.input), tt.want)
	}
}

func TestDivisionByZeroIsAnomaly(t *testing.T) {
	a := requireAnomaly(t, run(t, "1 / 0\n"))
	if a.Message != "division by zero" {
		t.Errorf("unexpected message: %s", a.Message)
	}
}

func TestFloatDivisionPromotion(t *testing.T) {
	v := run(t, "7 / 2\n")
	f, ok := v.(*object.Float)
	if !ok {
		t.Fatalf("expected *object.Float, got %T", v)
	}
	if f.Value != 3.5 {
		t.Errorf("expected 3.5, got %v", f.Value)
	}
}

func TestStringConcatAndRepeat(t *testing.T) {
	v := run(t, `"ab" + "cd"` + "\n")
	s, ok := v.(*object.String)
	if !ok || s.Value != "abcd" {
		t.Fatalf("expected \"abcd\", got %#v", v)
	}
	v = run(t, `"ab" * 3` + "\n")
	s, ok = v.(*object.String)
	if !ok || s.Value != "ababab" {
		t.Fatalf("expected \"ababab\", got %#v", v)
	}
}

func TestAndOrShortCircuit(t *testing.T) {
	v := run(t, "false and (1 / 0)\n")
	b, ok := v.(*object.Boolean)
	if !ok || b.Value != false {
		t.Fatalf("expected false without evaluating right side, got %#v", v)
	}
	v = run(t, "true or (1 / 0)\n")
	b, ok = v.(*object.Boolean)
	if !ok || b.Value != true {
		t.Fatalf("expected true without evaluating right side, got %#v", v)
	}
}

func TestDesignateAndAssign(t *testing.T) {
	requireInt(t, run(t, "designate x = 5\nx = x + 1\nx\n"), 6)
}

func TestWalrusUpdatesExistingBinding(t *testing.T) {
	requireInt(t, run(t, "designate x = 1\nx := x + 41\nx\n"), 42)
}

func TestUnresolvedIdentifierSuggestsCloseMatch(t *testing.T) {
	a := requireAnomaly(t, run(t, "designate count = 1\ncoutn\n"))
	if !strings.Contains(a.Message, "unresolved identifier") || !strings.Contains(a.Message, "count") {
		t.Errorf("expected a did-you-mean suggestion, got: %s", a.Message)
	}
}

func TestListDestructuringAssignment(t *testing.T) {
	v := run(t, "designate values = [1, 2, 3, 4]\n[a, b, *rest] = values\nrest\n")
	l, ok := v.(*object.List)
	if !ok {
		t.Fatalf("expected *object.List, got %T", v)
	}
	if len(l.Elements) != 2 {
		t.Fatalf("expected 2 rest elements, got %d", len(l.Elements))
	}
	requireInt(t, l.Elements[0], 3)
	requireInt(t, l.Elements[1], 4)
}
