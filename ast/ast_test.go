package ast

import (
	"testing"

	"github.com/kei-lang/kei/token"
)

func TestProgramString(t *testing.T) {
	prog := &Program{
		Statements: []Statement{
			&DesignateStatement{
				Token: token.Token{Type: token.DESIGNATE, Literal: "designate"},
				Name:  &Identifier{Token: token.Token{Literal: "x"}, Value: "x"},
				Value: &IntegerLiteral{Token: token.Token{Literal: "5"}, Value: 5},
			},
		},
	}
	want := "designate x = 5\n"
	if got := prog.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestInfixExpressionString(t *testing.T) {
	expr := &InfixExpression{
		Token:    token.Token{Literal: "+"},
		Left:     &IntegerLiteral{Token: token.Token{Literal: "1"}, Value: 1},
		Operator: "+",
		Right:    &IntegerLiteral{Token: token.Token{Literal: "2"}, Value: 2},
	}
	want := "(1 + 2)"
	if got := expr.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestForeseeExpressionString(t *testing.T) {
	expr := &ForeseeExpression{
		Value:     &IntegerLiteral{Token: token.Token{Literal: "1"}, Value: 1},
		Condition: &BooleanLiteral{Token: token.Token{Literal: "true"}, Value: true},
		Otherwise: &IntegerLiteral{Token: token.Token{Literal: "0"}, Value: 0},
	}
	want := "1 foresee true otherwise 0"
	if got := expr.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCallExpressionString(t *testing.T) {
	call := &CallExpression{
		Function: &Identifier{Value: "declare"},
		Arguments: []Expression{
			&StringLiteral{Value: "hi"},
			&SpreadExpression{Value: &Identifier{Value: "rest"}},
		},
	}
	want := `declare("hi", ...rest)`
	if got := call.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMemberAndIndexExpressionString(t *testing.T) {
	m := &MemberExpression{
		Object:   &Identifier{Value: "point"},
		Property: &Identifier{Value: "x"},
	}
	if got, want := m.String(), "point.x"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	ix := &IndexExpression{
		Left:  &Identifier{Value: "items"},
		Index: &IntegerLiteral{Token: token.Token{Literal: "0"}, Value: 0},
	}
	if got, want := ix.String(), "(items[0])"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestListPatternString(t *testing.T) {
	p := &ListPattern{
		Elements: []Expression{
			&Identifier{Value: "a"},
			&Identifier{Value: "b"},
			&Identifier{Value: "rest"},
		},
		RestIdx: 2,
	}
	want := "[a, b, *rest]"
	if got := p.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEntityStmtString(t *testing.T) {
	ent := &EntityStmt{
		Name:   &Identifier{Value: "Dog"},
		Parent: &Identifier{Value: "Animal"},
		Methods: []*Protocol{
			{
				Name: &Identifier{Value: "construct"},
				Body: &BlockStatement{},
			},
		},
	}
	got := ent.String()
	if want := "entity Dog inherits Animal:\n"; got[:len(want)] != want {
		t.Fatalf("got %q, want prefix %q", got, want)
	}
}

func TestAttemptStmtString(t *testing.T) {
	a := &AttemptStmt{
		TryBody:     &BlockStatement{},
		ErrorName:   &Identifier{Value: "e"},
		RecoverBody: &BlockStatement{},
	}
	want := "attempt:\nrecover as e:\n"
	if got := a.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestYieldStatementBareAndValued(t *testing.T) {
	bare := &YieldStatement{}
	if got, want := bare.String(), "yield"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	valued := &YieldStatement{Value: &IntegerLiteral{Token: token.Token{Literal: "3"}, Value: 3}}
	if got, want := valued.String(), "yield 3"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
