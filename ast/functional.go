// ==============================================================================================
// FILE: ast/functional.go
// PACKAGE: ast
// PURPOSE: The two comprehension-flavored expression forms: parenthesized
//          generator expressions (build a lazy Generator) and bracketed
//          list comprehensions (build a materialized List).
// ==============================================================================================

package ast

import "github.com/kei-lang/kei/token"

// GeneratorExpression is `(result for var through iterable [where cond])`.
// Evaluating it produces a Generator value, not a List — the sequence is
// pulled lazily via proceed/transmit like any sequence-flagged Protocol.
type GeneratorExpression struct {
	Token     token.Token
	Result    Expression
	Var       Expression
	Iterable  Expression
	Condition Expression
}

func (g *GeneratorExpression) expressionNode()      {}
func (g *GeneratorExpression) TokenLiteral() string { return g.Token.Literal }
func (g *GeneratorExpression) Pos() (int, int)      { return posOf(g.Token) }
func (g *GeneratorExpression) String() string {
	out := "(" + g.Result.String() + " for " + g.Var.String() + " through " + g.Iterable.String()
	if g.Condition != nil {
		out += " where " + g.Condition.String()
	}
	return out + ")"
}

// ListComprehension is `[result cycle through iterable as var [foresee cond]]`.
// Evaluating it eagerly materializes a List.
type ListComprehension struct {
	Token     token.Token
	Result    Expression
	Var       Expression
	Iterable  Expression
	Condition Expression
}

func (l *ListComprehension) expressionNode()      {}
func (l *ListComprehension) TokenLiteral() string { return l.Token.Literal }
func (l *ListComprehension) Pos() (int, int)      { return posOf(l.Token) }
func (l *ListComprehension) String() string {
	out := "[" + l.Result.String() + " cycle through " + l.Iterable.String() + " as " + l.Var.String()
	if l.Condition != nil {
		out += " foresee " + l.Condition.String()
	}
	return out + "]"
}
