// ==============================================================================================
// FILE: ast/expressions.go
// PACKAGE: ast
// PURPOSE: Non-literal expression nodes: operators, calls, member/index
//          access, slices, spreads, await, and the postfix foresee/otherwise
//          ternary.
// ==============================================================================================

package ast

import (
	"bytes"
	"strings"

	"github.com/kei-lang/kei/token"
)

// PrefixExpression covers unary `-` and `not`.
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (p *PrefixExpression) expressionNode()      {}
func (p *PrefixExpression) TokenLiteral() string { return p.Token.Literal }
func (p *PrefixExpression) Pos() (int, int)      { return posOf(p.Token) }
func (p *PrefixExpression) String() string {
	return "(" + p.Operator + " " + p.Right.String() + ")"
}

// InfixExpression covers every binary operator, including `and`/`or`, which
// the evaluator short-circuits by operator string rather than by a
// dedicated node — matching the teacher's reuse of one infix node for every
// binary operator.
type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (i *InfixExpression) expressionNode()      {}
func (i *InfixExpression) TokenLiteral() string { return i.Token.Literal }
func (i *InfixExpression) Pos() (int, int)      { return posOf(i.Token) }
func (i *InfixExpression) String() string {
	return "(" + i.Left.String() + " " + i.Operator + " " + i.Right.String() + ")"
}

// AwaitExpression suspends the current protocol until Value (a Promise or
// a Generator) settles.
type AwaitExpression struct {
	Token token.Token
	Value Expression
}

func (a *AwaitExpression) expressionNode()      {}
func (a *AwaitExpression) TokenLiteral() string { return a.Token.Literal }
func (a *AwaitExpression) Pos() (int, int)      { return posOf(a.Token) }
func (a *AwaitExpression) String() string       { return "await " + a.Value.String() }

// ForeseeExpression is the postfix ternary: `<value> foresee <cond> otherwise <alt>`.
type ForeseeExpression struct {
	Token     token.Token
	Value     Expression
	Condition Expression
	Otherwise Expression
}

func (f *ForeseeExpression) expressionNode()      {}
func (f *ForeseeExpression) TokenLiteral() string { return f.Token.Literal }
func (f *ForeseeExpression) Pos() (int, int)      { return posOf(f.Token) }
func (f *ForeseeExpression) String() string {
	return f.Value.String() + " foresee " + f.Condition.String() + " otherwise " + f.Otherwise.String()
}

// SpreadExpression marks `...value` inside a call argument list or list
// literal, instructing the evaluator to splice an iterable in place.
type SpreadExpression struct {
	Token token.Token
	Value Expression
}

func (s *SpreadExpression) expressionNode()      {}
func (s *SpreadExpression) TokenLiteral() string { return s.Token.Literal }
func (s *SpreadExpression) Pos() (int, int)      { return posOf(s.Token) }
func (s *SpreadExpression) String() string       { return "..." + s.Value.String() }

// CallExpression applies Function to Arguments. When Function is a
// *MemberExpression the evaluator resolves a bound method call instead of
// evaluating the member access standalone; otherwise Function is evaluated
// normally and must yield a Function, Builtin, or Class (manifest sugar).
type CallExpression struct {
	Token     token.Token
	Function  Expression
	Arguments []Expression
}

func (c *CallExpression) expressionNode()      {}
func (c *CallExpression) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpression) Pos() (int, int)      { return posOf(c.Token) }
func (c *CallExpression) String() string {
	args := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		args[i] = a.String()
	}
	return c.Function.String() + "(" + strings.Join(args, ", ") + ")"
}

// MemberExpression is `object.property` field/method access.
type MemberExpression struct {
	Token    token.Token
	Object   Expression
	Property *Identifier
}

func (m *MemberExpression) expressionNode()      {}
func (m *MemberExpression) TokenLiteral() string { return m.Token.Literal }
func (m *MemberExpression) Pos() (int, int)      { return posOf(m.Token) }
func (m *MemberExpression) String() string {
	return m.Object.String() + "." + m.Property.Value
}

// IndexExpression is `collection[index]`.
type IndexExpression struct {
	Token token.Token
	Left  Expression
	Index Expression
}

func (ix *IndexExpression) expressionNode()      {}
func (ix *IndexExpression) TokenLiteral() string { return ix.Token.Literal }
func (ix *IndexExpression) Pos() (int, int)      { return posOf(ix.Token) }
func (ix *IndexExpression) String() string {
	return "(" + ix.Left.String() + "[" + ix.Index.String() + "])"
}

// SliceExpression is `collection[start:end:step]`; any bound may be nil.
type SliceExpression struct {
	Token token.Token
	Left  Expression
	Start Expression
	End   Expression
	Step  Expression
}

func (s *SliceExpression) expressionNode()      {}
func (s *SliceExpression) TokenLiteral() string { return s.Token.Literal }
func (s *SliceExpression) Pos() (int, int)      { return posOf(s.Token) }
func (s *SliceExpression) String() string {
	var out bytes.Buffer
	out.WriteString(s.Left.String())
	out.WriteString("[")
	if s.Start != nil {
		out.WriteString(s.Start.String())
	}
	out.WriteString(":")
	if s.End != nil {
		out.WriteString(s.End.String())
	}
	if s.Step != nil {
		out.WriteString(":")
		out.WriteString(s.Step.String())
	}
	out.WriteString("]")
	return out.String()
}

// AscendCallExpression invokes a method on the current instance's parent
// class: `ascend name(args)`.
type AscendCallExpression struct {
	Token     token.Token
	Method    *Identifier
	Arguments []Expression
}

func (a *AscendCallExpression) expressionNode()      {}
func (a *AscendCallExpression) TokenLiteral() string { return a.Token.Literal }
func (a *AscendCallExpression) Pos() (int, int)      { return posOf(a.Token) }
func (a *AscendCallExpression) String() string {
	args := make([]string, len(a.Arguments))
	for i, arg := range a.Arguments {
		args[i] = arg.String()
	}
	return "ascend " + a.Method.Value + "(" + strings.Join(args, ", ") + ")"
}

// ManifestExpression instantiates a Class: `manifest Point(1, 2)`.
type ManifestExpression struct {
	Token     token.Token
	Class     Expression
	Arguments []Expression
}

func (m *ManifestExpression) expressionNode()      {}
func (m *ManifestExpression) TokenLiteral() string { return m.Token.Literal }
func (m *ManifestExpression) Pos() (int, int)      { return posOf(m.Token) }
func (m *ManifestExpression) String() string {
	args := make([]string, len(m.Arguments))
	for i, a := range m.Arguments {
		args[i] = a.String()
	}
	return "manifest " + m.Class.String() + "(" + strings.Join(args, ", ") + ")"
}
