// ==============================================================================================
// FILE: ast/literals.go
// PACKAGE: ast
// PURPOSE: Leaf literal nodes and the Identifier node.
// ==============================================================================================

package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/kei-lang/kei/token"
)

// Identifier names a binding. It doubles as a destructuring pattern leaf:
// `designate [a, b] = pair` parses its elements as Identifier/ListPattern.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() (int, int)      { return posOf(i.Token) }
func (i *Identifier) String() string       { return i.Value }

// ListPattern destructures an iterable into named slots, e.g. `[a, b, *rest]`.
type ListPattern struct {
	Token    token.Token
	Elements []Expression // *Identifier or nested *ListPattern
	RestIdx  int          // index of the rest element within Elements, or -1
}

func (l *ListPattern) expressionNode()      {}
func (l *ListPattern) TokenLiteral() string { return l.Token.Literal }
func (l *ListPattern) Pos() (int, int)      { return posOf(l.Token) }
func (l *ListPattern) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		if i == l.RestIdx {
			parts[i] = "*" + e.String()
		} else {
			parts[i] = e.String()
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// IntegerLiteral is a whole-number literal.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (i *IntegerLiteral) expressionNode()      {}
func (i *IntegerLiteral) TokenLiteral() string { return i.Token.Literal }
func (i *IntegerLiteral) Pos() (int, int)      { return posOf(i.Token) }
func (i *IntegerLiteral) String() string       { return i.Token.Literal }

// FloatLiteral is a decimal/exponent-form number literal.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (f *FloatLiteral) expressionNode()      {}
func (f *FloatLiteral) TokenLiteral() string { return f.Token.Literal }
func (f *FloatLiteral) Pos() (int, int)      { return posOf(f.Token) }
func (f *FloatLiteral) String() string       { return f.Token.Literal }

// StringLiteral is a quoted string literal. String() re-quotes its value.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) Pos() (int, int)      { return posOf(s.Token) }
func (s *StringLiteral) String() string       { return strconv.Quote(s.Value) }

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BooleanLiteral) Pos() (int, int)      { return posOf(b.Token) }
func (b *BooleanLiteral) String() string       { return strconv.FormatBool(b.Value) }

// NilLiteral is the `none` literal.
type NilLiteral struct {
	Token token.Token
}

func (n *NilLiteral) expressionNode()      {}
func (n *NilLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NilLiteral) Pos() (int, int)      { return posOf(n.Token) }
func (n *NilLiteral) String() string       { return "none" }

// ListLiteral is a bracketed, comma-separated sequence of expressions.
// An element may itself be a *SpreadExpression.
type ListLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (l *ListLiteral) expressionNode()      {}
func (l *ListLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *ListLiteral) Pos() (int, int)      { return posOf(l.Token) }
func (l *ListLiteral) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DictLiteral is a braced sequence of key/value pairs. Keys and Values are
// kept as parallel slices (not a Go map) so source order survives into the
// AST, matching the insertion-ordered Dict value the evaluator builds.
type DictLiteral struct {
	Token  token.Token
	Keys   []Expression
	Values []Expression
}

func (d *DictLiteral) expressionNode()      {}
func (d *DictLiteral) TokenLiteral() string { return d.Token.Literal }
func (d *DictLiteral) Pos() (int, int)      { return posOf(d.Token) }
func (d *DictLiteral) String() string {
	var out bytes.Buffer
	out.WriteString("{")
	for i := range d.Keys {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(d.Keys[i].String())
		out.WriteString(": ")
		out.WriteString(d.Values[i].String())
	}
	out.WriteString("}")
	return out.String()
}
