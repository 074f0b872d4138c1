// ==============================================================================================
// FILE: ast/callables.go
// PACKAGE: ast
// PURPOSE: Callable definition forms: named protocol/sequence declarations,
//          anonymous lambdas, and their shared parameter shape.
// ==============================================================================================

package ast

import (
	"strings"

	"github.com/kei-lang/kei/token"
)

// Parameter is one formal parameter slot. Pattern is an *Identifier for a
// plain binding or a *ListPattern for destructuring; Default is nil when
// the parameter is required; IsRest marks the single trailing `*name`
// collector parameter.
type Parameter struct {
	Pattern Expression
	Default Expression
	IsRest  bool
}

func (p *Parameter) String() string {
	s := p.Pattern.String()
	if p.IsRest {
		s = "*" + s
	}
	if p.Default != nil {
		s += " = " + p.Default.String()
	}
	return s
}

// Protocol is a named callable definition:
//
//	protocol name(params):
//	    body
//
// or, when IsSequence is set, a generator definition:
//
//	sequence name(params):
//	    body
//
// IsAsync marks a protocol declared with a leading `await` qualifier,
// making every call to it return a Promise per spec.md §5.3.
type Protocol struct {
	Token      token.Token
	Name       *Identifier
	Parameters []*Parameter
	Body       *BlockStatement
	IsSequence bool
	IsAsync    bool
}

func (p *Protocol) statementNode()       {}
func (p *Protocol) TokenLiteral() string { return p.Token.Literal }
func (p *Protocol) Pos() (int, int)      { return posOf(p.Token) }
func (p *Protocol) ParamList() []*Parameter   { return p.Parameters }
func (p *Protocol) BlockBody() *BlockStatement { return p.Body }
func (p *Protocol) String() string {
	kw := "protocol"
	if p.IsSequence {
		kw = "sequence"
	}
	if p.IsAsync {
		kw = "await " + kw
	}
	params := make([]string, len(p.Parameters))
	for i, pm := range p.Parameters {
		params[i] = pm.String()
	}
	return kw + " " + p.Name.Value + "(" + strings.Join(params, ", ") + "):\n" + p.Body.String()
}

// Lambda is an anonymous callable: `(params) => expr` or `(params) => : block`.
// Exactly one of BodyExpr/BodyBlock is set; the evaluator desugars an
// expression body into a single implicit-yield statement so Protocol and
// Lambda share one execution path.
type Lambda struct {
	Token      token.Token
	Parameters []*Parameter
	BodyExpr   Expression
	BodyBlock  *BlockStatement
	IsSequence bool
	IsAsync    bool
}

func (l *Lambda) expressionNode()      {}
func (l *Lambda) TokenLiteral() string { return l.Token.Literal }
func (l *Lambda) Pos() (int, int)      { return posOf(l.Token) }
func (l *Lambda) ParamList() []*Parameter { return l.Parameters }

// BlockBody returns BodyBlock. For an expression-bodied lambda, the parser
// populates BodyBlock with a synthetic single-statement block wrapping an
// implicit YieldStatement around BodyExpr, so Protocol and Lambda share one
// execution path in the evaluator regardless of surface syntax.
func (l *Lambda) BlockBody() *BlockStatement { return l.BodyBlock }
func (l *Lambda) String() string {
	params := make([]string, len(l.Parameters))
	for i, pm := range l.Parameters {
		params[i] = pm.String()
	}
	body := ""
	if l.BodyExpr != nil {
		body = l.BodyExpr.String()
	} else if l.BodyBlock != nil {
		body = l.BodyBlock.String()
	}
	return "(" + strings.Join(params, ", ") + ") => " + body
}
