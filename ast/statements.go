// ==============================================================================================
// FILE: ast/statements.go
// PACKAGE: ast
// PURPOSE: Ordinary statement forms: expression statements, blocks,
//          bindings, loop-control, generator yield/delegate, and the
//          voice-channel-emitting statements (preview/override/absolute/
//          anomaly/scheme/include).
// ==============================================================================================

package ast

import "github.com/kei-lang/kei/token"

// BlockStatement is an INDENT...DEDENT-delimited statement sequence.
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (b *BlockStatement) statementNode()       {}
func (b *BlockStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BlockStatement) Pos() (int, int)      { return posOf(b.Token) }
func (b *BlockStatement) String() string {
	out := ""
	for _, s := range b.Statements {
		out += "    " + s.String() + "\n"
	}
	return out
}

// ExpressionStatement wraps a bare expression evaluated for its side effect.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (e *ExpressionStatement) statementNode()       {}
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExpressionStatement) Pos() (int, int)      { return posOf(e.Token) }
func (e *ExpressionStatement) String() string {
	if e.Expression != nil {
		return e.Expression.String()
	}
	return ""
}

// DesignateStatement introduces a new binding in the current scope:
// `designate name = value`. Per spec.md §4.3, re-designating an existing
// name in the same scope is a redeclaration, distinct from AssignStatement.
type DesignateStatement struct {
	Token token.Token
	Name  *Identifier
	Value Expression
}

func (d *DesignateStatement) statementNode()       {}
func (d *DesignateStatement) TokenLiteral() string { return d.Token.Literal }
func (d *DesignateStatement) Pos() (int, int)      { return posOf(d.Token) }
func (d *DesignateStatement) String() string {
	return "designate " + d.Name.Value + " = " + d.Value.String()
}

// AssignStatement updates a binding: both `target = value` and the walrus
// form `target := value` define the name if it is absent anywhere on the
// scope chain, else update it in place (spec.md §4.4.2) — Walrus marks only
// which surface form the source used, not a different runtime semantic.
// Target is an *Identifier, *MemberExpression, *IndexExpression, or
// *ListPattern for destructuring assignment.
type AssignStatement struct {
	Token  token.Token
	Target Expression
	Value  Expression
	Walrus bool
}

func (a *AssignStatement) statementNode()       {}
func (a *AssignStatement) TokenLiteral() string { return a.Token.Literal }
func (a *AssignStatement) Pos() (int, int)      { return posOf(a.Token) }
func (a *AssignStatement) String() string {
	op := "="
	if a.Walrus {
		op = ":="
	}
	return a.Target.String() + " " + op + " " + a.Value.String()
}

// BreakStatement exits the nearest enclosing cycle.
type BreakStatement struct{ Token token.Token }

func (b *BreakStatement) statementNode()       {}
func (b *BreakStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BreakStatement) Pos() (int, int)      { return posOf(b.Token) }
func (b *BreakStatement) String() string       { return "break" }

// ContinueStatement skips to the next iteration of the nearest enclosing cycle.
type ContinueStatement struct{ Token token.Token }

func (c *ContinueStatement) statementNode()       {}
func (c *ContinueStatement) TokenLiteral() string { return c.Token.Literal }
func (c *ContinueStatement) Pos() (int, int)      { return posOf(c.Token) }
func (c *ContinueStatement) String() string       { return "continue" }

// YieldStatement is overloaded per spec.md §4.4.3/§4.5: inside a running
// generator it suspends the generator and surfaces Value through transmit();
// inside an ordinary protocol call it behaves as an implicit, short-circuiting
// return of Value. Value is nil for a bare `yield`.
type YieldStatement struct {
	Token token.Token
	Value Expression
}

func (y *YieldStatement) statementNode()       {}
func (y *YieldStatement) TokenLiteral() string { return y.Token.Literal }
func (y *YieldStatement) Pos() (int, int)      { return posOf(y.Token) }
func (y *YieldStatement) String() string {
	if y.Value != nil {
		return "yield " + y.Value.String()
	}
	return "yield"
}

// DelegateStatement delegates generation to Iterable, forwarding its yields
// until it is exhausted. Iterable must evaluate to a Generator; a list or
// any other value raises an anomaly.
type DelegateStatement struct {
	Token    token.Token
	Iterable Expression
}

func (d *DelegateStatement) statementNode()       {}
func (d *DelegateStatement) TokenLiteral() string { return d.Token.Literal }
func (d *DelegateStatement) Pos() (int, int)      { return posOf(d.Token) }
func (d *DelegateStatement) String() string       { return "delegate " + d.Iterable.String() }

// PreviewStatement emits Value to the voice channel at terse verbosity
// without halting execution.
type PreviewStatement struct {
	Token token.Token
	Value Expression
}

func (p *PreviewStatement) statementNode()       {}
func (p *PreviewStatement) TokenLiteral() string { return p.Token.Literal }
func (p *PreviewStatement) Pos() (int, int)      { return posOf(p.Token) }
func (p *PreviewStatement) String() string       { return "preview " + p.Value.String() }

// OverrideStatement forcibly rebinds Name at global scope regardless of
// shadowing, surfacing a voice-channel notice of the override.
type OverrideStatement struct {
	Token token.Token
	Name  *Identifier
	Value Expression
}

func (o *OverrideStatement) statementNode()       {}
func (o *OverrideStatement) TokenLiteral() string { return o.Token.Literal }
func (o *OverrideStatement) Pos() (int, int)      { return posOf(o.Token) }
func (o *OverrideStatement) String() string {
	return "override " + o.Name.Value + " = " + o.Value.String()
}

// AbsoluteStatement asserts Value is truthy, raising an anomaly (and an
// escalating voice-channel message) otherwise. Source preserves the
// asserted expression's original text for the failure message.
type AbsoluteStatement struct {
	Token  token.Token
	Value  Expression
	Source string
}

func (a *AbsoluteStatement) statementNode()       {}
func (a *AbsoluteStatement) TokenLiteral() string { return a.Token.Literal }
func (a *AbsoluteStatement) Pos() (int, int)      { return posOf(a.Token) }
func (a *AbsoluteStatement) String() string       { return "absolute " + a.Value.String() }

// AnomalyStatement runs Body with an anomaly_mode flag set on the
// evaluator for its duration. Per spec.md §4.4.4 this is purely
// informational — the core does not itself branch on the flag, though
// the voice channel announces entry/exit.
type AnomalyStatement struct {
	Token token.Token
	Body  *BlockStatement
}

func (a *AnomalyStatement) statementNode()       {}
func (a *AnomalyStatement) TokenLiteral() string { return a.Token.Literal }
func (a *AnomalyStatement) Pos() (int, int)      { return posOf(a.Token) }
func (a *AnomalyStatement) String() string       { return "anomaly:\n" + a.Body.String() }

// SchemeStatement is `scheme: body execute` — the two keywords bracket a
// block executed immediately, with voice-channel enter/exit notices.
type SchemeStatement struct {
	Token       token.Token
	Body        *BlockStatement
	ExecuteToken token.Token
}

func (s *SchemeStatement) statementNode()       {}
func (s *SchemeStatement) TokenLiteral() string { return s.Token.Literal }
func (s *SchemeStatement) Pos() (int, int)      { return posOf(s.Token) }
func (s *SchemeStatement) String() string       { return "scheme:\n" + s.Body.String() + "execute" }

// IncludeStatement loads another kei source file and evaluates it in the
// current environment before continuing. A supplemented feature
// absent from spec.md's distillation but present in the original's module
// system.
type IncludeStatement struct {
	Token token.Token
	Path  Expression
}

func (i *IncludeStatement) statementNode()       {}
func (i *IncludeStatement) TokenLiteral() string { return i.Token.Literal }
func (i *IncludeStatement) Pos() (int, int)      { return posOf(i.Token) }
func (i *IncludeStatement) String() string       { return "include " + i.Path.String() }
