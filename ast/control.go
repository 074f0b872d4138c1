// ==============================================================================================
// FILE: ast/control.go
// PACKAGE: ast
// PURPOSE: Branching and looping statement forms: foresee/alternate/
//          otherwise conditionals, situation/alignment pattern match, the
//          three cycle (loop) shapes, and attempt/recover error handling.
// ==============================================================================================

package ast

import (
	"strings"

	"github.com/kei-lang/kei/token"
)

// ElifClause is one `alternate <condition>:` arm of a ForeseeStmt.
type ElifClause struct {
	Condition Expression
	Body      *BlockStatement
}

// ForeseeStmt is `foresee cond: body [alternate cond: body]* [otherwise: body]`.
// The first true branch wins; at most one branch executes.
type ForeseeStmt struct {
	Token        token.Token
	Condition    Expression
	Body         *BlockStatement
	Alternatives []ElifClause
	Otherwise    *BlockStatement
}

func (f *ForeseeStmt) statementNode()       {}
func (f *ForeseeStmt) TokenLiteral() string { return f.Token.Literal }
func (f *ForeseeStmt) Pos() (int, int)      { return posOf(f.Token) }
func (f *ForeseeStmt) String() string {
	out := "foresee " + f.Condition.String() + ":\n" + f.Body.String()
	for _, alt := range f.Alternatives {
		out += "alternate " + alt.Condition.String() + ":\n" + alt.Body.String()
	}
	if f.Otherwise != nil {
		out += "otherwise:\n" + f.Otherwise.String()
	}
	return out
}

// Alignment is one `alignment v1, v2: body` arm of a SituationStmt, or the
// `otherwise: body` fallback arm when IsOtherwise is set (Values is nil then).
type Alignment struct {
	Token       token.Token
	IsOtherwise bool
	Values      []Expression
	Body        *BlockStatement
}

// SituationStmt is kei's pattern-match statement: the first alignment whose
// value list contains a value structurally equal to Scrutinee runs;
// otherwise the otherwise-arm, if present.
type SituationStmt struct {
	Token      token.Token
	Scrutinee  Expression
	Alignments []*Alignment
}

func (s *SituationStmt) statementNode()       {}
func (s *SituationStmt) TokenLiteral() string { return s.Token.Literal }
func (s *SituationStmt) Pos() (int, int)      { return posOf(s.Token) }
func (s *SituationStmt) String() string {
	out := "situation " + s.Scrutinee.String() + ":\n"
	for _, a := range s.Alignments {
		if a.IsOtherwise {
			out += "otherwise:\n" + a.Body.String()
			continue
		}
		vals := make([]string, len(a.Values))
		for i, v := range a.Values {
			vals[i] = v.String()
		}
		out += "alignment " + strings.Join(vals, ", ") + ":\n" + a.Body.String()
	}
	return out
}

// CycleWhileStmt is `cycle while cond: body`.
type CycleWhileStmt struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
}

func (c *CycleWhileStmt) statementNode()       {}
func (c *CycleWhileStmt) TokenLiteral() string { return c.Token.Literal }
func (c *CycleWhileStmt) Pos() (int, int)      { return posOf(c.Token) }
func (c *CycleWhileStmt) String() string {
	return "cycle while " + c.Condition.String() + ":\n" + c.Body.String()
}

// CycleThroughStmt is `cycle through iterable as var: body`, iterating an
// iterable value (List, String, Dict, or Generator) and binding each
// element to Var (an *Identifier or *ListPattern) for the body.
type CycleThroughStmt struct {
	Token    token.Token
	Iterable Expression
	Var      Expression
	Body     *BlockStatement
}

func (c *CycleThroughStmt) statementNode()       {}
func (c *CycleThroughStmt) TokenLiteral() string { return c.Token.Literal }
func (c *CycleThroughStmt) Pos() (int, int)      { return posOf(c.Token) }
func (c *CycleThroughStmt) String() string {
	return "cycle through " + c.Iterable.String() + " as " + c.Var.String() + ":\n" + c.Body.String()
}

// CycleFromToStmt is `cycle from start to end [by step] as var: body`, a
// numeric range loop. Step is nil when the default step of 1 applies.
type CycleFromToStmt struct {
	Token token.Token
	Start Expression
	End   Expression
	Step  Expression
	Var   Expression
	Body  *BlockStatement
}

func (c *CycleFromToStmt) statementNode()       {}
func (c *CycleFromToStmt) TokenLiteral() string { return c.Token.Literal }
func (c *CycleFromToStmt) Pos() (int, int)      { return posOf(c.Token) }
func (c *CycleFromToStmt) String() string {
	out := "cycle from " + c.Start.String() + " to " + c.End.String()
	if c.Step != nil {
		out += " by " + c.Step.String()
	}
	return out + " as " + c.Var.String() + ":\n" + c.Body.String()
}

// AttemptStmt is `attempt: try-body recover [as name]: recover-body`. On a
// runtime error inside TryBody the saved message is bound to ErrorName (if
// present) and RecoverBody runs; on clean execution RecoverBody is skipped.
type AttemptStmt struct {
	Token       token.Token
	TryBody     *BlockStatement
	ErrorName   *Identifier
	RecoverBody *BlockStatement
}

func (a *AttemptStmt) statementNode()       {}
func (a *AttemptStmt) TokenLiteral() string { return a.Token.Literal }
func (a *AttemptStmt) Pos() (int, int)      { return posOf(a.Token) }
func (a *AttemptStmt) String() string {
	out := "attempt:\n" + a.TryBody.String() + "recover"
	if a.ErrorName != nil {
		out += " as " + a.ErrorName.Value
	}
	return out + ":\n" + a.RecoverBody.String()
}
