// ==============================================================================================
// FILE: ast/oop.go
// PACKAGE: ast
// PURPOSE: Single-inheritance class definitions. spec.md's glossary names
//          Ascend (super-call) and Manifest (instantiation) but never a
//          class-definition keyword; `entity ... inherits ...:` fills that
//          gap, with `construct` as the conventional constructor method
//          name and `self` as the instance-reference keyword, evaluated
//          the same way any other Protocol-bearing method name is.
// ==============================================================================================

package ast

import "github.com/kei-lang/kei/token"

// EntityStmt defines a class. Parent is nil for a root entity. Methods
// includes the `construct` method, if declared, like any other method.
type EntityStmt struct {
	Token   token.Token
	Name    *Identifier
	Parent  *Identifier
	Methods []*Protocol
}

func (e *EntityStmt) statementNode()       {}
func (e *EntityStmt) TokenLiteral() string { return e.Token.Literal }
func (e *EntityStmt) Pos() (int, int)      { return posOf(e.Token) }
func (e *EntityStmt) String() string {
	out := "entity " + e.Name.Value
	if e.Parent != nil {
		out += " inherits " + e.Parent.Value
	}
	out += ":\n"
	for _, m := range e.Methods {
		out += m.String() + "\n"
	}
	return out
}

// SelfExpression is the `self` instance reference, valid only inside an
// entity's method bodies.
type SelfExpression struct {
	Token token.Token
}

func (s *SelfExpression) expressionNode()      {}
func (s *SelfExpression) TokenLiteral() string { return s.Token.Literal }
func (s *SelfExpression) Pos() (int, int)      { return posOf(s.Token) }
func (s *SelfExpression) String() string       { return "self" }
