// ==============================================================================================
// FILE: ast/node.go
// ==============================================================================================
// PACKAGE: ast
// PURPOSE: Defines the base interfaces every kei AST node implements, and the
//          Program root node. Node shapes here are grouped the way spec.md §3.2
//          groups them: literals, expressions, statements, control flow,
//          callable definitions, OOP, error handling, functional/generator
//          expression forms.
// ==============================================================================================

package ast

import "github.com/kei-lang/kei/token"

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() (line, column int)
}

// Statement is a Node that is executed for effect.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that produces a Value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root of every parsed kei source file.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() (int, int) {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return 0, 0
}

func (p *Program) String() string {
	out := ""
	for _, s := range p.Statements {
		out += s.String() + "\n"
	}
	return out
}

func posOf(tok token.Token) (int, int) { return tok.Line, tok.Column }
