// ==============================================================================================
// FILE: parser/parser.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: Implements a Recursive Descent Parser with Pratt Parsing for
//          expressions, converting a stream of Tokens (from the Lexer) into
//          an Abstract Syntax Tree (AST). This component defines the grammar
//          and syntax rules of kei.
//
//          Unlike the teacher's streaming two-token (cur/peek) parser, kei
//          needs unbounded lookahead in exactly one place — telling a
//          parenthesized grouped expression apart from a lambda parameter
//          list before committing to either parse path — so the whole token
//          stream is buffered upfront into a slice the parser walks by
//          index. Every other technique here (prefix/infix maps, precedence
//          climbing, the expectPeek-style token assertions) mirrors the
//          teacher directly.
// ==============================================================================================

package parser

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/kei-lang/kei/ast"
	"github.com/kei-lang/kei/lexer"
	"github.com/kei-lang/kei/token"
)

// Precedence levels, low to high, per spec.md §4.1's table. Ternary
// (`foresee ... otherwise ...`) sits below all of these and is handled by
// parseExpr as a postfix wrapper rather than as a Pratt infix operator,
// since it binds the loosest of anything in the grammar.
const (
	LOWEST = iota
	OR_PREC
	AND_PREC
	NOT_PREC
	COMPARISON
	ADDITIVE
	MULTIPLICATIVE
	POWER
	UNARY
	POSTFIX
)

var precedences = map[token.TokenType]int{
	token.OR:       OR_PREC,
	token.AND:      AND_PREC,
	token.EQ:       COMPARISON,
	token.NOT_EQ:   COMPARISON,
	token.LT:       COMPARISON,
	token.GT:       COMPARISON,
	token.LT_EQ:    COMPARISON,
	token.GT_EQ:    COMPARISON,
	token.PLUS:     ADDITIVE,
	token.MINUS:    ADDITIVE,
	token.STAR:     MULTIPLICATIVE,
	token.SLASH:    MULTIPLICATIVE,
	token.DSLASH:   MULTIPLICATIVE,
	token.PERCENT:  MULTIPLICATIVE,
	token.DSTAR:    POWER,
	token.LPAREN:   POSTFIX,
	token.LBRACKET: POSTFIX,
	token.DOT:      POSTFIX,
}

// Function types for Pratt Parsing.
type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser holds the fully buffered token stream and the Pratt parse-fn maps.
type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	errors *multierror.Error

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

// New tokenizes l fully up front, then registers every parse function and
// primes curToken/peekToken.
func New(l *lexer.Lexer) *Parser {
	var toks []token.Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Type == token.EOF || t.Type == token.ERROR {
			break
		}
	}

	p := &Parser{tokens: toks}
	p.curToken = p.tokenAt(0)
	p.peekToken = p.tokenAt(1)

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.SELF, p.parseSelfExpression)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.BOOL, p.parseBooleanLiteral)
	p.registerPrefix(token.NIL, p.parseNilLiteral)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.NOT, p.parseNotExpression)
	p.registerPrefix(token.AWAIT, p.parseAwaitExpression)
	p.registerPrefix(token.STAR, p.parseRestMarker)
	p.registerPrefix(token.ELLIPSIS, p.parseSpreadExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedOrLambdaOrGenerator)
	p.registerPrefix(token.LBRACKET, p.parseBracketExpression)
	p.registerPrefix(token.LBRACE, p.parseDictLiteral)
	p.registerPrefix(token.ASCEND, p.parseAscendExpression)
	p.registerPrefix(token.MANIFEST, p.parseManifestExpression)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for _, tt := range []token.TokenType{token.PLUS, token.MINUS, token.STAR, token.SLASH,
		token.DSLASH, token.PERCENT, token.DSTAR, token.EQ, token.NOT_EQ,
		token.LT, token.GT, token.LT_EQ, token.GT_EQ, token.AND, token.OR} {
		p.registerInfix(tt, p.parseInfixExpression)
	}
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.LBRACKET, p.parseIndexOrSliceExpression)
	p.registerInfix(token.DOT, p.parseMemberExpression)

	return p
}

// Errors returns the parser's accumulated error list, or nil if clean.
func (p *Parser) Errors() *multierror.Error { return p.errors }

func (p *Parser) registerPrefix(t token.TokenType, fn prefixParseFn) { p.prefixParseFns[t] = fn }
func (p *Parser) registerInfix(t token.TokenType, fn infixParseFn)   { p.infixParseFns[t] = fn }

func (p *Parser) tokenAt(offset int) token.Token {
	idx := p.pos + offset
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) nextToken() {
	p.pos++
	p.curToken = p.tokenAt(0)
	p.peekToken = p.tokenAt(1)
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

// expectPeek asserts that the next token is of a specific type. If it is,
// it advances the parser. If not, it records an error.
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.addErrorf("expected next token to be %s, got %s instead", t, p.peekToken.Type)
}

func (p *Parser) addErrorf(format string, args ...interface{}) {
	msg := fmt.Sprintf("line %d:%d - ", p.curToken.Line, p.curToken.Column) + fmt.Sprintf(format, args...)
	p.errors = multierror.Append(p.errors, fmt.Errorf("%s", msg))
}

// synchronize implements the panic-mode recovery spec.md §4.2 calls for: it
// advances past tokens until a NEWLINE or DEDENT boundary, so one malformed
// statement doesn't cascade into spurious errors for the rest of the file.
func (p *Parser) synchronize() {
	for !p.curTokenIs(token.NEWLINE) && !p.curTokenIs(token.DEDENT) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseProgram is the parser's entry point.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	program.Statements = p.parseStatements(func(token.TokenType) bool { return false })
	return program
}

// parseStatements parses statements (skipping blank NEWLINEs) until stop
// reports true for the current token type, or EOF is reached.
func (p *Parser) parseStatements(stop func(token.TokenType) bool) []ast.Statement {
	var stmts []ast.Statement
	for !stop(p.curToken.Type) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.nextToken()
	}
	return stmts
}

// parseBlock parses `: NEWLINE INDENT statements... DEDENT`, with curToken
// positioned on the COLON when called. It leaves curToken on the DEDENT.
func (p *Parser) parseBlock() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	if !p.expectPeek(token.NEWLINE) {
		p.synchronize()
		return block
	}
	if !p.expectPeek(token.INDENT) {
		p.synchronize()
		return block
	}
	p.nextToken()
	block.Statements = p.parseStatements(func(tt token.TokenType) bool { return tt == token.DEDENT })
	return block
}

// parseStatement determines the type of statement based on the current token.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.DESIGNATE:
		return p.parseDesignateStatement()
	case token.OVERRIDE:
		return p.parseOverrideStatement()
	case token.PREVIEW:
		return p.parsePreviewStatement()
	case token.ABSOLUTE:
		return p.parseAbsoluteStatement()
	case token.ANOMALY:
		return p.parseAnomalyStatement()
	case token.SCHEME:
		return p.parseSchemeStatement()
	case token.INCLUDE:
		return p.parseIncludeStatement()
	case token.BREAK:
		return &ast.BreakStatement{Token: p.curToken}
	case token.CONTINUE:
		return &ast.ContinueStatement{Token: p.curToken}
	case token.YIELD:
		return p.parseYieldStatement()
	case token.DELEGATE:
		return p.parseDelegateStatement()
	case token.FORESEE:
		return p.parseForeseeStmt()
	case token.SITUATION:
		return p.parseSituationStmt()
	case token.CYCLE:
		return p.parseCycleStmt()
	case token.ATTEMPT:
		return p.parseAttemptStmt()
	case token.PROTOCOL, token.SEQUENCE:
		return p.parseProtocol(false)
	case token.AWAIT:
		if p.peekTokenIs(token.PROTOCOL) || p.peekTokenIs(token.SEQUENCE) {
			p.nextToken()
			return p.parseProtocol(true)
		}
		return p.parseExpressionOrAssignment()
	case token.ENTITY:
		return p.parseEntityStmt()
	default:
		return p.parseExpressionOrAssignment()
	}
}
