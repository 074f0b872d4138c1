// ==============================================================================================
// FILE: parser/expressions.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: The Pratt expression core and every prefix/infix parse function,
//          covering spec.md §4.1's full grammar: arithmetic/logic/
//          comparison operators, the postfix ternary, lambdas, generator
//          expressions, list comprehensions, member/index/slice access,
//          class instantiation, and super-calls.
// ==============================================================================================

package parser

import (
	"github.com/kei-lang/kei/ast"
	"github.com/kei-lang/kei/token"
)

// parseExpr is the entry point used by statement-level code wherever the
// grammar expects a full expression. It wraps parseExpression(LOWEST) with
// the postfix ternary `value foresee condition otherwise alternative`,
// which binds looser than every Pratt-table operator (spec.md §4.1).
func (p *Parser) parseExpr() ast.Expression {
	left := p.parseExpression(LOWEST)
	if left == nil {
		return nil
	}
	if !p.peekTokenIs(token.FORESEE) {
		return left
	}
	p.nextToken()
	ternTok := p.curToken
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.OTHERWISE) {
		return left
	}
	p.nextToken()
	alt := p.parseExpr()
	return &ast.ForeseeExpression{Token: ternTok, Value: left, Condition: cond, Otherwise: alt}
}

// parseExpression is the classic Pratt loop over the operator-precedence
// table (everything except the ternary, handled above by parseExpr).
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addErrorf("no prefix parse function for %s", p.curToken.Type)
		return nil
	}
	leftExp := prefix()

	for !p.peekTokenIs(token.EOF) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}
	return leftExp
}

// --- Prefix parse functions ---

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseSelfExpression() ast.Expression {
	return &ast.SelfExpression{Token: p.curToken}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	return &ast.IntegerLiteral{Token: p.curToken, Value: p.curToken.IntValue}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	return &ast.FloatLiteral{Token: p.curToken, Value: p.curToken.FloatValue}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curToken.BoolValue}
}

func (p *Parser) parseNilLiteral() ast.Expression {
	return &ast.NilLiteral{Token: p.curToken}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(UNARY)
	return &ast.PrefixExpression{Token: tok, Operator: tok.Literal, Right: right}
}

// parseNotExpression implements spec.md §4.1's split precedence for `not`:
// it binds tighter than `and`/`or` but looser than comparisons, so its
// operand is parsed at NOT_PREC rather than the high UNARY tier that `-`
// and `await` use.
func (p *Parser) parseNotExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(NOT_PREC)
	return &ast.PrefixExpression{Token: tok, Operator: "not", Right: right}
}

func (p *Parser) parseAwaitExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	value := p.parseExpression(UNARY)
	return &ast.AwaitExpression{Token: tok, Value: value}
}

// parseRestMarker handles a leading `*name` inside a bracketed list that
// turns out to be a destructuring pattern rather than a literal — see
// exprToAssignTarget, which looks for this SpreadExpression wrapper among a
// parsed ListLiteral's elements to find the rest slot.
func (p *Parser) parseRestMarker() ast.Expression {
	tok := p.curToken
	p.nextToken()
	val := p.parseExpression(UNARY)
	return &ast.SpreadExpression{Token: tok, Value: val}
}

func (p *Parser) parseSpreadExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	val := p.parseExpression(UNARY)
	return &ast.SpreadExpression{Token: tok, Value: val}
}

// parseGroupedOrLambdaOrGenerator disambiguates the three constructs that
// can start with `(`: a parenthesized expression, a generator expression
// `(result for var through iterable where cond)`, and a lambda
// `(params) => body`. The lambda case needs to scan ahead to the matching
// `)` to see whether `=>` follows, which is exactly what the buffered
// token stream makes cheap.
func (p *Parser) parseGroupedOrLambdaOrGenerator() ast.Expression {
	if p.looksLikeLambda() {
		return p.parseLambda()
	}
	lparenTok := p.curToken
	p.nextToken()
	first := p.parseExpr()
	if p.peekTokenIs(token.FOR) {
		p.nextToken()
		p.nextToken()
		varPat := p.parsePatternPrimary()
		if !p.expectPeek(token.THROUGH) {
			return first
		}
		p.nextToken()
		iterable := p.parseExpr()
		var cond ast.Expression
		if p.peekTokenIs(token.WHERE) {
			p.nextToken()
			p.nextToken()
			cond = p.parseExpr()
		}
		if !p.expectPeek(token.RPAREN) {
			return first
		}
		return &ast.GeneratorExpression{Token: lparenTok, Result: first, Var: varPat, Iterable: iterable, Condition: cond}
	}
	if !p.expectPeek(token.RPAREN) {
		return first
	}
	return first
}

// looksLikeLambda scans forward from the current `(` to its matching `)`
// without consuming any tokens, reporting whether `=>` immediately follows.
func (p *Parser) looksLikeLambda() bool {
	depth := 0
	i := p.pos
	for i < len(p.tokens) {
		t := p.tokens[i]
		switch t.Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				if i+1 < len(p.tokens) {
					return p.tokens[i+1].Type == token.ARROW
				}
				return false
			}
		case token.EOF:
			return false
		}
		i++
	}
	return false
}

func (p *Parser) parseLambda() ast.Expression {
	lamTok := p.curToken
	params := p.parseParameterList()
	if !p.expectPeek(token.ARROW) {
		return nil
	}
	p.nextToken()
	lam := &ast.Lambda{Token: lamTok, Parameters: params}
	if p.curTokenIs(token.COLON) {
		lam.BodyBlock = p.parseBlock()
		return lam
	}
	expr := p.parseExpr()
	lam.BodyExpr = expr
	lam.BodyBlock = &ast.BlockStatement{
		Token:      lamTok,
		Statements: []ast.Statement{&ast.YieldStatement{Token: lamTok, Value: expr}},
	}
	return lam
}

// parseBracketExpression parses `[...]`: a list literal, or — if a `cycle
// through ... as ... ` clause follows the first element — an eagerly
// materialized list comprehension (spec.md §4.6, distinct from the lazy
// generator expression produced by parenthesized `for`/`through`).
func (p *Parser) parseBracketExpression() ast.Expression {
	tok := p.curToken
	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return &ast.ListLiteral{Token: tok}
	}
	p.nextToken()
	first := p.parseArgument()

	if p.peekTokenIs(token.CYCLE) {
		p.nextToken()
		if !p.expectPeek(token.THROUGH) {
			return &ast.ListLiteral{Token: tok, Elements: []ast.Expression{first}}
		}
		p.nextToken()
		iterable := p.parseExpr()
		if !p.expectPeek(token.AS) {
			return &ast.ListLiteral{Token: tok, Elements: []ast.Expression{first}}
		}
		p.nextToken()
		varPat := p.parsePatternPrimary()
		var cond ast.Expression
		if p.peekTokenIs(token.FORESEE) {
			p.nextToken()
			p.nextToken()
			cond = p.parseExpr()
		}
		p.expectPeek(token.RBRACKET)
		return &ast.ListComprehension{Token: tok, Result: first, Var: varPat, Iterable: iterable, Condition: cond}
	}

	elems := []ast.Expression{first}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		elems = append(elems, p.parseArgument())
	}
	p.expectPeek(token.RBRACKET)
	return &ast.ListLiteral{Token: tok, Elements: elems}
}

func (p *Parser) parseDictLiteral() ast.Expression {
	tok := p.curToken
	d := &ast.DictLiteral{Token: tok}
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return d
	}
	p.nextToken()
	for {
		key := p.parseExpr()
		if !p.expectPeek(token.COLON) {
			break
		}
		p.nextToken()
		val := p.parseExpr()
		d.Keys = append(d.Keys, key)
		d.Values = append(d.Values, val)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	p.expectPeek(token.RBRACE)
	return d
}

func (p *Parser) parseAscendExpression() ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	method := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	args := p.parseExpressionList(token.RPAREN)
	return &ast.AscendCallExpression{Token: tok, Method: method, Arguments: args}
}

func (p *Parser) parseManifestExpression() ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	class := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	args := p.parseExpressionList(token.RPAREN)
	return &ast.ManifestExpression{Token: tok, Class: class, Arguments: args}
}

// parseExpressionList parses a comma-separated list of arguments up to and
// including end, supporting `...spread` elements.
func (p *Parser) parseExpressionList(end token.TokenType) []ast.Expression {
	var list []ast.Expression
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseArgument())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseArgument())
	}
	p.expectPeek(end)
	return list
}

func (p *Parser) parseArgument() ast.Expression {
	if p.curTokenIs(token.ELLIPSIS) {
		tok := p.curToken
		p.nextToken()
		val := p.parseExpr()
		return &ast.SpreadExpression{Token: tok, Value: val}
	}
	return p.parseExpr()
}

// --- Infix parse functions ---

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	if tok.Type == token.DSTAR {
		// Right-associative: `a ** b ** c` parses as `a ** (b ** c)`.
		right := p.parseExpression(precedence - 1)
		return &ast.InfixExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	right := p.parseExpression(precedence)
	return &ast.InfixExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
}

func (p *Parser) parseCallExpression(fn ast.Expression) ast.Expression {
	tok := p.curToken
	args := p.parseExpressionList(token.RPAREN)
	return &ast.CallExpression{Token: tok, Function: fn, Arguments: args}
}

// parseIndexOrSliceExpression parses both `list[i]` and
// `list[start:end:step]`, each bound being independently optional for the
// slice form.
func (p *Parser) parseIndexOrSliceExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()

	var start, end, step ast.Expression
	isSlice := false

	if !p.curTokenIs(token.COLON) {
		start = p.parseExpr()
		p.nextToken()
	}
	if p.curTokenIs(token.COLON) {
		isSlice = true
		p.nextToken()
		if !p.curTokenIs(token.COLON) && !p.curTokenIs(token.RBRACKET) {
			end = p.parseExpr()
			p.nextToken()
		}
		if p.curTokenIs(token.COLON) {
			p.nextToken()
			if !p.curTokenIs(token.RBRACKET) {
				step = p.parseExpr()
				p.nextToken()
			}
		}
	}
	if !p.curTokenIs(token.RBRACKET) {
		p.addErrorf("expected ']', got %s", p.curToken.Type)
	}

	if isSlice {
		return &ast.SliceExpression{Token: tok, Left: left, Start: start, End: end, Step: step}
	}
	return &ast.IndexExpression{Token: tok, Left: left, Index: start}
}

func (p *Parser) parseMemberExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return left
	}
	prop := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	return &ast.MemberExpression{Token: tok, Object: left, Property: prop}
}
