// ==============================================================================================
// FILE: parser/statements.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: Statement-level parse functions: binding, control flow, OOP
//          definitions, and the voice-emitting/error-handling statement
//          forms named throughout spec.md §4.
// ==============================================================================================

package parser

import (
	"github.com/kei-lang/kei/ast"
	"github.com/kei-lang/kei/token"
)

func (p *Parser) parseDesignateStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		p.synchronize()
		return nil
	}
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	if !p.expectPeek(token.ASSIGN) {
		p.synchronize()
		return nil
	}
	p.nextToken()
	value := p.parseExpr()
	return &ast.DesignateStatement{Token: tok, Name: name, Value: value}
}

func (p *Parser) parseOverrideStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		p.synchronize()
		return nil
	}
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	if !p.expectPeek(token.ASSIGN) {
		p.synchronize()
		return nil
	}
	p.nextToken()
	value := p.parseExpr()
	return &ast.OverrideStatement{Token: tok, Name: name, Value: value}
}

func (p *Parser) parsePreviewStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	value := p.parseExpr()
	return &ast.PreviewStatement{Token: tok, Value: value}
}

func (p *Parser) parseAbsoluteStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	value := p.parseExpr()
	return &ast.AbsoluteStatement{Token: tok, Value: value, Source: value.String()}
}

func (p *Parser) parseAnomalyStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.COLON) {
		p.synchronize()
		return nil
	}
	body := p.parseBlock()
	return &ast.AnomalyStatement{Token: tok, Body: body}
}

func (p *Parser) parseSchemeStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.COLON) {
		p.synchronize()
		return nil
	}
	body := p.parseBlock()
	if !p.expectPeek(token.EXECUTE) {
		p.synchronize()
		return &ast.SchemeStatement{Token: tok, Body: body}
	}
	return &ast.SchemeStatement{Token: tok, Body: body, ExecuteToken: p.curToken}
}

func (p *Parser) parseIncludeStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	path := p.parseExpr()
	return &ast.IncludeStatement{Token: tok, Path: path}
}

func (p *Parser) parseYieldStatement() ast.Statement {
	tok := p.curToken
	if p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.DEDENT) || p.peekTokenIs(token.EOF) {
		return &ast.YieldStatement{Token: tok}
	}
	p.nextToken()
	value := p.parseExpr()
	return &ast.YieldStatement{Token: tok, Value: value}
}

func (p *Parser) parseDelegateStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	iterable := p.parseExpr()
	return &ast.DelegateStatement{Token: tok, Iterable: iterable}
}

func (p *Parser) parseForeseeStmt() ast.Statement {
	tok := p.curToken
	p.nextToken()
	cond := p.parseExpr()
	if !p.expectPeek(token.COLON) {
		p.synchronize()
		return nil
	}
	body := p.parseBlock()

	stmt := &ast.ForeseeStmt{Token: tok, Condition: cond, Body: body}
	for p.peekTokenIs(token.ALTERNATE) {
		p.nextToken()
		p.nextToken()
		altCond := p.parseExpr()
		if !p.expectPeek(token.COLON) {
			p.synchronize()
			return stmt
		}
		altBody := p.parseBlock()
		stmt.Alternatives = append(stmt.Alternatives, ast.ElifClause{Condition: altCond, Body: altBody})
	}
	if p.peekTokenIs(token.OTHERWISE) {
		p.nextToken()
		if !p.expectPeek(token.COLON) {
			p.synchronize()
			return stmt
		}
		stmt.Otherwise = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseSituationStmt() ast.Statement {
	tok := p.curToken
	p.nextToken()
	scrutinee := p.parseExpr()
	if !p.expectPeek(token.COLON) {
		p.synchronize()
		return nil
	}
	if !p.expectPeek(token.NEWLINE) {
		p.synchronize()
		return nil
	}
	if !p.expectPeek(token.INDENT) {
		p.synchronize()
		return nil
	}
	p.nextToken()

	stmt := &ast.SituationStmt{Token: tok, Scrutinee: scrutinee}
	for !p.curTokenIs(token.DEDENT) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		switch p.curToken.Type {
		case token.OTHERWISE:
			align := &ast.Alignment{Token: p.curToken, IsOtherwise: true}
			if !p.expectPeek(token.COLON) {
				p.synchronize()
				return stmt
			}
			align.Body = p.parseBlock()
			stmt.Alignments = append(stmt.Alignments, align)
		case token.ALIGNMENT:
			alignTok := p.curToken
			p.nextToken()
			values := []ast.Expression{p.parseExpr()}
			for p.peekTokenIs(token.COMMA) {
				p.nextToken()
				p.nextToken()
				values = append(values, p.parseExpr())
			}
			if !p.expectPeek(token.COLON) {
				p.synchronize()
				return stmt
			}
			align := &ast.Alignment{Token: alignTok, Values: values, Body: p.parseBlock()}
			stmt.Alignments = append(stmt.Alignments, align)
		default:
			p.addErrorf("expected 'alignment' or 'otherwise', got %s", p.curToken.Type)
			p.synchronize()
			return stmt
		}
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseCycleStmt() ast.Statement {
	cycleTok := p.curToken
	switch {
	case p.peekTokenIs(token.WHILE):
		p.nextToken()
		p.nextToken()
		cond := p.parseExpr()
		if !p.expectPeek(token.COLON) {
			p.synchronize()
			return nil
		}
		body := p.parseBlock()
		return &ast.CycleWhileStmt{Token: cycleTok, Condition: cond, Body: body}

	case p.peekTokenIs(token.THROUGH):
		p.nextToken()
		p.nextToken()
		iterable := p.parseExpr()
		if !p.expectPeek(token.AS) {
			p.synchronize()
			return nil
		}
		p.nextToken()
		varPat := p.parsePatternPrimary()
		if !p.expectPeek(token.COLON) {
			p.synchronize()
			return nil
		}
		body := p.parseBlock()
		return &ast.CycleThroughStmt{Token: cycleTok, Iterable: iterable, Var: varPat, Body: body}

	case p.peekTokenIs(token.FROM):
		p.nextToken()
		p.nextToken()
		start := p.parseExpr()
		if !p.expectPeek(token.TO) {
			p.synchronize()
			return nil
		}
		p.nextToken()
		end := p.parseExpr()
		var step ast.Expression
		if p.peekTokenIs(token.BY) {
			p.nextToken()
			p.nextToken()
			step = p.parseExpr()
		}
		if !p.expectPeek(token.AS) {
			p.synchronize()
			return nil
		}
		p.nextToken()
		varPat := p.parsePatternPrimary()
		if !p.expectPeek(token.COLON) {
			p.synchronize()
			return nil
		}
		body := p.parseBlock()
		return &ast.CycleFromToStmt{Token: cycleTok, Start: start, End: end, Step: step, Var: varPat, Body: body}

	default:
		p.addErrorf("expected 'while', 'through', or 'from' after 'cycle', got %s", p.peekToken.Type)
		p.synchronize()
		return nil
	}
}

func (p *Parser) parseAttemptStmt() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.COLON) {
		p.synchronize()
		return nil
	}
	tryBody := p.parseBlock()
	if !p.expectPeek(token.RECOVER) {
		p.synchronize()
		return &ast.AttemptStmt{Token: tok, TryBody: tryBody}
	}
	var errName *ast.Identifier
	if p.peekTokenIs(token.AS) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			p.synchronize()
			return &ast.AttemptStmt{Token: tok, TryBody: tryBody}
		}
		errName = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	}
	if !p.expectPeek(token.COLON) {
		p.synchronize()
		return &ast.AttemptStmt{Token: tok, TryBody: tryBody, ErrorName: errName}
	}
	recoverBody := p.parseBlock()
	return &ast.AttemptStmt{Token: tok, TryBody: tryBody, ErrorName: errName, RecoverBody: recoverBody}
}

// parseProtocol parses a named `protocol`/`sequence` definition, used both
// at statement level and as the body of an `entity`'s method list.
// isAsync is true when the definition was preceded by `await` (marking it a
// cooperative coroutine per spec.md §4.4.3/§5).
func (p *Parser) parseProtocol(isAsync bool) ast.Statement {
	protoTok := p.curToken
	isSeq := protoTok.Type == token.SEQUENCE
	if !p.expectPeek(token.IDENT) {
		p.synchronize()
		return nil
	}
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	if !p.expectPeek(token.LPAREN) {
		p.synchronize()
		return nil
	}
	params := p.parseParameterList()
	if !p.expectPeek(token.COLON) {
		p.synchronize()
		return nil
	}
	body := p.parseBlock()
	return &ast.Protocol{
		Token:      protoTok,
		Name:       name,
		Parameters: params,
		Body:       body,
		IsSequence: isSeq,
		IsAsync:    isAsync,
	}
}

func (p *Parser) parseEntityStmt() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		p.synchronize()
		return nil
	}
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	var parent *ast.Identifier
	if p.peekTokenIs(token.INHERITS) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			p.synchronize()
			return nil
		}
		parent = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	}

	if !p.expectPeek(token.COLON) {
		p.synchronize()
		return nil
	}
	if !p.expectPeek(token.NEWLINE) {
		p.synchronize()
		return nil
	}
	if !p.expectPeek(token.INDENT) {
		p.synchronize()
		return nil
	}
	p.nextToken()

	stmt := &ast.EntityStmt{Token: tok, Name: name, Parent: parent}
	for !p.curTokenIs(token.DEDENT) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		isAsync := false
		if p.curTokenIs(token.AWAIT) {
			isAsync = true
			p.nextToken()
		}
		var method ast.Statement
		switch {
		case p.curTokenIs(token.CONSTRUCT):
			method = p.parseConstructMethod(isAsync)
		case p.curTokenIs(token.PROTOCOL), p.curTokenIs(token.SEQUENCE):
			method = p.parseProtocol(isAsync)
		default:
			p.addErrorf("expected method definition inside entity body, got %s", p.curToken.Type)
			p.synchronize()
			p.nextToken()
			continue
		}
		if proto, ok := method.(*ast.Protocol); ok {
			stmt.Methods = append(stmt.Methods, proto)
		}
		p.nextToken()
	}
	return stmt
}

// parseConstructMethod parses `construct(params): body`, kei's
// constructor, reusing the Protocol node with Name set to "construct" so
// FindMethod-style lookups treat it uniformly with other methods.
func (p *Parser) parseConstructMethod(isAsync bool) ast.Statement {
	ctorTok := p.curToken
	name := &ast.Identifier{Token: ctorTok, Value: "construct"}
	if !p.expectPeek(token.LPAREN) {
		p.synchronize()
		return nil
	}
	params := p.parseParameterList()
	if !p.expectPeek(token.COLON) {
		p.synchronize()
		return nil
	}
	body := p.parseBlock()
	return &ast.Protocol{Token: ctorTok, Name: name, Parameters: params, Body: body, IsAsync: isAsync}
}

// parseParameterList parses `(` already-consumed-as-curToken `param, ...)`,
// leaving curToken on the closing RPAREN.
func (p *Parser) parseParameterList() []*ast.Parameter {
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return nil
	}
	p.nextToken()
	var params []*ast.Parameter
	params = append(params, p.parseParameter())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, p.parseParameter())
	}
	p.expectPeek(token.RPAREN)
	return params
}

func (p *Parser) parseParameter() *ast.Parameter {
	isRest := false
	if p.curTokenIs(token.STAR) {
		isRest = true
		p.nextToken()
	}
	var pattern ast.Expression
	if p.curTokenIs(token.LBRACKET) {
		pattern = p.parseListPatternLiteral()
	} else {
		pattern = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	}
	var def ast.Expression
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		def = p.parseExpr()
	}
	return &ast.Parameter{Pattern: pattern, Default: def, IsRest: isRest}
}

// parseListPatternLiteral parses `[a, b, *rest]` destructuring patterns,
// used for parameter lists, `designate`/assignment targets, and `as` loop
// variables. curToken must be LBRACKET; it leaves curToken on RBRACKET.
func (p *Parser) parseListPatternLiteral() *ast.ListPattern {
	lp := &ast.ListPattern{Token: p.curToken, RestIdx: -1}
	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return lp
	}
	p.nextToken()
	idx := 0
	for {
		isRest := false
		if p.curTokenIs(token.STAR) {
			isRest = true
			p.nextToken()
		}
		var el ast.Expression
		if p.curTokenIs(token.LBRACKET) {
			el = p.parseListPatternLiteral()
		} else {
			el = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
		}
		lp.Elements = append(lp.Elements, el)
		if isRest {
			lp.RestIdx = idx
		}
		idx++
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	p.expectPeek(token.RBRACKET)
	return lp
}

// parsePatternPrimary parses a single binding target in an `as` position:
// either a plain identifier or a `[a, b]` destructuring pattern.
func (p *Parser) parsePatternPrimary() ast.Expression {
	if p.curTokenIs(token.LBRACKET) {
		return p.parseListPatternLiteral()
	}
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

// parseExpressionOrAssignment parses a bare expression statement, then
// rewrites it into an AssignStatement if it turns out to be followed by
// `=` or `:=` — this lets ordinary Pratt expression parsing handle
// arbitrarily complex assignment targets (members, indices, destructuring
// lists) without a separate grammar path.
func (p *Parser) parseExpressionOrAssignment() ast.Statement {
	startTok := p.curToken
	expr := p.parseExpr()
	if expr == nil {
		p.synchronize()
		return nil
	}
	if p.peekTokenIs(token.ASSIGN) || p.peekTokenIs(token.WALRUS) {
		walrus := p.peekTokenIs(token.WALRUS)
		p.nextToken()
		opTok := p.curToken
		p.nextToken()
		value := p.parseExpr()
		target, ok := exprToAssignTarget(expr)
		if !ok {
			p.addErrorf("invalid assignment target %s", expr.String())
		}
		return &ast.AssignStatement{Token: opTok, Target: target, Value: value, Walrus: walrus}
	}
	return &ast.ExpressionStatement{Token: startTok, Expression: expr}
}

// exprToAssignTarget validates and, for destructuring, converts a parsed
// expression into a legal assignment target per spec.md §3.3/§3.4.
func exprToAssignTarget(expr ast.Expression) (ast.Expression, bool) {
	switch e := expr.(type) {
	case *ast.Identifier, *ast.MemberExpression, *ast.IndexExpression:
		return e, true
	case *ast.ListLiteral:
		pattern := &ast.ListPattern{Token: e.Token, RestIdx: -1}
		for i, el := range e.Elements {
			if spread, ok := el.(*ast.SpreadExpression); ok {
				inner, ok := exprToAssignTarget(spread.Value)
				if !ok {
					return nil, false
				}
				pattern.RestIdx = i
				pattern.Elements = append(pattern.Elements, inner)
				continue
			}
			inner, ok := exprToAssignTarget(el)
			if !ok {
				return nil, false
			}
			pattern.Elements = append(pattern.Elements, inner)
		}
		return pattern, true
	default:
		return nil, false
	}
}
