package parser

import (
	"strconv"

	"github.com/oinkcat/scripting-lang/internal/ast"
	"github.com/oinkcat/scripting-lang/internal/token"
)

var assignOps = map[token.TokenType]bool{
	token.ASSIGN:          true,
	token.PLUS_ASSIGN:     true,
	token.MINUS_ASSIGN:    true,
	token.ASTERISK_ASSIGN: true,
	token.SLASH_ASSIGN:    true,
	token.PERCENT_ASSIGN:  true,
}

// parseAssignOrCallStatement handles statements starting with an
// identifier: an assignment to a variable or element, or a call.
func (p *Parser) parseAssignOrCallStatement() ast.Statement {
	startTok := p.curToken
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}

	if assignOps[p.peekToken.Type] {
		p.nextToken()
		op := p.curToken.Literal

		switch expr.(type) {
		case *ast.Identifier, *ast.IndexExpression:
		default:
			p.addError("invalid assignment target")
			return nil
		}

		stmt := &ast.AssignStatement{Token: startTok, Target: expr, Operator: op}
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
		return stmt
	}

	if _, ok := expr.(*ast.CallExpression); !ok {
		p.addError("expected assignment or call")
		return nil
	}
	return &ast.ExpressionStatement{Token: startTok, Expression: expr}
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}

	for {
		p.nextToken()
		cond := p.parseExpression(LOWEST)
		if cond == nil {
			return nil
		}
		if !p.expectPeek(token.NEWLINE) {
			return nil
		}
		p.nextToken()
		body := p.parseBlock(blockNested)
		if len(p.errors) > 0 {
			return nil
		}
		stmt.Branches = append(stmt.Branches, &ast.ConditionalBranch{
			Condition: cond,
			Body:      body,
		})
		if !p.curTokenIs(token.ELSIF) {
			break
		}
	}

	if p.curTokenIs(token.ELSE) {
		if !p.expectPeek(token.NEWLINE) {
			return nil
		}
		p.nextToken()
		stmt.Else = p.parseBlock(blockNested)
		if len(p.errors) > 0 {
			return nil
		}
	}

	if !p.curTokenIs(token.END) {
		p.addError("expected 'end' to close if statement")
		return nil
	}
	return stmt
}

// parseForStatement handles both loop forms: `for cond` (while) and
// `for collection as item` (iteration).
func (p *Parser) parseForStatement() ast.Statement {
	startTok := p.curToken

	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}

	var iterVar string
	if p.peekTokenIs(token.AS) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		iterVar = p.curToken.Literal
	}

	if !p.expectPeek(token.NEWLINE) {
		return nil
	}
	p.nextToken()
	body := p.parseBlock(blockNested)
	if len(p.errors) > 0 {
		return nil
	}
	if !p.curTokenIs(token.END) {
		p.addError("expected 'end' to close for loop")
		return nil
	}

	if iterVar == "" {
		return &ast.WhileStatement{Token: startTok, Condition: expr, Body: body}
	}
	return &ast.ForEachStatement{
		Token:      startTok,
		Collection: expr,
		Var:        iterVar,
		Body:       body,
	}
}

func (p *Parser) parseLoopControlStatement() ast.Statement {
	tok := p.curToken
	depth := 1

	if p.peekTokenIs(token.NUMBER) {
		p.nextToken()
		n, err := strconv.Atoi(p.curToken.Literal)
		if err != nil || n < 1 {
			p.addError("invalid loop depth %q", p.curToken.Literal)
			return nil
		}
		depth = n
	}

	if tok.Type == token.CONTINUE {
		return &ast.ContinueStatement{Token: tok, Depth: depth}
	}
	return &ast.BreakStatement{Token: tok, Depth: depth}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	if !p.peekTokenIs(token.NEWLINE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
	}
	return stmt
}

func (p *Parser) parseEmitStatement() ast.Statement {
	stmt := &ast.EmitStatement{Token: p.curToken}

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}

	if p.peekTokenIs(token.AS) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		stmt.Key = p.curToken.Literal
	}
	return stmt
}

func (p *Parser) parseUseStatement() ast.Statement {
	stmt := &ast.UseStatement{Token: p.curToken}

	names := p.parseIdentList()
	if names == nil {
		return nil
	}
	stmt.Names = names
	return stmt
}

func (p *Parser) parseImportStatement() *ast.ImportStatement {
	stmt := &ast.ImportStatement{Token: p.curToken}

	if p.peekTokenIs(token.NATIVE) {
		p.nextToken()
		stmt.Native = true
	}

	names := p.parseIdentList()
	if names == nil {
		return nil
	}
	stmt.Names = names
	return stmt
}

// parseIdentList reads a comma-separated identifier list up to the end
// of the line.
func (p *Parser) parseIdentList() []string {
	var names []string

	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		names = append(names, p.curToken.Literal)
		if !p.peekTokenIs(token.COMMA) {
			return names
		}
		p.nextToken()
	}
}

// parseFunctionStatement parses a top-level function definition:
//
//	func name(a, b) use g ... end
//	func name(a, b) => stmt
func (p *Parser) parseFunctionStatement() ast.Statement {
	stmt := &ast.FunctionStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = p.curToken.Literal

	params := p.parseParamList()
	if params == nil {
		return nil
	}
	stmt.Parameters = params

	body := p.parseFunctionBody()
	if body == nil {
		return nil
	}
	stmt.Body = body
	return stmt
}

// parseParamList parses `(a, b, c)` after a function name.
func (p *Parser) parseParamList() []string {
	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	params := []string{}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}

	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		params = append(params, p.curToken.Literal)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return params
}

// parseFunctionBody parses either the one-line `=> stmt` form or a
// multi-line body closed with `end`. An optional `use` clause after the
// parameter list becomes the first body statement.
func (p *Parser) parseFunctionBody() *ast.BlockStatement {
	var uses ast.Statement
	if p.peekTokenIs(token.USE) {
		p.nextToken()
		uses = p.parseUseStatement()
		if uses == nil {
			return nil
		}
	}

	var body *ast.BlockStatement
	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		body = &ast.BlockStatement{Token: p.curToken}
		p.nextToken()
		stmt := p.parseStatement(blockFunc)
		if stmt == nil {
			return nil
		}
		body.Statements = append(body.Statements, stmt)
	} else {
		if !p.expectPeek(token.NEWLINE) {
			return nil
		}
		p.nextToken()
		body = p.parseBlock(blockFunc)
		if len(p.errors) > 0 {
			return nil
		}
		if !p.curTokenIs(token.END) {
			p.addError("expected 'end' to close function body")
			return nil
		}
	}

	if uses != nil {
		body.Statements = append([]ast.Statement{uses}, body.Statements...)
	}
	return body
}
