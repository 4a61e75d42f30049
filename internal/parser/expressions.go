package parser

import (
	"strconv"
	"strings"

	"github.com/oinkcat/scripting-lang/internal/ast"
	"github.com/oinkcat/scripting-lang/internal/lexer"
	"github.com/oinkcat/scripting-lang/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addError("unexpected token %q in expression", p.curToken.Literal)
		return nil
	}
	left := prefix()

	for left != nil && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError("could not parse %q as number", p.curToken.Literal)
		return nil
	}
	return &ast.NumberLiteral{Token: p.curToken, Value: value}
}

// parseStringLiteral splits a string literal into plain and ${expr}
// interpolation segments. Expressions inside segments are parsed with a
// nested parser over the segment source.
func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.curToken
	raw := tok.Literal

	if !strings.Contains(raw, "${") {
		return &ast.StringLiteral{Token: tok, Value: raw}
	}

	interp := &ast.InterpolatedString{Token: tok}
	rest := raw
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			break
		}
		stop := strings.Index(rest[start:], "}")
		if stop < 0 {
			p.addError("unterminated ${...} segment in string literal")
			return nil
		}
		stop += start

		if start > 0 {
			interp.Parts = append(interp.Parts, &ast.StringLiteral{Token: tok, Value: rest[:start]})
		}
		expr := p.parseSegmentExpression(rest[start+2 : stop])
		if expr == nil {
			return nil
		}
		interp.Parts = append(interp.Parts, expr)
		rest = rest[stop+1:]
	}
	if rest != "" {
		interp.Parts = append(interp.Parts, &ast.StringLiteral{Token: tok, Value: rest})
	}

	return interp
}

// parseSegmentExpression parses the expression inside one ${...}.
func (p *Parser) parseSegmentExpression(src string) ast.Expression {
	sub := New(lexer.New(src))
	expr := sub.parseExpression(LOWEST)
	if len(sub.errors) > 0 {
		p.addError("in string interpolation: %s", sub.errors[0])
		return nil
	}
	if expr == nil || !sub.peekTokenIs(token.EOF) {
		p.addError("invalid expression in string interpolation: %q", src)
		return nil
	}
	return expr
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.PrefixExpression{Token: p.curToken, Operator: p.curToken.Literal}
	p.nextToken()
	expr.Right = p.parseExpression(PREFIX)
	return expr
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{
		Token:    p.curToken,
		Left:     left,
		Operator: p.curToken.Literal,
	}
	precedence := p.curPrecedence()

	p.nextToken()
	// Concatenated strings may continue on the next line
	if expr.Operator == "&" {
		p.skipNewlines()
	}
	expr.Right = p.parseExpression(precedence)
	return expr
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	arr := &ast.ArrayLiteral{Token: p.curToken}

	p.nextToken()
	p.skipNewlines()
	for !p.curTokenIs(token.RBRACKET) {
		if p.curTokenIs(token.EOF) {
			p.addError("unterminated array literal")
			return nil
		}
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		arr.Elements = append(arr.Elements, elem)

		p.nextToken()
		p.skipNewlines()
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
			p.skipNewlines()
		} else if !p.curTokenIs(token.RBRACKET) {
			p.addError("expected ',' or ']' in array literal")
			return nil
		}
	}
	return arr
}

func (p *Parser) parseHashLiteral() ast.Expression {
	hash := &ast.HashLiteral{Token: p.curToken}

	p.nextToken()
	p.skipNewlines()
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.addError("unterminated hash literal")
			return nil
		}
		if !p.curTokenIs(token.IDENT) && !p.curTokenIs(token.NUMBER) {
			p.addError("expected hash key, got %q", p.curToken.Literal)
			return nil
		}
		key := p.curToken.Literal
		if !p.expectPeek(token.COLON) {
			return nil
		}

		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		hash.Pairs = append(hash.Pairs, ast.HashPair{Key: key, Value: value})

		p.nextToken()
		p.skipNewlines()
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
			p.skipNewlines()
		} else if !p.curTokenIs(token.RBRACE) {
			p.addError("expected ',' or '}' in hash literal")
			return nil
		}
	}
	return hash
}

func (p *Parser) parseNewObject() ast.Expression {
	tok := p.curToken

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	hash := p.parseHashLiteral()
	if hash == nil {
		return nil
	}
	return &ast.NewObject{Token: tok, Hash: hash.(*ast.HashLiteral)}
}

func (p *Parser) parseRefExpression() ast.Expression {
	expr := &ast.RefExpression{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	expr.Name = p.curToken.Literal

	if p.peekTokenIs(token.DOT) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		expr.Module = expr.Name
		expr.Name = p.curToken.Literal
	}
	return expr
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	lit := &ast.FunctionLiteral{Token: p.curToken}

	params := p.parseParamList()
	if params == nil {
		return nil
	}
	lit.Parameters = params

	body := p.parseFunctionBody()
	if body == nil {
		return nil
	}
	lit.Body = body
	return lit
}

// parseCondExpression parses the conditional expression form:
// if(cond, thenValue, elseValue)
func (p *Parser) parseCondExpression() ast.Expression {
	expr := &ast.CondExpression{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	expr.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.COMMA) {
		return nil
	}
	p.nextToken()
	expr.Then = p.parseExpression(LOWEST)
	if !p.expectPeek(token.COMMA) {
		return nil
	}
	p.nextToken()
	expr.Else = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	call := &ast.CallExpression{Token: p.curToken, Callee: callee}

	args := []ast.Expression{}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		call.Arguments = args
		return call
	}

	for {
		p.nextToken()
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		args = append(args, arg)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	call.Arguments = args
	return call
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	expr := &ast.IndexExpression{Token: p.curToken, Left: left}

	p.nextToken()
	expr.Index = p.parseExpression(LOWEST)
	if expr.Index == nil {
		return nil
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return expr
}

// parseDotExpression turns `left.name` into an index access with a
// string key. The Dot flag marks it as the method-binding access path.
func (p *Parser) parseDotExpression(left ast.Expression) ast.Expression {
	tok := p.curToken

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	return &ast.IndexExpression{
		Token: tok,
		Left:  left,
		Index: &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal},
		Dot:   true,
	}
}
