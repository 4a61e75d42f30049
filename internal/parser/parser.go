package parser

import (
	"fmt"

	"github.com/oinkcat/scripting-lang/internal/ast"
	"github.com/oinkcat/scripting-lang/internal/lexer"
	"github.com/oinkcat/scripting-lang/internal/token"
)

// Operator precedence levels, loosest first. Concatenation binds the
// loosest so `"n: " & a + b` stringifies the whole sum.
const (
	_ int = iota
	LOWEST
	STRCONCAT // &
	LOGIC     // or, and, xor
	COMPARE   // < <= > >= == !=
	SUM       // + -
	PRODUCT   // * / %
	PREFIX    // -x, not x
	ACCESS    // f(x), a[i], h.k
)

var precedences = map[token.TokenType]int{
	token.CONCAT:   STRCONCAT,
	token.OR:       LOGIC,
	token.AND:      LOGIC,
	token.XOR:      LOGIC,
	token.LT:       COMPARE,
	token.LE:       COMPARE,
	token.GT:       COMPARE,
	token.GE:       COMPARE,
	token.EQ:       COMPARE,
	token.NOT_EQ:   COMPARE,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.PERCENT:  PRODUCT,
	token.LPAREN:   ACCESS,
	token.LBRACKET: ACCESS,
	token.DOT:      ACCESS,
}

// Block kinds: statements legal at the top level differ from those in
// function bodies and nested blocks.
const (
	blockOuter = iota
	blockFunc
	blockNested
)

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []string

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:    p.parseIdentifier,
		token.NUMBER:   p.parseNumberLiteral,
		token.STRING:   p.parseStringLiteral,
		token.MINUS:    p.parsePrefixExpression,
		token.NOT:      p.parsePrefixExpression,
		token.LPAREN:   p.parseGroupedExpression,
		token.LBRACKET: p.parseArrayLiteral,
		token.LBRACE:   p.parseHashLiteral,
		token.NEW:      p.parseNewObject,
		token.REF:      p.parseRefExpression,
		token.FUNC:     p.parseFunctionLiteral,
		token.IF:       p.parseCondExpression,
	}
	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.CONCAT:   p.parseInfixExpression,
		token.OR:       p.parseInfixExpression,
		token.AND:      p.parseInfixExpression,
		token.XOR:      p.parseInfixExpression,
		token.LT:       p.parseInfixExpression,
		token.LE:       p.parseInfixExpression,
		token.GT:       p.parseInfixExpression,
		token.GE:       p.parseInfixExpression,
		token.EQ:       p.parseInfixExpression,
		token.NOT_EQ:   p.parseInfixExpression,
		token.PLUS:     p.parseInfixExpression,
		token.MINUS:    p.parseInfixExpression,
		token.ASTERISK: p.parseInfixExpression,
		token.SLASH:    p.parseInfixExpression,
		token.PERCENT:  p.parseInfixExpression,
		token.LPAREN:   p.parseCallExpression,
		token.LBRACKET: p.parseIndexExpression,
		token.DOT:      p.parseDotExpression,
	}

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
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

func (p *Parser) addError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, fmt.Sprintf("line %d: %s", p.curToken.Line, msg))
}

func (p *Parser) peekError(t token.TokenType) {
	p.errors = append(p.errors, fmt.Sprintf("line %d: expected %s, got %s (%q)",
		p.peekToken.Line, t, p.peekToken.Type, p.peekToken.Literal))
}

// skipNewlines advances past any run of NEWLINE tokens.
func (p *Parser) skipNewlines() {
	for p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

// expectEndOfStatement consumes the statement terminator.
func (p *Parser) expectEndOfStatement() bool {
	if p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.EOF) {
		p.nextToken()
		return true
	}
	p.peekError(token.NEWLINE)
	return false
}

// ParseProgram parses the whole token stream into a Program node.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	p.skipNewlines()
	for !p.curTokenIs(token.EOF) {
		stmt := p.parseTopLevelStatement(program)
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		if len(p.errors) > 0 {
			break
		}
		if !p.expectEndOfStatement() {
			break
		}
		p.nextToken()
		p.skipNewlines()
	}

	return program
}

func (p *Parser) parseTopLevelStatement(program *ast.Program) ast.Statement {
	switch p.curToken.Type {
	case token.IMPORT:
		imp := p.parseImportStatement()
		if imp != nil {
			program.Imports = append(program.Imports, imp)
		}
		return imp
	case token.FUNC:
		return p.parseFunctionStatement()
	default:
		return p.parseStatement(blockOuter)
	}
}

func (p *Parser) parseStatement(blockKind int) ast.Statement {
	switch p.curToken.Type {
	case token.IDENT:
		return p.parseAssignOrCallStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.BREAK, token.CONTINUE:
		return p.parseLoopControlStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.EMIT:
		return p.parseEmitStatement()
	case token.USE:
		if blockKind == blockNested {
			p.addError("use is allowed only at the top level or at a function body start")
			return nil
		}
		return p.parseUseStatement()
	case token.FUNC:
		p.addError("functions can be defined only at the top level")
		return nil
	case token.IMPORT:
		p.addError("import is allowed only at the top level")
		return nil
	default:
		p.addError("unexpected token %q", p.curToken.Literal)
		return nil
	}
}

// parseBlock parses statements until one of the stop tokens (end,
// elsif, else). The stop token is left as the current token.
func (p *Parser) parseBlock(blockKind int) *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}

	p.skipNewlines()
	for {
		switch p.curToken.Type {
		case token.END, token.ELSIF, token.ELSE:
			return block
		case token.EOF:
			p.addError("unexpected end of file, expected 'end'")
			return block
		}

		stmt := p.parseStatement(blockKind)
		if len(p.errors) > 0 {
			return block
		}
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if !p.expectEndOfStatement() {
			return block
		}
		p.nextToken()
		p.skipNewlines()
	}
}
