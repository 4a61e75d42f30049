package lexer

import (
	"strings"

	"github.com/oinkcat/scripting-lang/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	if l.ch == '#' {
		l.skipComment()
	}

	var tok token.Token

	switch l.ch {
	case '\n':
		tok = l.newToken(token.NEWLINE, "\n")
	case '=':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = l.newToken(token.EQ, "==")
		case '>':
			l.readChar()
			tok = l.newToken(token.ARROW, "=>")
		default:
			tok = l.newToken(token.ASSIGN, "=")
		}
	case '+':
		tok = l.mathOrAssign(token.PLUS, token.PLUS_ASSIGN)
	case '-':
		tok = l.mathOrAssign(token.MINUS, token.MINUS_ASSIGN)
	case '*':
		tok = l.mathOrAssign(token.ASTERISK, token.ASTERISK_ASSIGN)
	case '/':
		tok = l.mathOrAssign(token.SLASH, token.SLASH_ASSIGN)
	case '%':
		tok = l.mathOrAssign(token.PERCENT, token.PERCENT_ASSIGN)
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.LE, "<=")
		} else {
			tok = l.newToken(token.LT, "<")
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.GE, ">=")
		} else {
			tok = l.newToken(token.GT, ">")
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.NOT_EQ, "!=")
		} else {
			tok = l.newToken(token.ILLEGAL, string(l.ch))
		}
	case '&':
		tok = l.newToken(token.CONCAT, "&")
	case ',':
		tok = l.newToken(token.COMMA, ",")
	case '.':
		tok = l.newToken(token.DOT, ".")
	case ':':
		tok = l.newToken(token.COLON, ":")
	case '(':
		tok = l.newToken(token.LPAREN, "(")
	case ')':
		tok = l.newToken(token.RPAREN, ")")
	case '[':
		tok = l.newToken(token.LBRACKET, "[")
	case ']':
		tok = l.newToken(token.RBRACKET, "]")
	case '{':
		tok = l.newToken(token.LBRACE, "{")
	case '}':
		tok = l.newToken(token.RBRACE, "}")
	case '"':
		return l.readString()
	case 0:
		tok = l.newToken(token.EOF, "")
	default:
		if isLetter(l.ch) {
			return l.readIdentifier()
		}
		if isDigit(l.ch) {
			return l.readNumber()
		}
		tok = l.newToken(token.ILLEGAL, string(l.ch))
	}

	l.readChar()
	return tok
}

func (l *Lexer) newToken(t token.TokenType, literal string) token.Token {
	return token.Token{Type: t, Literal: literal, Line: l.line, Column: l.column}
}

func (l *Lexer) mathOrAssign(plain, withAssign token.TokenType) token.Token {
	if l.peekChar() == '=' {
		op := string(l.ch) + "="
		l.readChar()
		return l.newToken(withAssign, op)
	}
	return l.newToken(plain, string(l.ch))
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// readString reads a double-quoted literal. Interpolation markers are
// kept verbatim; the parser splits them into segments.
func (l *Lexer) readString() token.Token {
	line, column := l.line, l.column
	var sb strings.Builder

	for {
		l.readChar()
		if l.ch == '"' || l.ch == 0 {
			break
		}
		sb.WriteByte(l.ch)
	}

	typ := token.TokenType(token.STRING)
	if l.ch == 0 {
		typ = token.ILLEGAL
	} else {
		l.readChar() // consume closing quote
	}

	return token.Token{Type: typ, Literal: sb.String(), Line: line, Column: column}
}

func (l *Lexer) readIdentifier() token.Token {
	line, column := l.line, l.column
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	literal := l.input[start:l.position]

	return token.Token{
		Type:    token.LookupIdent(literal),
		Literal: literal,
		Line:    line,
		Column:  column,
	}
}

func (l *Lexer) readNumber() token.Token {
	line, column := l.line, l.column
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return token.Token{
		Type:    token.NUMBER,
		Literal: l.input[start:l.position],
		Line:    line,
		Column:  column,
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == '$'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
