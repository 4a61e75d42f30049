package token

type TokenType string

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"
	NEWLINE = "NEWLINE"

	IDENT  = "IDENT"
	NUMBER = "NUMBER"
	STRING = "STRING"

	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"
	PERCENT  = "%"
	CONCAT   = "&"

	PLUS_ASSIGN     = "+="
	MINUS_ASSIGN    = "-="
	ASTERISK_ASSIGN = "*="
	SLASH_ASSIGN    = "/="
	PERCENT_ASSIGN  = "%="

	LT     = "<"
	GT     = ">"
	LE     = "<="
	GE     = ">="
	EQ     = "=="
	NOT_EQ = "!="

	ARROW = "=>"

	COMMA = ","
	DOT   = "."
	COLON = ":"

	LPAREN   = "("
	RPAREN   = ")"
	LBRACKET = "["
	RBRACKET = "]"
	LBRACE   = "{"
	RBRACE   = "}"

	// Keywords
	IF       = "IF"
	ELSIF    = "ELSIF"
	ELSE     = "ELSE"
	FOR      = "FOR"
	AS       = "AS"
	BREAK    = "BREAK"
	CONTINUE = "CONTINUE"
	FUNC     = "FUNC"
	RETURN   = "RETURN"
	END      = "END"
	USE      = "USE"
	IMPORT   = "IMPORT"
	NATIVE   = "NATIVE"
	EMIT     = "EMIT"
	NOT      = "NOT"
	OR       = "OR"
	AND      = "AND"
	XOR      = "XOR"
	REF      = "REF"
	NEW      = "NEW"
)

var keywords = map[string]TokenType{
	"if":       IF,
	"elsif":    ELSIF,
	"else":     ELSE,
	"for":      FOR,
	"as":       AS,
	"break":    BREAK,
	"continue": CONTINUE,
	"func":     FUNC,
	"return":   RETURN,
	"end":      END,
	"use":      USE,
	"import":   IMPORT,
	"native":   NATIVE,
	"emit":     EMIT,
	"not":      NOT,
	"or":       OR,
	"and":      AND,
	"xor":      XOR,
	"ref":      REF,
	"new":      NEW,
}

// LookupIdent maps an identifier to its keyword token type, or IDENT
// if it is not a reserved word.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
