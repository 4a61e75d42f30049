package lexer

import (
	"testing"

	"github.com/oinkcat/scripting-lang/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `count = 10
if count >= 5
    emit "big: ${count}"
end
h = new { lol: 100, m: ref f }
a[0] += 2.5 # trailing comment
`

	expected := []struct {
		typ     token.TokenType
		literal string
	}{
		{token.IDENT, "count"},
		{token.ASSIGN, "="},
		{token.NUMBER, "10"},
		{token.NEWLINE, "\n"},
		{token.IF, "if"},
		{token.IDENT, "count"},
		{token.GE, ">="},
		{token.NUMBER, "5"},
		{token.NEWLINE, "\n"},
		{token.EMIT, "emit"},
		{token.STRING, "big: ${count}"},
		{token.NEWLINE, "\n"},
		{token.END, "end"},
		{token.NEWLINE, "\n"},
		{token.IDENT, "h"},
		{token.ASSIGN, "="},
		{token.NEW, "new"},
		{token.LBRACE, "{"},
		{token.IDENT, "lol"},
		{token.COLON, ":"},
		{token.NUMBER, "100"},
		{token.COMMA, ","},
		{token.IDENT, "m"},
		{token.COLON, ":"},
		{token.REF, "ref"},
		{token.IDENT, "f"},
		{token.RBRACE, "}"},
		{token.NEWLINE, "\n"},
		{token.IDENT, "a"},
		{token.LBRACKET, "["},
		{token.NUMBER, "0"},
		{token.RBRACKET, "]"},
		{token.PLUS_ASSIGN, "+="},
		{token.NUMBER, "2.5"},
		{token.NEWLINE, "\n"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want.typ {
			t.Fatalf("token %d: type = %q, want %q (literal %q)", i, tok.Type, want.typ, tok.Literal)
		}
		if tok.Literal != want.literal {
			t.Fatalf("token %d: literal = %q, want %q", i, tok.Literal, want.literal)
		}
	}
}

func TestKeywordsAndOperators(t *testing.T) {
	input := `for x as i or and xor not break continue 2 use import native => func return`

	want := []token.TokenType{
		token.FOR, token.IDENT, token.AS, token.IDENT,
		token.OR, token.AND, token.XOR, token.NOT,
		token.BREAK, token.CONTINUE, token.NUMBER,
		token.USE, token.IMPORT, token.NATIVE,
		token.ARROW, token.FUNC, token.RETURN,
		token.EOF,
	}

	l := New(input)
	for i, typ := range want {
		tok := l.NextToken()
		if tok.Type != typ {
			t.Fatalf("token %d: type = %q, want %q", i, tok.Type, typ)
		}
	}
}

func TestLineNumbers(t *testing.T) {
	l := New("a = 1\nb = 2\n")

	var bTok token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		if tok.Type == token.IDENT && tok.Literal == "b" {
			bTok = tok
		}
	}

	if bTok.Line != 2 {
		t.Errorf("line of second assignment = %d, want 2", bTok.Line)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`s = "oops`)

	var illegal bool
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			illegal = true
			break
		}
		if tok.Type == token.EOF {
			break
		}
	}

	if !illegal {
		t.Error("expected ILLEGAL token for unterminated string")
	}
}
