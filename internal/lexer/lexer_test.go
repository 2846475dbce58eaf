package lexer

import (
	"testing"

	"github.com/funvibe/funrelay/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `const Widget &(*)[5]::, ... unsigned long enum`

	expected := []struct {
		typ    token.TokenType
		lexeme string
	}{
		{token.CONST, "const"},
		{token.IDENT, "Widget"},
		{token.AMP, "&"},
		{token.LPAREN, "("},
		{token.ASTERISK, "*"},
		{token.RPAREN, ")"},
		{token.LBRACKET, "["},
		{token.INT, "5"},
		{token.RBRACKET, "]"},
		{token.SCOPE, "::"},
		{token.COMMA, ","},
		{token.ELLIPSIS, "..."},
		{token.FUNDAMENTAL, "unsigned"},
		{token.FUNDAMENTAL, "long"},
		{token.ENUM, "enum"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp.typ {
			t.Fatalf("tokens[%d] type = %q, want %q (lexeme %q)", i, tok.Type, exp.typ, tok.Lexeme)
		}
		if tok.Lexeme != exp.lexeme {
			t.Fatalf("tokens[%d] lexeme = %q, want %q", i, tok.Lexeme, exp.lexeme)
		}
	}
}

func TestAmpersands(t *testing.T) {
	l := New("& && &&&")
	seq := []token.TokenType{token.AMP, token.AMPAMP, token.AMPAMP, token.AMP, token.EOF}
	for i, want := range seq {
		if tok := l.NextToken(); tok.Type != want {
			t.Fatalf("tokens[%d] = %q, want %q", i, tok.Type, want)
		}
	}
}

func TestIntLiteral(t *testing.T) {
	l := New("[128]")
	if tok := l.NextToken(); tok.Type != token.LBRACKET {
		t.Fatalf("first token = %q, want [", tok.Type)
	}
	tok := l.NextToken()
	if tok.Type != token.INT {
		t.Fatalf("second token = %q, want INT", tok.Type)
	}
	if got, ok := tok.Literal.(int); !ok || got != 128 {
		t.Errorf("INT literal = %v, want 128", tok.Literal)
	}
}

func TestComments(t *testing.T) {
	l := New("int /* inline */ * // trailing\n& ")
	seq := []token.TokenType{token.FUNDAMENTAL, token.ASTERISK, token.AMP, token.EOF}
	for i, want := range seq {
		if tok := l.NextToken(); tok.Type != want {
			t.Fatalf("tokens[%d] = %q, want %q", i, tok.Type, want)
		}
	}
}

func TestIllegalAndPositions(t *testing.T) {
	l := New("int $")
	if tok := l.NextToken(); tok.Type != token.FUNDAMENTAL {
		t.Fatalf("first token = %q, want FUNDAMENTAL", tok.Type)
	}
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("second token = %q, want ILLEGAL", tok.Type)
	}
	if tok.Line != 1 || tok.Column != 5 {
		t.Errorf("ILLEGAL position = %d:%d, want 1:5", tok.Line, tok.Column)
	}
}
