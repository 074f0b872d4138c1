package lexer

import (
	"testing"

	"github.com/kei-lang/kei/token"
)

func collect(input string) []token.Token {
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF || tok.Type == token.ERROR {
			break
		}
	}
	return toks
}

func types(toks []token.Token) []token.TokenType {
	out := make([]token.TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestSimpleIndentBlock(t *testing.T) {
	input := "foresee x:\n    declare(1)\ndeclare(2)\n"
	got := types(collect(input))
	want := []token.TokenType{
		token.FORESEE, token.IDENT, token.COLON, token.NEWLINE,
		token.INDENT, token.IDENT, token.LPAREN, token.INT, token.RPAREN, token.NEWLINE,
		token.DEDENT, token.IDENT, token.LPAREN, token.INT, token.RPAREN, token.NEWLINE,
		token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d\ngot: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token[%d] = %s, want %s (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestNestedDedentsAtEOF(t *testing.T) {
	input := "foresee a:\n    foresee b:\n        declare(1)\n"
	got := types(collect(input))
	// Expect two DEDENTs to drain both nested levels before EOF.
	dedents := 0
	for _, tt := range got {
		if tt == token.DEDENT {
			dedents++
		}
	}
	if dedents != 2 {
		t.Fatalf("expected 2 DEDENT tokens at EOF, got %d (%v)", dedents, got)
	}
}

func TestBlankAndCommentLinesDoNotAffectIndent(t *testing.T) {
	input := "foresee x:\n    declare(1)\n\n    # a comment\n    declare(2)\n"
	toks := collect(input)
	indentCount, dedentCount := 0, 0
	for _, tok := range toks {
		switch tok.Type {
		case token.INDENT:
			indentCount++
		case token.DEDENT:
			dedentCount++
		}
	}
	if indentCount != 1 {
		t.Errorf("expected exactly 1 INDENT, got %d", indentCount)
	}
	if dedentCount != 1 {
		t.Errorf("expected exactly 1 DEDENT (at EOF), got %d", dedentCount)
	}
}

func TestMismatchedDedentIsError(t *testing.T) {
	input := "foresee x:\n        declare(1)\n    declare(2)\n"
	toks := collect(input)
	found := false
	for _, tok := range toks {
		if tok.Type == token.ERROR {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an ERROR token for a mismatched dedent, got %v", toks)
	}
}

func TestOperators(t *testing.T) {
	input := "** // == != <= >= => := ..."
	got := types(collect(input))
	want := []token.TokenType{
		token.DSTAR, token.DSLASH, token.EQ, token.NOT_EQ, token.LT_EQ,
		token.GT_EQ, token.ARROW, token.WALRUS, token.ELLIPSIS, token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestNumbers(t *testing.T) {
	l := New("42 3.14 1e3 2.5e-2")
	intTok := l.NextToken()
	if intTok.Type != token.INT || intTok.IntValue != 42 {
		t.Fatalf("got %+v", intTok)
	}
	floatTok := l.NextToken()
	if floatTok.Type != token.FLOAT || floatTok.FloatValue != 3.14 {
		t.Fatalf("got %+v", floatTok)
	}
	expTok := l.NextToken()
	if expTok.Type != token.FLOAT || expTok.FloatValue != 1000 {
		t.Fatalf("got %+v", expTok)
	}
	expTok2 := l.NextToken()
	if expTok2.Type != token.FLOAT || expTok2.FloatValue != 0.025 {
		t.Fatalf("got %+v", expTok2)
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb\t\"c\""`)
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("got %+v", tok)
	}
	want := "a\nb\t\"c\""
	if tok.Literal != want {
		t.Fatalf("got %q, want %q", tok.Literal, want)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"abc`)
	tok := l.NextToken()
	if tok.Type != token.ERROR {
		t.Fatalf("expected ERROR, got %+v", tok)
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	got := types(collect("sequence g designate x self"))
	want := []token.TokenType{token.SEQUENCE, token.IDENT, token.DESIGNATE, token.IDENT, token.SELF, token.EOF}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
