package token_test

import (
	"testing"

	"ember/internal/source"
	"ember/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		kind token.Kind
		want token.Category
	}{
		{token.IntLit, token.CatIntLiteral},
		{token.BoolLit, token.CatBoolLiteral},
		{token.Ident, token.CatIdentifier},
		{token.KwVar, token.CatKeyword},
		{token.KwUnit, token.CatKeyword},
		{token.KwNot, token.CatUnaryOp},
		{token.KwAnd, token.CatBinaryOp},
		{token.KwOr, token.CatBinaryOp},
		{token.Assign, token.CatBinaryOp},
		{token.Minus, token.CatBinaryOp},
		{token.Percent, token.CatBinaryOp},
		{token.LParen, token.CatPunctuation},
		{token.Colon, token.CatPunctuation},
		{token.EOF, token.CatEnd},
	}
	for _, tt := range tests {
		if got := tt.kind.Category(); got != tt.want {
			t.Errorf("%v.Category() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestLookupKeyword(t *testing.T) {
	for word, want := range map[string]token.Kind{
		"var": token.KwVar, "then": token.KwThen, "Int": token.KwInt,
		"not": token.KwNot, "and": token.KwAnd, "true": token.BoolLit, "false": token.BoolLit,
	} {
		got, ok := token.LookupKeyword(word)
		if !ok || got != want {
			t.Errorf("LookupKeyword(%q) = %v, %v; want %v", word, got, ok, want)
		}
	}
	for _, word := range []string{"int", "VAR", "print_int", "fn"} {
		if _, ok := token.LookupKeyword(word); ok {
			t.Errorf("%q must not be a keyword", word)
		}
	}
}

func TestAllowsPrefixAfter(t *testing.T) {
	yes := []token.Kind{token.Invalid, token.Plus, token.Assign, token.LParen, token.Comma,
		token.Semicolon, token.LBrace, token.RBrace, token.RParen, token.KwIf, token.KwThen, token.KwNot, token.KwAnd}
	for _, k := range yes {
		if !tok(k).AllowsPrefixAfter() {
			t.Errorf("prefix must be allowed after %v", k)
		}
	}
	no := []token.Kind{token.Ident, token.IntLit, token.BoolLit}
	for _, k := range no {
		if tok(k).AllowsPrefixAfter() {
			t.Errorf("prefix must not be allowed after %v", k)
		}
	}
}
