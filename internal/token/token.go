package token

import (
	"ember/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// Category reports the grammar category of the token.
func (t Token) Category() Category { return t.Kind.Category() }

// IsOperator reports whether the token is a unary or binary operator.
func (t Token) IsOperator() bool {
	return t.Kind >= KwNot && t.Kind <= Percent
}

// IsPunct reports whether the token is punctuation.
func (t Token) IsPunct() bool {
	return t.Kind.Category() == CatPunctuation
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind.Category() == CatKeyword
}

// AllowsPrefixAfter reports whether a '-' or 'not' following t is in prefix position.
// The zero Token stands for start of input.
func (t Token) AllowsPrefixAfter() bool {
	if t.Kind == Invalid {
		return true
	}
	return t.IsOperator() || t.IsPunct() || t.IsKeyword()
}
