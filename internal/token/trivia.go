package token

import "ember/internal/source"

// TriviaKind classifies skipped source text.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment // // ...
	TriviaHashComment // # ...
	TriviaBlockComment
)

// Trivia is whitespace or a comment attached to the following token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports whether the trivia is any kind of comment.
func (t Trivia) IsComment() bool {
	return t.Kind >= TriviaLineComment
}

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "space"
	case TriviaNewline:
		return "newline"
	case TriviaLineComment:
		return "line_comment"
	case TriviaHashComment:
		return "hash_comment"
	case TriviaBlockComment:
		return "block_comment"
	}
	return "unknown"
}
