package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"ember/internal/source"
	"ember/internal/token"
)

type TokenOutput struct {
	Kind     string      `json:"kind" msgpack:"kind"`
	Category string      `json:"category" msgpack:"category"`
	Text     string      `json:"text,omitempty" msgpack:"text,omitempty"`
	Line     uint32      `json:"line" msgpack:"line"`
	Col      uint32      `json:"col" msgpack:"col"`
	Span     source.Span `json:"span" msgpack:"span"`
	Leading  []string    `json:"leading,omitempty" msgpack:"leading,omitempty"`
}

// BuildTokensOutput converts tokens up to and including EOF.
func BuildTokensOutput(tokens []token.Token, fs *source.FileSet) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		item := TokenOutput{
			Kind:     tok.Kind.String(),
			Category: string(tok.Category()),
			Text:     tok.Text,
			Span:     tok.Span,
		}
		if fs != nil {
			pos, _ := fs.Resolve(tok.Span)
			item.Line, item.Col = pos.Line, pos.Col
		}
		for _, trivia := range tok.Leading {
			item.Leading = append(item.Leading, trivia.Kind.String())
		}
		out = append(out, item)
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

// FormatTokensPretty печатает по токену в строке: "line:col category text".
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for _, tok := range BuildTokensOutput(tokens, fs) {
		var err error
		if tok.Text == "" {
			_, err = fmt.Fprintf(w, "%d:%d %s\n", tok.Line, tok.Col, tok.Category)
		} else {
			_, err = fmt.Fprintf(w, "%d:%d %s %s\n", tok.Line, tok.Col, tok.Category, tok.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(tokens, fs))
}

// FormatTokensMsgpack пишет тот же список в msgpack.
func FormatTokensMsgpack(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	return msgpack.NewEncoder(w).Encode(BuildTokensOutput(tokens, fs))
}

// FormatTokens dispatches on format.
func FormatTokens(w io.Writer, tokens []token.Token, fs *source.FileSet, format Format) error {
	switch format {
	case FormatJSON:
		return FormatTokensJSON(w, tokens, fs)
	case FormatMsgpack:
		return FormatTokensMsgpack(w, tokens, fs)
	default:
		return FormatTokensPretty(w, tokens, fs)
	}
}
