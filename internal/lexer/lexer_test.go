package lexer_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/source"
	"ember/internal/token"

	"github.com/nalgeon/be"
)

// tokenize прогоняет строку через лексер
func tokenize(t *testing.T, input string) ([]token.Token, *source.File, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.em", []byte(input), source.LoadOptions{}))
	toks, err := lexer.Tokenize(file, lexer.Options{})
	return toks, file, err
}

// describe renders tokens as "line:col category text" lines.
func describe(file *source.File, toks []token.Token) string {
	var sb strings.Builder
	for _, tok := range toks {
		pos := file.Position(tok.Span.Start)
		fmt.Fprintf(&sb, "%d:%d %s %s\n", pos.Line, pos.Col, tok.Category(), tok.Text)
	}
	return sb.String()
}

func TestTokenizeCategoriesAndLocations(t *testing.T) {
	toks, file, err := tokenize(t, "aaa 123 bbb while false // not \n not ==")
	be.Err(t, err, nil)
	be.Equal(t, describe(file, toks), strings.Join([]string{
		"1:1 identifier aaa",
		"1:5 int_literal 123",
		"1:9 identifier bbb",
		"1:13 keyword while",
		"1:19 bool_literal false",
		"2:2 unary_op not",
		"2:6 binary_op ==",
	}, "\n")+"\n")
}

func TestKinds(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Kind
	}{
		{"var x: Int = 1;", []token.Kind{token.KwVar, token.Ident, token.Colon, token.KwInt, token.Assign, token.IntLit, token.Semicolon}},
		{"a<=b>=c<d>e==f!=g", []token.Kind{
			token.Ident, token.LtEq, token.Ident, token.GtEq, token.Ident, token.Lt,
			token.Ident, token.Gt, token.Ident, token.EqEq, token.Ident, token.BangEq, token.Ident,
		}},
		{"if a and b or not c then {x} else (y)", []token.Kind{
			token.KwIf, token.Ident, token.KwAnd, token.Ident, token.KwOr, token.KwNot, token.Ident,
			token.KwThen, token.LBrace, token.Ident, token.RBrace, token.KwElse, token.LParen, token.Ident, token.RParen,
		}},
		{"f(1, -2) % 3 / 4 * 5 + 6", []token.Kind{
			token.Ident, token.LParen, token.IntLit, token.Comma, token.Minus, token.IntLit, token.RParen,
			token.Percent, token.IntLit, token.Slash, token.IntLit, token.Star, token.IntLit, token.Plus, token.IntLit,
		}},
		{"while true do Unit Bool", []token.Kind{token.KwWhile, token.BoolLit, token.KwDo, token.KwUnit, token.KwBool}},
		{"vars android notx", []token.Kind{token.Ident, token.Ident, token.Ident}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, _, err := tokenize(t, tt.input)
			be.Err(t, err, nil)
			got := make([]token.Kind, len(toks))
			for i, tok := range toks {
				got[i] = tok.Kind
			}
			be.Equal(t, got, tt.want)
		})
	}
}

func TestComments(t *testing.T) {
	toks, file, err := tokenize(t, "# hash\n1 /* block\n spans */ + // line\n/**/2")
	be.Err(t, err, nil)
	be.Equal(t, describe(file, toks), "2:1 int_literal 1\n3:11 binary_op +\n4:5 int_literal 2\n")
}

func TestEmptyAndCommentOnly(t *testing.T) {
	for _, input := range []string{"", "   \n\t", "// nothing\n# here", "/* x */"} {
		toks, _, err := tokenize(t, input)
		be.Err(t, err, nil)
		be.Equal(t, len(toks), 0)
	}
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
		code  diag.Code
	}{
		{"1 + @", "1:5: unrecognized character '@'", diag.LexUnknownChar},
		{"x\n  y ! z", "2:5: unrecognized character '!'", diag.LexUnknownChar},
		{"a = 'b'", "1:5: unrecognized character '''", diag.LexUnknownChar},
		{"var ж = 1", "1:5: unrecognized character 'ж'", diag.LexUnknownChar},
		{"1 /* open", "1:3: unterminated block comment", diag.LexUnterminatedBlockComment},
		{"12ab + 1", "1:1: malformed integer literal '12ab'", diag.LexBadNumber},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, _, err := tokenize(t, tt.input)
			be.True(t, toks == nil)
			be.Err(t, err, diag.ErrLexical)
			be.Equal(t, err.Error(), tt.want)
			de, ok := diag.AsError(err)
			be.True(t, ok)
			be.Equal(t, de.Code, tt.code)
		})
	}
}

func TestFirstErrorWins(t *testing.T) {
	_, _, err := tokenize(t, "$ @")
	be.True(t, errors.Is(err, diag.ErrLexical))
	be.Equal(t, err.Error(), "1:1: unrecognized character '$'")
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.em", []byte("a b"), source.LoadOptions{}))
	lx := lexer.New(file, lexer.Options{})

	be.Equal(t, lx.Peek().Text, "a")
	be.Equal(t, lx.Next().Text, "a")
	be.Equal(t, lx.Next().Text, "b")
	be.Equal(t, lx.Next().Kind, token.EOF)
	be.Equal(t, lx.Next().Kind, token.EOF)
	be.Err(t, lx.Err(), nil)
}

func TestTriviaOption(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.em", []byte("// c\n  x"), source.LoadOptions{}))
	toks, err := lexer.Tokenize(file, lexer.Options{Trivia: true})
	be.Err(t, err, nil)
	be.Equal(t, len(toks), 1)

	kinds := make([]token.TriviaKind, 0, len(toks[0].Leading))
	for _, tr := range toks[0].Leading {
		kinds = append(kinds, tr.Kind)
	}
	be.Equal(t, kinds, []token.TriviaKind{token.TriviaLineComment, token.TriviaNewline, token.TriviaSpace})
	be.True(t, toks[0].Leading[0].IsComment())
}
