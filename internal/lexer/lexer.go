package lexer

import (
	"ember/internal/diag"
	"ember/internal/source"
	"ember/internal/token"
)

type Options struct {
	// Trivia keeps whitespace and comments as Token.Leading; the pipeline
	// itself never needs them.
	Trivia bool
}

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
	err    *diag.Error    // первая ошибка; после неё лексер выдаёт только EOF
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Tokenize lexes the whole file and returns its tokens without the trailing EOF.
// The first lexical error stops the scan and is returned as *diag.Error.
func Tokenize(file *source.File, opts Options) ([]token.Token, error) {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/3+1)
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		toks = append(toks, tok)
	}
	if lx.err != nil {
		return nil, lx.err
	}
	return toks, nil
}

// Err returns the lexical error that stopped the scan, if any.
func (lx *Lexer) Err() error {
	if lx.err == nil {
		return nil
	}
	return lx.err
}

// Next возвращает следующий значимый токен с уже собранным Leading.
// После EOF или ошибки всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if lx.err != nil {
		return lx.eof()
	}

	lx.collectLeadingTrivia()
	if lx.err != nil || lx.cursor.EOF() {
		// Leading из hold к EOF не приклеиваем
		return lx.eof()
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case isDec(ch):
		tok = lx.scanNumber()
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	default:
		tok = lx.scanOperatorOrPunct()
	}
	if tok.Kind == token.Invalid {
		return lx.eof()
	}

	if lx.opts.Trivia {
		tok.Leading = lx.hold
	}
	lx.hold = nil
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) eof() token.Token {
	return token.Token{
		Kind: token.EOF,
		Span: source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off},
	}
}

// fail запоминает первую ошибку; остальные игнорируются.
func (lx *Lexer) fail(code diag.Code, sp source.Span, format string, args ...any) token.Token {
	if lx.err == nil {
		lx.err = diag.Errorf(lx.file, code, sp, format, args...)
	}
	return token.Token{Kind: token.Invalid, Span: sp}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
