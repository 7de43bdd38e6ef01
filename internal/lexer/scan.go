package lexer

import (
	"unicode/utf8"

	"ember/internal/diag"
	"ember/internal/token"
)

// scanNumber сканирует десятичный литерал [0-9]+.
// Цифры, сразу за которыми идёт буква или '_', — ошибка (12ab).
// Диапазон int64 проверяет парсер.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		return lx.fail(diag.LexBadNumber, sp, "malformed integer literal '%s'", lx.text(sp))
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
}

// scanIdentOrKeyword сканирует [A-Za-z_][A-Za-z0-9_]* и проверяет через LookupKeyword.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// Жадность: сначала 2-символьные (==, !=, <=, >=), затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	switch {
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('!', '='):
		return emit(token.BangEq)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	}

	if k, ok := singleCharKinds[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return emit(k)
	}

	// неизвестный символ: берём целую руну, чтобы сообщение было точным
	r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
	for range size {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if r == utf8.RuneError && size <= 1 {
		return lx.fail(diag.LexUnknownChar, sp, "invalid UTF-8 byte 0x%02x", lx.file.Content[sp.Start])
	}
	return lx.fail(diag.LexUnknownChar, sp, "unrecognized character '%c'", r)
}

var singleCharKinds = map[byte]token.Kind{
	'=': token.Assign,
	'<': token.Lt,
	'>': token.Gt,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'(': token.LParen,
	')': token.RParen,
	',': token.Comma,
	';': token.Semicolon,
	'{': token.LBrace,
	'}': token.RBrace,
	':': token.Colon,
}

// try2 пробует "съесть" 2 байта, если совпадает.
func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	return true
}

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }
