package lexer

import (
	"ember/internal/diag"
	"ember/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - ' ', '\t', '\r' коалесцируются в один TriviaSpace
//   - последовательные '\n' коалесцируются в один TriviaNewline
//   - //... и #... до '\n' -> TriviaLineComment / TriviaHashComment
//   - /* ... */ -> TriviaBlockComment (без вложенности; незакрытый — ошибка)
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		switch b := lx.cursor.Peek(); {
		case isSpace(b):
			for isSpace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
		case b == '#':
			lx.skipLine()
			lx.pushTrivia(token.TriviaHashComment, start)
		case b == '/':
			if !lx.scanSlashComment() {
				return
			}
		default:
			return
		}
		if lx.err != nil {
			return
		}
	}
}

// scanSlashComment handles "//" and "/*"; a lone '/' is left for the operator scanner.
func (lx *Lexer) scanSlashComment() bool {
	start := lx.cursor.Mark()
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' {
		return false
	}
	switch b1 {
	case '/':
		lx.skipLine()
		lx.pushTrivia(token.TriviaLineComment, start)
		return true
	case '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		for {
			if c0, c1, ok := lx.cursor.Peek2(); ok && c0 == '*' && c1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.pushTrivia(token.TriviaBlockComment, start)
				return true
			}
			if lx.cursor.EOF() {
				sp := lx.cursor.SpanFrom(start)
				sp.End = sp.Start + 2
				lx.fail(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
				return true
			}
			lx.cursor.Bump()
		}
	default:
		return false
	}
}

func (lx *Lexer) skipLine() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	if !lx.opts.Trivia {
		return
	}
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}
