package parser

import (
	"fmt"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/source"
	"ember/internal/token"
)

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, "%s, got %s", msg, describe(p.peek()))
	return token.Token{Kind: token.Invalid, Span: p.peek().Span}, false
}

// err репортует ошибку на текущем токене; всегда false, чтобы писать `return p.err(...)`.
func (p *Parser) err(code diag.Code, format string, args ...any) bool {
	return p.report(code, p.peek().Span, format, args...)
}

// report запоминает только первую ошибку.
func (p *Parser) report(code diag.Code, sp source.Span, format string, args ...any) bool {
	if p.failure == nil {
		p.failure = diag.Errorf(p.file, code, sp, format, args...)
	}
	return false
}

func (p *Parser) fail(code diag.Code, format string, args ...any) (ast.ExprID, bool) {
	p.err(code, format, args...)
	return ast.NoExprID, false
}

func (p *Parser) span(id ast.ExprID) source.Span {
	return p.arenas.Exprs.Get(id).Span
}

// describe renders a token for messages: 'text' or "end of input".
func describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", tok.Text)
}
