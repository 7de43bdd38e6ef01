package parser

import (
	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/token"
)

// parseIfExpr: `if cond then e [else e]`
func (p *Parser) parseIfExpr() (ast.ExprID, bool) {
	ifTok := p.advance()

	cond, ok := p.parseControlPart("if condition")
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok = p.expect(token.KwThen, diag.SynUnexpectedToken, "expected 'then' after if condition"); !ok {
		return ast.NoExprID, false
	}
	then, ok := p.parseControlPart("if branch")
	if !ok {
		return ast.NoExprID, false
	}
	last := then

	elseExpr := ast.NoExprID
	if p.at(token.KwElse) {
		p.advance()
		if elseExpr, ok = p.parseControlPart("else branch"); !ok {
			return ast.NoExprID, false
		}
		last = elseExpr
	}
	return p.arenas.Exprs.NewIf(ifTok.Span.Cover(p.span(last)), cond, then, elseExpr), true
}

// parseWhileExpr: `while cond do body`
func (p *Parser) parseWhileExpr() (ast.ExprID, bool) {
	whileTok := p.advance()

	cond, ok := p.parseControlPart("while condition")
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok = p.expect(token.KwDo, diag.SynUnexpectedToken, "expected 'do' after while condition"); !ok {
		return ast.NoExprID, false
	}
	body, ok := p.parseControlPart("while body")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewWhile(whileTok.Span.Cover(p.span(body)), cond, body), true
}

// parseControlPart запрещает var прямо в условии или ветке с понятным сообщением.
func (p *Parser) parseControlPart(what string) (ast.ExprID, bool) {
	if p.at(token.KwVar) {
		return p.fail(diag.SynVarNotAllowed, "variable declaration is not allowed as %s", what)
	}
	return p.parseExpr()
}
