package parser

import (
	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/token"
)

// blockBody — элементы блока до закрывающего токена (или EOF на верхнем уровне).
type blockBody struct {
	stmts  []ast.ExprID
	result ast.ExprID
}

// parseProgram разбирает весь поток как тело неявного блока.
// Один незавершённый элемент, не являющийся var, становится корнем как есть.
func (p *Parser) parseProgram() (ast.ExprID, bool) {
	first := p.peek()
	body, ok := p.parseBlockBody(token.EOF)
	if !ok {
		return ast.NoExprID, false
	}
	if len(body.stmts) == 0 && body.result.IsValid() && !p.arenas.Exprs.IsVarDecl(body.result) {
		return body.result, true
	}
	sp := first.Span.Cover(p.lastSpan)
	return p.arenas.Exprs.NewBlock(sp, body.stmts, body.result), true
}

// parseBlockExpr: `{ e1; e2; ...; result }`
func (p *Parser) parseBlockExpr() (ast.ExprID, bool) {
	openTok := p.advance()
	body, ok := p.parseBlockBody(token.RBrace)
	if !ok {
		return ast.NoExprID, false
	}
	closeTok := p.advance() // '}' гарантирован parseBlockBody
	return p.arenas.Exprs.NewBlock(openTok.Span.Cover(closeTok.Span), body.stmts, body.result), true
}

// parseBlockBody читает элементы до end, не съедая его.
// Элемент, оканчивающийся на '}', самоограничен и не требует ';'.
func (p *Parser) parseBlockBody(end token.Kind) (blockBody, bool) {
	var body blockBody
	for {
		switch p.peek().Kind {
		case end:
			return body, true
		case token.EOF:
			p.err(diag.SynUnclosedBrace, "expected '}' to close block, got end of input")
			return body, false
		case token.RBrace, token.RParen:
			if end == token.EOF {
				p.err(diag.SynTrailingInput, "unexpected %s at top level", describe(p.peek()))
				return body, false
			}
		}

		elem, ok := p.parseBlockElement()
		if !ok {
			return body, false
		}

		switch {
		case p.at(token.Semicolon):
			p.advance()
			body.stmts = append(body.stmts, elem)
			continue
		case p.at(end):
			p.setResult(&body, elem)
			return body, true
		case p.at(token.EOF), end == token.EOF && (p.at(token.RBrace) || p.at(token.RParen)):
			// ошибку сообщит начало цикла
			continue
		case p.prev().Kind == token.RBrace:
			body.stmts = append(body.stmts, elem)
			continue
		}
		p.err(diag.SynExpectSemicolon, "expected ';', got %s", describe(p.peek()))
		return body, false
	}
}

func (p *Parser) setResult(body *blockBody, elem ast.ExprID) {
	body.result = elem
	if decl, ok := p.arenas.Exprs.VarDecl(elem); ok {
		decl.AsResult = true
	}
}

// parseBlockElement: var допустим только здесь.
func (p *Parser) parseBlockElement() (ast.ExprID, bool) {
	if p.at(token.KwVar) {
		return p.parseVarDecl()
	}
	return p.parseExpr()
}

// parseVarDecl: `var name [: Int|Bool|Unit] = expr`
func (p *Parser) parseVarDecl() (ast.ExprID, bool) {
	varTok := p.advance()
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected variable name after 'var'")
	if !ok {
		return ast.NoExprID, false
	}

	annot := ast.AnnotNone
	if p.at(token.Colon) {
		p.advance()
		if annot, ok = p.parseTypeAnnot(); !ok {
			return ast.NoExprID, false
		}
	}

	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in variable declaration"); !ok {
		return ast.NoExprID, false
	}
	initExpr, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}

	return p.arenas.Exprs.NewVarDecl(varTok.Span.Cover(p.span(initExpr)), ast.ExprVarDeclData{
		Name:     p.arenas.Strings.Intern(nameTok.Text),
		NameSpan: nameTok.Span,
		Type:     annot,
		Init:     initExpr,
	}), true
}

func (p *Parser) parseTypeAnnot() (ast.TypeAnnot, bool) {
	switch p.peek().Kind {
	case token.KwInt:
		p.advance()
		return ast.AnnotInt, true
	case token.KwBool:
		p.advance()
		return ast.AnnotBool, true
	case token.KwUnit:
		p.advance()
		return ast.AnnotUnit, true
	default:
		p.err(diag.SynExpectType, "expected type (Int, Bool or Unit), got %s", describe(p.peek()))
		return ast.AnnotNone, false
	}
}
