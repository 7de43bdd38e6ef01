package parser

import (
	"strconv"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/source"
	"ember/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
// Возвращает ExprID и флаг успеха
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(precAssignment)
}

// parseBinaryExpr — precedence climbing; minPrec — минимальный приоритет текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		prec, isRightAssoc := p.getBinaryOperatorPrec(p.peek().Kind)
		if prec == precNone || prec < minPrec {
			break
		}
		opTok := p.advance()

		nextMinPrec := prec + 1
		if isRightAssoc {
			nextMinPrec = prec
		}
		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			return ast.NoExprID, false
		}

		finalSpan := p.span(left).Cover(p.span(right))
		left = p.arenas.Exprs.NewBinary(finalSpan, p.tokenKindToBinaryOp(opTok.Kind), left, right)
	}
	return left, true
}

// parseUnaryExpr: '-' и 'not' — только в префиксной позиции (решается по предыдущему токену).
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	op, isUnary := p.getUnaryOperator(p.peek().Kind)
	if !isUnary {
		return p.parsePrimaryExpr()
	}
	if !p.prev().AllowsPrefixAfter() {
		return p.fail(diag.SynUnexpectedToken, "unexpected %s after %s", describe(p.peek()), describe(p.prev()))
	}
	opTok := p.advance()
	operand, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewUnary(opTok.Span.Cover(p.span(operand)), op, operand), true
}

func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		return p.parseIntLit()
	case token.BoolLit:
		p.advance()
		return p.arenas.Exprs.NewBoolLit(tok.Span, tok.Text == "true"), true
	case token.Ident:
		return p.parseIdentOrCall()
	case token.LParen:
		return p.parseParenExpr()
	case token.LBrace:
		return p.parseBlockExpr()
	case token.KwIf:
		return p.parseIfExpr()
	case token.KwWhile:
		return p.parseWhileExpr()
	case token.KwVar:
		return p.fail(diag.SynVarNotAllowed, "variable declaration is not allowed here")
	default:
		return p.fail(diag.SynExpectExpression, "expected expression, got %s", describe(tok))
	}
}

func (p *Parser) parseIntLit() (ast.ExprID, bool) {
	tok := p.peek()
	v, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		return p.fail(diag.SynIntOverflow, "integer literal '%s' is out of range", tok.Text)
	}
	p.advance()
	return p.arenas.Exprs.NewIntLit(tok.Span, v), true
}

// parseIdentOrCall: `name` или `name(args...)`; `a b` — висячий идентификатор.
func (p *Parser) parseIdentOrCall() (ast.ExprID, bool) {
	nameTok := p.advance()
	name := p.arenas.Strings.Intern(nameTok.Text)
	switch p.peek().Kind {
	case token.LParen:
		return p.parseCallArgs(nameTok, name)
	case token.Ident:
		return p.fail(diag.SynDanglingIdentifier, "dangling identifier %s after '%s'", describe(p.peek()), nameTok.Text)
	}
	return p.arenas.Exprs.NewIdent(nameTok.Span, name), true
}

func (p *Parser) parseCallArgs(nameTok token.Token, name source.StringID) (ast.ExprID, bool) {
	p.advance() // '('
	var args []ast.ExprID
	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ',' or ')' in call")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewCall(nameTok.Span.Cover(closeTok.Span), name, nameTok.Span, args), true
}

// parseParenExpr: `()` — литерал Unit, иначе скобки прозрачны (узла Group нет).
func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	openTok := p.advance()
	if p.at(token.RParen) {
		closeTok := p.advance()
		return p.arenas.Exprs.NewUnitLit(openTok.Span.Cover(closeTok.Span)), true
	}
	inner, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
		return ast.NoExprID, false
	}
	return inner, true
}
