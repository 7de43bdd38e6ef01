package parser

import (
	"ember/internal/ast"
	"ember/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precNone           = -1
	precAssignment     = 1 // =
	precLogicalOr      = 2 // or
	precLogicalAnd     = 3 // and
	precEquality       = 4 // == !=
	precComparison     = 5 // < <= > >=
	precAdditive       = 6 // + -
	precMultiplicative = 7 // * / %
)

// getBinaryOperatorPrec возвращает приоритет и ассоциативность оператора
// Возвращает (приоритет, правоассоциативный)
func (p *Parser) getBinaryOperatorPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Assign:
		return precAssignment, true
	case token.KwOr:
		return precLogicalOr, false
	case token.KwAnd:
		return precLogicalAnd, false
	case token.EqEq, token.BangEq:
		return precEquality, false
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	default:
		return precNone, false
	}
}

var binaryOps = map[token.Kind]ast.BinaryOp{
	token.Assign:  ast.BinaryAssign,
	token.KwOr:    ast.BinaryOr,
	token.KwAnd:   ast.BinaryAnd,
	token.EqEq:    ast.BinaryEq,
	token.BangEq:  ast.BinaryNotEq,
	token.Lt:      ast.BinaryLess,
	token.LtEq:    ast.BinaryLessEq,
	token.Gt:      ast.BinaryGreater,
	token.GtEq:    ast.BinaryGreaterEq,
	token.Plus:    ast.BinaryAdd,
	token.Minus:   ast.BinarySub,
	token.Star:    ast.BinaryMul,
	token.Slash:   ast.BinaryDiv,
	token.Percent: ast.BinaryMod,
}

func (p *Parser) tokenKindToBinaryOp(kind token.Kind) ast.BinaryOp {
	return binaryOps[kind]
}

// getUnaryOperator: только '-' и 'not'.
func (p *Parser) getUnaryOperator(kind token.Kind) (ast.UnaryOp, bool) {
	switch kind {
	case token.Minus:
		return ast.UnaryNeg, true
	case token.KwNot:
		return ast.UnaryNot, true
	default:
		return 0, false
	}
}
