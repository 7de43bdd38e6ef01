package ast

import (
	"ember/internal/source"
)

// ExprKind enumerates the closed set of expression nodes.
type ExprKind uint8

const (
	// ExprLit is an Int, Bool or Unit literal.
	ExprLit ExprKind = iota
	// ExprIdent is a name reference.
	ExprIdent
	// ExprBinary covers arithmetic, comparison, logical operators and assignment.
	ExprBinary
	// ExprUnary is prefix '-' or 'not'.
	ExprUnary
	// ExprIf is `if c then a [else b]`.
	ExprIf
	// ExprWhile is `while c do body`.
	ExprWhile
	// ExprBlock is a sequence of statements with an optional result.
	ExprBlock
	// ExprCall is `name(args...)`.
	ExprCall
	// ExprVarDecl is `var name [: T] = init`.
	ExprVarDecl
)

var exprKindNames = [...]string{
	ExprLit:     "Literal",
	ExprIdent:   "Identifier",
	ExprBinary:  "BinaryOp",
	ExprUnary:   "UnaryOp",
	ExprIf:      "IfExpr",
	ExprWhile:   "WhileExpr",
	ExprBlock:   "Statements",
	ExprCall:    "FuncExpr",
	ExprVarDecl: "VarDecl",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "ExprKind(?)"
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// LitKind различает литералы.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitBool
	LitUnit
)

// ExprLiteralData хранит уже разобранное значение литерала.
type ExprLiteralData struct {
	Kind LitKind
	Int  int64
	Bool bool
}

type ExprIdentData struct {
	Name source.StringID
}

// BinaryOp enumerates binary operators, assignment included.
type BinaryOp uint8

const (
	// Арифметические
	BinaryAdd BinaryOp = iota
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryMod

	// Сравнения
	BinaryEq
	BinaryNotEq
	BinaryLess
	BinaryLessEq
	BinaryGreater
	BinaryGreaterEq

	// Логические
	BinaryAnd
	BinaryOr

	BinaryAssign
)

var binaryOpNames = [...]string{
	BinaryAdd:       "+",
	BinarySub:       "-",
	BinaryMul:       "*",
	BinaryDiv:       "/",
	BinaryMod:       "%",
	BinaryEq:        "==",
	BinaryNotEq:     "!=",
	BinaryLess:      "<",
	BinaryLessEq:    "<=",
	BinaryGreater:   ">",
	BinaryGreaterEq: ">=",
	BinaryAnd:       "and",
	BinaryOr:        "or",
	BinaryAssign:    "=",
}

// String returns the operator as written in source.
func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "?"
}

// IsLogical reports whether op short-circuits.
func (op BinaryOp) IsLogical() bool { return op == BinaryAnd || op == BinaryOr }

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

// UnaryOp enumerates prefix operators.
type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "not"
	default:
		return "?"
	}
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

// ExprIfData: Else == NoExprID для формы без else.
type ExprIfData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

type ExprWhileData struct {
	Cond ExprID
	Body ExprID
}

// ExprBlockData: Stmts вычисляются ради эффекта, Result (если есть) даёт значение блока.
type ExprBlockData struct {
	Stmts  []ExprID
	Result ExprID
}

type ExprCallData struct {
	Callee     source.StringID
	CalleeSpan source.Span
	Args       []ExprID
}

// TypeAnnot is the optional `: T` of a var declaration.
type TypeAnnot uint8

const (
	AnnotNone TypeAnnot = iota
	AnnotInt
	AnnotBool
	AnnotUnit
)

func (a TypeAnnot) String() string {
	switch a {
	case AnnotInt:
		return "Int"
	case AnnotBool:
		return "Bool"
	case AnnotUnit:
		return "Unit"
	default:
		return ""
	}
}

type ExprVarDeclData struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeAnnot
	Init     ExprID
	// AsResult is set when the declaration is the value of its block.
	AsResult bool
}
