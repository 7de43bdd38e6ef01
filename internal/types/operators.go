package types

import "ember/internal/ast"

// FamilyMask describes broad categories of types an operator accepts.
type FamilyMask uint32

const (
	FamilyNone FamilyMask = 0
	FamilyUnit FamilyMask = 1 << iota
	FamilyBool
	FamilyInt
	FamilyFn
)

// FamilyValue — всё, что может лежать в переменной.
const FamilyValue = FamilyUnit | FamilyBool | FamilyInt

// BinaryResult describes how to derive the result type for an operator.
type BinaryResult uint8

const (
	BinaryResultUnknown BinaryResult = iota
	BinaryResultLeft
	BinaryResultBool
	BinaryResultInt
)

// BinaryFlags annotate special handling for binary operators.
type BinaryFlags uint16

const (
	BinaryFlagNone       BinaryFlags = 0
	BinaryFlagAssignment BinaryFlags = 1 << iota
	BinaryFlagShortCircuit
	BinaryFlagSameType
)

// BinarySpec lists operand families and expected result for an operation.
type BinarySpec struct {
	Left   FamilyMask
	Right  FamilyMask
	Result BinaryResult
	Flags  BinaryFlags
}

// UnarySpec describes operand expectations for unary operators.
type UnarySpec struct {
	Operand FamilyMask
	Result  BinaryResult
}

var (
	arith   = BinarySpec{Left: FamilyInt, Right: FamilyInt, Result: BinaryResultInt}
	compare = BinarySpec{Left: FamilyInt, Right: FamilyInt, Result: BinaryResultBool}
	equal   = BinarySpec{Left: FamilyValue, Right: FamilyValue, Result: BinaryResultBool, Flags: BinaryFlagSameType}
	logical = BinarySpec{Left: FamilyBool, Right: FamilyBool, Result: BinaryResultBool, Flags: BinaryFlagShortCircuit}
)

var binarySpecTable = map[ast.BinaryOp]BinarySpec{
	ast.BinaryAdd:       arith,
	ast.BinarySub:       arith,
	ast.BinaryMul:       arith,
	ast.BinaryDiv:       arith,
	ast.BinaryMod:       arith,
	ast.BinaryLess:      compare,
	ast.BinaryLessEq:    compare,
	ast.BinaryGreater:   compare,
	ast.BinaryGreaterEq: compare,
	ast.BinaryEq:        equal,
	ast.BinaryNotEq:     equal,
	ast.BinaryAnd:       logical,
	ast.BinaryOr:        logical,
	ast.BinaryAssign:    {Left: FamilyValue, Right: FamilyValue, Result: BinaryResultLeft, Flags: BinaryFlagAssignment | BinaryFlagSameType},
}

var unarySpecTable = map[ast.UnaryOp]UnarySpec{
	ast.UnaryNeg: {Operand: FamilyInt, Result: BinaryResultInt},
	ast.UnaryNot: {Operand: FamilyBool, Result: BinaryResultBool},
}

// BinarySpecFor returns operand rules for the given operator.
func BinarySpecFor(op ast.BinaryOp) (BinarySpec, bool) {
	spec, ok := binarySpecTable[op]
	return spec, ok
}

// UnarySpecFor returns operand/result hints for unary operators.
func UnarySpecFor(op ast.UnaryOp) (UnarySpec, bool) {
	spec, ok := unarySpecTable[op]
	return spec, ok
}

// FamilyOf maps a builtin or function TypeID to its family.
func FamilyOf(id TypeID) FamilyMask {
	switch id {
	case Unit:
		return FamilyUnit
	case Bool:
		return FamilyBool
	case Int:
		return FamilyInt
	case NoTypeID:
		return FamilyNone
	default:
		return FamilyFn
	}
}

// Apply returns the result type of the operator for the given operands,
// or Unit when no rule matches ("ill-typed").
func (s BinarySpec) Apply(left, right TypeID) TypeID {
	if FamilyOf(left)&s.Left == 0 || FamilyOf(right)&s.Right == 0 {
		return Unit
	}
	if s.Flags&BinaryFlagSameType != 0 && left != right {
		return Unit
	}
	return s.Result.resolve(left)
}

// Apply is the unary counterpart of BinarySpec.Apply.
func (s UnarySpec) Apply(operand TypeID) TypeID {
	if FamilyOf(operand)&s.Operand == 0 {
		return Unit
	}
	return s.Result.resolve(operand)
}

func (r BinaryResult) resolve(left TypeID) TypeID {
	switch r {
	case BinaryResultLeft:
		return left
	case BinaryResultBool:
		return Bool
	case BinaryResultInt:
		return Int
	default:
		return Unit
	}
}
