package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Фиксированные ID встроенных типов: одинаковы в любом Interner,
// поэтому общая таблица builtins может ссылаться на них напрямую.
const (
	Unit TypeID = iota + 1
	Bool
	Int
)

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindBool
	KindInt
	KindFn
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "Unit"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFn:
		return "Fn"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor. Payload indexes FnInfo for KindFn.
type Type struct {
	Kind    Kind
	Payload uint32
}
