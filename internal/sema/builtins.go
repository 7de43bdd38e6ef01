package sema

import (
	"slices"

	"ember/internal/ast"
	"ember/internal/types"
)

// BuiltinKind distinguishes operator functions from intrinsic procedures.
type BuiltinKind uint8

const (
	BuiltinInvalid BuiltinKind = iota
	BuiltinBinary
	BuiltinUnary
	BuiltinIntrinsic
)

// Builtin is one entry of the shared builtin table.
type Builtin struct {
	Name   string
	Kind   BuiltinKind
	Binary ast.BinaryOp // BuiltinBinary
	Unary  ast.UnaryOp  // BuiltinUnary
	Params []types.TypeID
	Result types.TypeID
}

// Apply computes the result type for the given argument types.
// Unit means "no valid overload": operators never produce Unit legitimately.
func (b Builtin) Apply(args ...types.TypeID) types.TypeID {
	switch b.Kind {
	case BuiltinBinary:
		spec, ok := types.BinarySpecFor(b.Binary)
		if !ok || len(args) != 2 {
			return types.Unit
		}
		return spec.Apply(args[0], args[1])
	case BuiltinUnary:
		spec, ok := types.UnarySpecFor(b.Unary)
		if !ok || len(args) != 1 {
			return types.Unit
		}
		return spec.Apply(args[0])
	case BuiltinIntrinsic:
		if !slices.Equal(b.Params, args) {
			return types.Unit
		}
		return b.Result
	}
	return types.Unit
}

// BuiltinTable is immutable after construction; lookups hand out copies.
type BuiltinTable struct {
	byName map[string]Builtin
	order  []string
}

// Lookup finds a builtin by its symbol name ("+", "unary_-", "print_int").
func (t *BuiltinTable) Lookup(name string) (Builtin, bool) {
	b, ok := t.byName[name]
	if !ok {
		return Builtin{}, false
	}
	b.Params = slices.Clone(b.Params)
	return b, true
}

// Intrinsics returns the names of the externally implemented procedures.
func (t *BuiltinTable) Intrinsics() []string {
	var out []string
	for _, name := range t.order {
		if t.byName[name].Kind == BuiltinIntrinsic {
			out = append(out, name)
		}
	}
	return out
}

func (t *BuiltinTable) add(b Builtin) {
	if _, dup := t.byName[b.Name]; dup {
		panic("sema: duplicate builtin " + b.Name)
	}
	t.byName[b.Name] = b
	t.order = append(t.order, b.Name)
}

var builtinTable = newBuiltinTable()

// Builtins returns the process-wide builtin table shared by every compilation.
func Builtins() *BuiltinTable { return builtinTable }

func newBuiltinTable() *BuiltinTable {
	t := &BuiltinTable{byName: make(map[string]Builtin, 24)}
	for _, op := range []ast.BinaryOp{
		ast.BinaryAdd, ast.BinarySub, ast.BinaryMul, ast.BinaryDiv, ast.BinaryMod,
		ast.BinaryLess, ast.BinaryLessEq, ast.BinaryGreater, ast.BinaryGreaterEq,
		ast.BinaryEq, ast.BinaryNotEq, ast.BinaryAnd, ast.BinaryOr,
	} {
		t.add(Builtin{Name: BinaryName(op), Kind: BuiltinBinary, Binary: op})
	}
	for _, op := range []ast.UnaryOp{ast.UnaryNeg, ast.UnaryNot} {
		t.add(Builtin{Name: UnaryName(op), Kind: BuiltinUnary, Unary: op})
	}
	t.add(Builtin{Name: "print_int", Kind: BuiltinIntrinsic, Params: []types.TypeID{types.Int}, Result: types.Unit})
	t.add(Builtin{Name: "print_bool", Kind: BuiltinIntrinsic, Params: []types.TypeID{types.Bool}, Result: types.Unit})
	t.add(Builtin{Name: "read_int", Kind: BuiltinIntrinsic, Result: types.Int})
	return t
}

// BinaryName is the symbol an operator is bound to: the operator itself.
func BinaryName(op ast.BinaryOp) string { return op.String() }

// UnaryName prefixes unary operators so that "-" stays the binary minus.
func UnaryName(op ast.UnaryOp) string { return "unary_" + op.String() }
