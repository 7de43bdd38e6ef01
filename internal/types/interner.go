package types

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for primitive types.
type Builtins struct {
	Invalid TypeID
	Unit    TypeID
	Bool    TypeID
	Int     TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Один Interner живёт одну компиляцию.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
	fns      []FnInfo
	fnIndex  map[string]TypeID // сигнатура -> id, см. RegisterFn
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index:   make(map[typeKey]TypeID, 16),
		fnIndex: make(map[string]TypeID, 4),
	}
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Unit = in.Intern(Type{Kind: KindUnit})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Int = in.Intern(Type{Kind: KindInt})
	if in.builtins.Unit != Unit || in.builtins.Bool != Bool || in.builtins.Int != Int {
		panic("types: builtin ids out of order")
	}
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Len returns the number of interned types, the invalid sentinel included.
func (in *Interner) Len() int { return len(in.types) }

// Name renders id for diagnostics: Int, Bool, Unit or (Int, Int) => Int.
func (in *Interner) Name(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	if tt.Kind != KindFn {
		return tt.Kind.String()
	}
	info, _ := in.FnInfo(id)
	parts := make([]string, len(info.Params))
	for i, p := range info.Params {
		parts[i] = in.Name(p)
	}
	return "(" + strings.Join(parts, ", ") + ") => " + in.Name(info.Result)
}

// IsFn reports whether id is a function type.
func (in *Interner) IsFn(id TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && tt.Kind == KindFn
}

type typeKey struct {
	Kind    Kind
	Payload uint32
}
