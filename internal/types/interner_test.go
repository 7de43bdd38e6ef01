package types

import "testing"

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.Unit != Unit || b.Bool != Bool || b.Int != Int {
		t.Fatalf("builtins = %+v", b)
	}
	unit, _ := in.Lookup(b.Unit)
	if unit.Kind != KindUnit {
		t.Fatalf("expected unit kind, got %v", unit.Kind)
	}
	if _, ok := in.Lookup(NoTypeID); ok {
		t.Fatalf("NoTypeID must not resolve")
	}
}

func TestRegisterFnDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.RegisterFn([]TypeID{Int, Int}, Int)
	b := in.RegisterFn([]TypeID{Int, Int}, Int)
	c := in.RegisterFn([]TypeID{Int, Int}, Bool)
	if a != b {
		t.Fatalf("identical signatures must share an id")
	}
	if a == c {
		t.Fatalf("different results must differ")
	}
	info, ok := in.FnInfo(a)
	if !ok || len(info.Params) != 2 || info.Result != Int {
		t.Fatalf("FnInfo = %+v", info)
	}
}

func TestNames(t *testing.T) {
	in := NewInterner()
	fn := in.RegisterFn([]TypeID{Int, Bool}, Unit)
	noArgs := in.RegisterFn(nil, Int)
	tests := map[TypeID]string{
		Int:    "Int",
		Bool:   "Bool",
		Unit:   "Unit",
		fn:     "(Int, Bool) => Unit",
		noArgs: "() => Int",
	}
	for id, want := range tests {
		if got := in.Name(id); got != want {
			t.Errorf("Name(%d) = %q, want %q", id, got, want)
		}
	}
}
