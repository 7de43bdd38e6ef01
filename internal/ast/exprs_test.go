package ast

import (
	"testing"

	"ember/internal/source"
)

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatalf("index 0 must be nil")
	}
	id := a.Allocate(42)
	if id != 1 {
		t.Fatalf("first id = %d, want 1", id)
	}
	if got := *a.Get(id); got != 42 {
		t.Fatalf("Get(1) = %d", got)
	}
	if a.Get(2) != nil {
		t.Fatalf("out of range index must be nil")
	}
}

func TestPayloadAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{})
	sp := source.Span{Start: 0, End: 1}
	one := b.Exprs.NewIntLit(sp, 1)
	x := b.Exprs.NewIdent(sp, b.Strings.Intern("x"))
	sum := b.Exprs.NewBinary(sp, BinaryAdd, one, x)

	if _, ok := b.Exprs.Binary(one); ok {
		t.Fatalf("literal must not decode as binary")
	}
	lit, ok := b.Exprs.Literal(one)
	if !ok || lit.Kind != LitInt || lit.Int != 1 {
		t.Fatalf("literal = %+v, %v", lit, ok)
	}
	bin, ok := b.Exprs.Binary(sum)
	if !ok || bin.Op != BinaryAdd || bin.Left != one || bin.Right != x {
		t.Fatalf("binary = %+v", bin)
	}
	id, _ := b.Exprs.Ident(x)
	if b.Name(id.Name) != "x" {
		t.Fatalf("ident name = %q", b.Name(id.Name))
	}
}

func TestWalkPreOrder(t *testing.T) {
	b := NewBuilder(Hints{})
	var sp source.Span
	a := b.Exprs.NewIntLit(sp, 1)
	c := b.Exprs.NewBoolLit(sp, true)
	decl := b.Exprs.NewVarDecl(sp, ExprVarDeclData{Name: b.Strings.Intern("v"), Init: a})
	blk := b.Exprs.NewBlock(sp, []ExprID{decl}, c)

	var seen []ExprID
	b.Walk(blk, func(id ExprID) bool {
		seen = append(seen, id)
		return true
	})
	want := []ExprID{blk, decl, a, c}
	if len(seen) != len(want) {
		t.Fatalf("seen %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("seen %v, want %v", seen, want)
		}
	}
}

func TestOperatorNames(t *testing.T) {
	if BinaryLessEq.String() != "<=" || BinaryOr.String() != "or" || BinaryAssign.String() != "=" {
		t.Fatalf("unexpected binary op names")
	}
	if UnaryNot.String() != "not" || UnaryNeg.String() != "-" {
		t.Fatalf("unexpected unary op names")
	}
	if ExprCall.String() != "FuncExpr" || ExprBlock.String() != "Statements" {
		t.Fatalf("unexpected kind names")
	}
}
