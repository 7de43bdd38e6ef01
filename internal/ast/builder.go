package ast

import (
	"ember/internal/source"
)

type Hints struct{ Exprs uint }

// Builder owns every node of one compilation plus the interned names.
type Builder struct {
	Exprs   *Exprs
	Strings *source.Interner
}

func NewBuilder(hints Hints) *Builder {
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Exprs:   NewExprs(hints.Exprs),
		Strings: source.NewInterner(),
	}
}

// Name возвращает строку для StringID; для неизвестного ID пустая строка.
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.Strings.Lookup(id)
	return s
}

// Children returns the direct children of id in evaluation order.
func (b *Builder) Children(id ExprID) []ExprID {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return nil
	}
	var out []ExprID
	add := func(ids ...ExprID) {
		for _, c := range ids {
			if c.IsValid() {
				out = append(out, c)
			}
		}
	}
	switch expr.Kind {
	case ExprBinary:
		d, _ := b.Exprs.Binary(id)
		add(d.Left, d.Right)
	case ExprUnary:
		d, _ := b.Exprs.Unary(id)
		add(d.Operand)
	case ExprIf:
		d, _ := b.Exprs.If(id)
		add(d.Cond, d.Then, d.Else)
	case ExprWhile:
		d, _ := b.Exprs.While(id)
		add(d.Cond, d.Body)
	case ExprBlock:
		d, _ := b.Exprs.Block(id)
		add(d.Stmts...)
		add(d.Result)
	case ExprCall:
		d, _ := b.Exprs.Call(id)
		add(d.Args...)
	case ExprVarDecl:
		d, _ := b.Exprs.VarDecl(id)
		add(d.Init)
	}
	return out
}

// Walk visits id and its descendants in pre-order; returning false from fn prunes the subtree.
func (b *Builder) Walk(id ExprID, fn func(ExprID) bool) {
	if !id.IsValid() || !fn(id) {
		return
	}
	for _, c := range b.Children(id) {
		b.Walk(c, fn)
	}
}
