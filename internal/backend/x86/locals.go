package x86

import (
	"fmt"

	"fortio.org/safecast"

	"ember/internal/ir"
)

const slotSize = 8

// Locals knows the stack slot of every IR variable of a program.
type Locals struct {
	offsets map[ir.Var]int32
	order   []ir.Var
}

// NewLocals assigns slots in first-use order. Call targets are symbols and get none.
func NewLocals(prog []ir.Instr) *Locals {
	l := &Locals{offsets: make(map[ir.Var]int32, len(prog))}
	for i := range prog {
		for _, v := range prog[i].Vars() {
			if _, ok := l.offsets[v]; ok {
				continue
			}
			off, err := safecast.Conv[int32](slotSize * (len(l.order) + 1))
			if err != nil {
				panic(fmt.Errorf("stack frame overflow: %w", err))
			}
			l.offsets[v] = -off
			l.order = append(l.order, v)
		}
	}
	return l
}

// Ref returns the memory operand for v, e.g. -24(%rbp).
func (l *Locals) Ref(v ir.Var) (string, bool) {
	off, ok := l.offsets[v]
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%d(%%rbp)", off), true
}

// Vars returns the slotted variables in slot order.
func (l *Locals) Vars() []ir.Var {
	out := make([]ir.Var, len(l.order))
	copy(out, l.order)
	return out
}

// StackUsed is the frame size: one slot per variable, rounded up to 16 bytes
// so %rsp stays aligned at every call.
func (l *Locals) StackUsed() int {
	n := slotSize * len(l.order)
	return (n + 15) &^ 15
}
