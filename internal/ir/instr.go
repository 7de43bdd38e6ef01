package ir

import (
	"fmt"
	"strconv"
	"strings"

	"ember/internal/source"
)

// Var names a value that lives for one compilation.
type Var string

// Label names a jump target.
type Label string

// UnitVar holds the Unit value; it is never materialized.
const UnitVar Var = "unit"

// InstrKind enumerates IR instructions.
type InstrKind uint8

const (
	InstrInvalid InstrKind = iota
	// InstrLabel marks a jump target.
	InstrLabel
	// InstrLoadIntConst stores an integer constant.
	InstrLoadIntConst
	// InstrLoadBoolConst stores a boolean constant.
	InstrLoadBoolConst
	// InstrCopy copies one variable into another.
	InstrCopy
	// InstrCall calls an operator, intrinsic or function.
	InstrCall
	// InstrJump jumps unconditionally.
	InstrJump
	// InstrCondJump branches on a Bool variable.
	InstrCondJump
)

var instrNames = [...]string{
	InstrInvalid:       "Invalid",
	InstrLabel:         "Label",
	InstrLoadIntConst:  "LoadIntConst",
	InstrLoadBoolConst: "LoadBoolConst",
	InstrCopy:          "Copy",
	InstrCall:          "Call",
	InstrJump:          "Jump",
	InstrCondJump:      "CondJump",
}

func (k InstrKind) String() string {
	if int(k) < len(instrNames) {
		return instrNames[k]
	}
	return "InstrKind(" + strconv.Itoa(int(k)) + ")"
}

// Instr is a tagged union; only the payload matching Kind is meaningful.
type Instr struct {
	Kind InstrKind
	Span source.Span

	Label    LabelInstr
	LoadInt  LoadIntConstInstr
	LoadBool LoadBoolConstInstr
	Copy     CopyInstr
	Call     CallInstr
	Jump     JumpInstr
	CondJump CondJumpInstr
}

type LabelInstr struct {
	Name Label
}

type LoadIntConstInstr struct {
	Value int64
	Dst   Var
}

type LoadBoolConstInstr struct {
	Value bool
	Dst   Var
}

type CopyInstr struct {
	Src Var
	Dst Var
}

// CallInstr calls Fn; Fn is a symbol, not a stack value.
type CallInstr struct {
	Fn   Var
	Args []Var
	Dst  Var
}

type JumpInstr struct {
	Target Label
}

type CondJumpInstr struct {
	Cond Var
	Then Label
	Else Label
}

// String renders the debug form without the location, e.g. Call(+, [x, x2], x3).
func (in *Instr) String() string {
	switch in.Kind {
	case InstrLabel:
		return fmt.Sprintf("Label(%s)", in.Label.Name)
	case InstrLoadIntConst:
		return fmt.Sprintf("LoadIntConst(%d, %s)", in.LoadInt.Value, in.LoadInt.Dst)
	case InstrLoadBoolConst:
		return fmt.Sprintf("LoadBoolConst(%t, %s)", in.LoadBool.Value, in.LoadBool.Dst)
	case InstrCopy:
		return fmt.Sprintf("Copy(%s, %s)", in.Copy.Src, in.Copy.Dst)
	case InstrCall:
		args := make([]string, len(in.Call.Args))
		for i, a := range in.Call.Args {
			args[i] = string(a)
		}
		return fmt.Sprintf("Call(%s, [%s], %s)", in.Call.Fn, strings.Join(args, ", "), in.Call.Dst)
	case InstrJump:
		return fmt.Sprintf("Jump(%s)", in.Jump.Target)
	case InstrCondJump:
		return fmt.Sprintf("CondJump(%s, %s, %s)", in.CondJump.Cond, in.CondJump.Then, in.CondJump.Else)
	default:
		return in.Kind.String() + "()"
	}
}

// Vars returns the value variables an instruction reads or writes, in operand order.
// The callee of a Call is a symbol and is not included.
func (in *Instr) Vars() []Var {
	switch in.Kind {
	case InstrLoadIntConst:
		return []Var{in.LoadInt.Dst}
	case InstrLoadBoolConst:
		return []Var{in.LoadBool.Dst}
	case InstrCopy:
		return []Var{in.Copy.Src, in.Copy.Dst}
	case InstrCall:
		out := make([]Var, 0, len(in.Call.Args)+1)
		out = append(out, in.Call.Args...)
		return append(out, in.Call.Dst)
	case InstrCondJump:
		return []Var{in.CondJump.Cond}
	default:
		return nil
	}
}
