package x86

import (
	"fmt"
	"strings"

	"ember/internal/diag"
	"ember/internal/ir"
)

// argRegs are the System V integer argument registers, in order.
var argRegs = [...]string{"%rdi", "%rsi", "%rdx", "%rcx", "%r8", "%r9"}

// Externs are the runtime procedures the program links against.
var Externs = []string{"print_int", "print_bool", "read_int"}

const resultReg = "%rax"

// Emitter renders one IR program as GNU as x86-64 text.
type Emitter struct {
	locals *Locals
	buf    strings.Builder
}

// Emit generates assembly for prog. On error no partial text is returned.
func Emit(prog []ir.Instr) (string, error) {
	e := &Emitter{locals: NewLocals(prog)}
	e.emitPrologue()
	for i := range prog {
		if err := e.emitInstr(&prog[i]); err != nil {
			return "", err
		}
	}
	e.emitEpilogue()
	return e.buf.String(), nil
}

func (e *Emitter) directive(format string, args ...any) {
	fmt.Fprintf(&e.buf, format, args...)
	e.buf.WriteByte('\n')
}

func (e *Emitter) emit(format string, args ...any) {
	e.buf.WriteString("    ")
	fmt.Fprintf(&e.buf, format, args...)
	e.buf.WriteByte('\n')
}

func (e *Emitter) emitPrologue() {
	for _, name := range Externs {
		e.directive(".extern %s", name)
	}
	e.directive(".global main")
	e.directive(".type main, @function")
	e.directive(".section .text")
	e.directive("main:")
	e.emit("pushq %%rbp")
	e.emit("movq %%rsp, %%rbp")
	e.emit("subq $%d, %%rsp", e.locals.StackUsed())
}

func (e *Emitter) emitEpilogue() {
	e.buf.WriteByte('\n')
	e.emit("movq $0, %%rax")
	e.emit("movq %%rbp, %%rsp")
	e.emit("popq %%rbp")
	e.emit("ret")
}

func (e *Emitter) ref(in *ir.Instr, v ir.Var) (string, error) {
	r, ok := e.locals.Ref(v)
	if !ok {
		return "", diag.Errorf(nil, diag.GenUnknownVar, in.Span, "variable %s has no stack slot", v)
	}
	return r, nil
}

func (e *Emitter) emitInstr(in *ir.Instr) error {
	switch in.Kind {
	case ir.InstrLabel:
		e.buf.WriteByte('\n')
		e.directive(".L%s:", in.Label.Name)
		return nil

	case ir.InstrLoadIntConst:
		dst, err := e.ref(in, in.LoadInt.Dst)
		if err != nil {
			return err
		}
		if v := in.LoadInt.Value; v >= -1<<31 && v < 1<<31 {
			e.emit("movq $%d, %s", v, dst)
		} else {
			e.emit("movabsq $%d, %%rax", v)
			e.emit("movq %%rax, %s", dst)
		}
		return nil

	case ir.InstrLoadBoolConst:
		dst, err := e.ref(in, in.LoadBool.Dst)
		if err != nil {
			return err
		}
		word := 0
		if in.LoadBool.Value {
			word = 1
		}
		e.emit("movq $%d, %s", word, dst)
		return nil

	case ir.InstrCopy:
		src, err := e.ref(in, in.Copy.Src)
		if err != nil {
			return err
		}
		dst, err := e.ref(in, in.Copy.Dst)
		if err != nil {
			return err
		}
		e.emit("movq %s, %%rax", src)
		e.emit("movq %%rax, %s", dst)
		return nil

	case ir.InstrCondJump:
		cond, err := e.ref(in, in.CondJump.Cond)
		if err != nil {
			return err
		}
		e.emit("cmpq $0, %s", cond)
		e.emit("jne .L%s", in.CondJump.Then)
		e.emit("jmp .L%s", in.CondJump.Else)
		return nil

	case ir.InstrJump:
		e.emit("jmp .L%s", in.Jump.Target)
		return nil

	case ir.InstrCall:
		return e.emitCall(in)

	default:
		return diag.Errorf(nil, diag.GenUnsupportedNode, in.Span, "unsupported instruction %s", in.Kind)
	}
}

func (e *Emitter) emitCall(in *ir.Instr) error {
	call := &in.Call
	refs := make([]string, len(call.Args))
	for i, arg := range call.Args {
		r, err := e.ref(in, arg)
		if err != nil {
			return err
		}
		refs[i] = r
	}
	dst, err := e.ref(in, call.Dst)
	if err != nil {
		return err
	}

	if gen, ok := intrinsics[string(call.Fn)]; ok {
		if len(refs) != gen.arity {
			return diag.Errorf(nil, diag.GenUnsupportedNode, in.Span,
				"intrinsic %s takes %d argument(s), got %d", call.Fn, gen.arity, len(refs))
		}
		gen.gen(intrinsicArgs{refs: refs, result: resultReg, emit: e.emit})
		e.emit("movq %s, %s", resultReg, dst)
		return nil
	}

	if len(refs) > len(argRegs) {
		return diag.Errorf(nil, diag.GenTooManyArgs, in.Span,
			"call to %s has %d arguments, at most %d are supported", call.Fn, len(refs), len(argRegs))
	}
	for i, r := range refs {
		e.emit("movq %s, %s", r, argRegs[i])
	}
	e.emit("call %s", call.Fn)
	e.emit("movq %s, %s", resultReg, dst)
	return nil
}
