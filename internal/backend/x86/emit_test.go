package x86

import (
	"errors"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"ember/internal/diag"
	"ember/internal/ir"
)

func label(name string) ir.Instr {
	return ir.Instr{Kind: ir.InstrLabel, Label: ir.LabelInstr{Name: ir.Label(name)}}
}

func loadInt(v int64, dst string) ir.Instr {
	return ir.Instr{Kind: ir.InstrLoadIntConst, LoadInt: ir.LoadIntConstInstr{Value: v, Dst: ir.Var(dst)}}
}

func call(fn string, dst string, args ...string) ir.Instr {
	vars := make([]ir.Var, len(args))
	for i, a := range args {
		vars[i] = ir.Var(a)
	}
	return ir.Instr{Kind: ir.InstrCall, Call: ir.CallInstr{Fn: ir.Var(fn), Args: vars, Dst: ir.Var(dst)}}
}

// 1 + 2 * 3
var arithProgram = []ir.Instr{
	label("start"),
	loadInt(1, "x"),
	loadInt(2, "x2"),
	loadInt(3, "x3"),
	call("*", "x4", "x2", "x3"),
	call("+", "x5", "x", "x4"),
	call("print_int", "x6", "x5"),
}

const arithAsm = `.extern print_int
.extern print_bool
.extern read_int
.global main
.type main, @function
.section .text
main:
    pushq %rbp
    movq %rsp, %rbp
    subq $48, %rsp

.Lstart:
    movq $1, -8(%rbp)
    movq $2, -16(%rbp)
    movq $3, -24(%rbp)
    movq -16(%rbp), %rax
    imulq -24(%rbp), %rax
    movq %rax, -32(%rbp)
    movq -8(%rbp), %rax
    addq -32(%rbp), %rax
    movq %rax, -40(%rbp)
    movq -40(%rbp), %rdi
    call print_int
    movq %rax, -48(%rbp)

    movq $0, %rax
    movq %rbp, %rsp
    popq %rbp
    ret
`

func TestEmitArithmetic(t *testing.T) {
	asm, err := Emit(arithProgram)
	be.Err(t, err, nil)
	be.Equal(t, asm, arithAsm)
}

const epilogue = `

    movq $0, %rax
    movq %rbp, %rsp
    popq %rbp
    ret
`

func TestEmitRootKinds(t *testing.T) {
	tests := []struct {
		name string
		prog []ir.Instr
		tail string
	}{
		{
			name: "bool root prints with print_bool",
			prog: []ir.Instr{
				label("start"),
				loadInt(1, "x"),
				loadInt(2, "x2"),
				call("<", "x3", "x", "x2"),
				call("print_bool", "x4", "x3"),
			},
			tail: "    movq $1, -8(%rbp)\n" +
				"    movq $2, -16(%rbp)\n" +
				"    xorq %rax, %rax\n" +
				"    movq -8(%rbp), %rdx\n" +
				"    cmpq -16(%rbp), %rdx\n" +
				"    setl %al\n" +
				"    movq %rax, -24(%rbp)\n" +
				"    movq -24(%rbp), %rdi\n" +
				"    call print_bool\n" +
				"    movq %rax, -32(%rbp)" + epilogue,
		},
		{
			name: "unit root ends without a call",
			prog: []ir.Instr{
				label("start"),
				loadInt(2, "x"),
				loadInt(3, "x2"),
				call("+", "x3", "x", "x2"),
			},
			tail: "    movq $2, -8(%rbp)\n" +
				"    movq $3, -16(%rbp)\n" +
				"    movq -8(%rbp), %rax\n" +
				"    addq -16(%rbp), %rax\n" +
				"    movq %rax, -24(%rbp)" + epilogue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asm, err := Emit(tt.prog)
			be.Err(t, err, nil)
			if !strings.HasSuffix(asm, tt.tail) {
				t.Fatalf("assembly does not end with\n%s\ngot:\n%s", tt.tail, asm)
			}
		})
	}
}

func TestLocalsFirstUseOrder(t *testing.T) {
	prog := []ir.Instr{
		label("start"),
		loadInt(7, "x"),
		call("print_int", "x2", "x"),
		{Kind: ir.InstrCopy, Copy: ir.CopyInstr{Src: "x", Dst: "x3"}},
	}
	l := NewLocals(prog)
	be.Equal(t, l.Vars(), []ir.Var{"x", "x2", "x3"})
	ref, ok := l.Ref("x3")
	be.True(t, ok)
	be.Equal(t, ref, "-24(%rbp)")
	_, ok = l.Ref("print_int")
	be.True(t, !ok)
	// 3 слота = 24 байта, выравнивание до 32
	be.Equal(t, l.StackUsed(), 32)
}

func TestStackUsedAlignment(t *testing.T) {
	for n, want := range map[int]int{0: 0, 1: 16, 2: 16, 3: 32, 4: 32, 5: 48} {
		prog := make([]ir.Instr, 0, n)
		for i := range n {
			prog = append(prog, loadInt(int64(i), "v"+string(rune('a'+i))))
		}
		be.Equal(t, NewLocals(prog).StackUsed(), want)
	}
}

func TestLargeConstantUsesMovabs(t *testing.T) {
	asm, err := Emit([]ir.Instr{label("start"), loadInt(1<<40, "x"), loadInt(-1<<31, "x2")})
	be.Err(t, err, nil)
	be.True(t, strings.Contains(asm, "    movabsq $1099511627776, %rax\n    movq %rax, -8(%rbp)\n"))
	be.True(t, strings.Contains(asm, "    movq $-2147483648, -16(%rbp)\n"))
}

func TestIntrinsicSequences(t *testing.T) {
	tests := []struct {
		fn   string
		args []string
		want string
	}{
		{"-", []string{"a", "b"}, "movq -8(%rbp), %rax\n    subq -16(%rbp), %rax\n"},
		{"/", []string{"a", "b"}, "movq -8(%rbp), %rax\n    cqto\n    idivq -16(%rbp)\n"},
		{"%", []string{"a", "b"}, "cqto\n    idivq -16(%rbp)\n    movq %rdx, %rax\n"},
		{"<=", []string{"a", "b"}, "xorq %rax, %rax\n    movq -8(%rbp), %rdx\n    cmpq -16(%rbp), %rdx\n    setle %al\n"},
		{"!=", []string{"a", "b"}, "setne %al\n"},
		{"unary_-", []string{"a"}, "movq -8(%rbp), %rax\n    negq %rax\n"},
		{"unary_not", []string{"a"}, "movq -8(%rbp), %rax\n    xorq $1, %rax\n"},
		{"and", []string{"a", "b"}, "andq -16(%rbp), %rax\n"},
		{"or", []string{"a", "b"}, "orq -16(%rbp), %rax\n"},
	}
	for _, tt := range tests {
		t.Run(tt.fn, func(t *testing.T) {
			prog := []ir.Instr{label("start"), loadInt(6, "a"), loadInt(4, "b"), call(tt.fn, "r", tt.args...)}
			asm, err := Emit(prog)
			be.Err(t, err, nil)
			if !strings.Contains(asm, tt.want) {
				t.Fatalf("missing %q in:\n%s", tt.want, asm)
			}
			if !strings.Contains(asm, "movq %rax, -24(%rbp)\n") {
				t.Fatalf("result not stored into destination slot:\n%s", asm)
			}
		})
	}
}

func TestControlFlow(t *testing.T) {
	prog := []ir.Instr{
		label("start"),
		{Kind: ir.InstrLoadBoolConst, LoadBool: ir.LoadBoolConstInstr{Value: true, Dst: "c"}},
		{Kind: ir.InstrCondJump, CondJump: ir.CondJumpInstr{Cond: "c", Then: "then", Else: "if_end"}},
		label("then"),
		{Kind: ir.InstrJump, Jump: ir.JumpInstr{Target: "if_end"}},
		label("if_end"),
	}
	asm, err := Emit(prog)
	be.Err(t, err, nil)
	be.True(t, strings.Contains(asm, "    movq $1, -8(%rbp)\n    cmpq $0, -8(%rbp)\n    jne .Lthen\n    jmp .Lif_end\n\n.Lthen:\n    jmp .Lif_end\n\n.Lif_end:\n"))
}

func TestCallArgumentRegisters(t *testing.T) {
	prog := []ir.Instr{label("start")}
	args := []string{"a", "b", "c", "d", "e", "f"}
	for i, a := range args {
		prog = append(prog, loadInt(int64(i), a))
	}
	prog = append(prog, call("ext", "r", args...))
	asm, err := Emit(prog)
	be.Err(t, err, nil)
	be.True(t, strings.Contains(asm, "    movq -48(%rbp), %r9\n    call ext\n    movq %rax, -56(%rbp)\n"))

	prog = append(prog, loadInt(7, "g"), call("ext", "r2", append(args, "g")...))
	_, err = Emit(prog)
	be.True(t, errors.Is(err, diag.ErrInternal))
	de, ok := diag.AsError(err)
	be.True(t, ok)
	be.Equal(t, de.Code, diag.GenTooManyArgs)
}

func TestUnitSlottedOnlyWhenReferenced(t *testing.T) {
	l := NewLocals(arithProgram)
	for _, v := range l.Vars() {
		be.True(t, v != ir.UnitVar)
	}
	l = NewLocals([]ir.Instr{{Kind: ir.InstrCopy, Copy: ir.CopyInstr{Src: ir.UnitVar, Dst: "x"}}})
	be.Equal(t, l.Vars(), []ir.Var{ir.UnitVar, "x"})
}
