package testkit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ember/internal/ir"
)

// MaxSteps bounds Eval so that a non-terminating program fails the test instead of hanging it.
const MaxSteps = 10_000_000

var (
	ErrStepLimit    = errors.New("step limit exceeded")
	ErrDivideByZero = errors.New("division by zero")
)

// Eval runs an IR program with the three intrinsics wired to stdin/stdout.
// Bools are 0/1 words, the same representation the assembly uses.
func Eval(prog []ir.Instr, stdin io.Reader, stdout io.Writer) error {
	labels := make(map[ir.Label]int, 8)
	for i := range prog {
		if prog[i].Kind == ir.InstrLabel {
			labels[prog[i].Label.Name] = i
		}
	}
	m := &machine{
		vars:   make(map[ir.Var]int64, 32),
		out:    stdout,
		labels: labels,
	}
	if stdin != nil {
		m.in = bufio.NewScanner(stdin)
	}

	pc := 0
	for steps := 0; pc < len(prog); steps++ {
		if steps >= MaxSteps {
			return ErrStepLimit
		}
		in := &prog[pc]
		pc++
		switch in.Kind {
		case ir.InstrLabel:
		case ir.InstrLoadIntConst:
			m.vars[in.LoadInt.Dst] = in.LoadInt.Value
		case ir.InstrLoadBoolConst:
			m.vars[in.LoadBool.Dst] = boolWord(in.LoadBool.Value)
		case ir.InstrCopy:
			m.vars[in.Copy.Dst] = m.vars[in.Copy.Src]
		case ir.InstrCall:
			v, err := m.call(in.Call)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			m.vars[in.Call.Dst] = v
		case ir.InstrJump:
			target, err := m.jump(in.Jump.Target)
			if err != nil {
				return err
			}
			pc = target
		case ir.InstrCondJump:
			label := in.CondJump.Else
			if m.vars[in.CondJump.Cond] != 0 {
				label = in.CondJump.Then
			}
			target, err := m.jump(label)
			if err != nil {
				return err
			}
			pc = target
		default:
			return fmt.Errorf("unsupported instruction %s", in.Kind)
		}
	}
	return nil
}

type machine struct {
	vars   map[ir.Var]int64
	labels map[ir.Label]int
	in     *bufio.Scanner
	out    io.Writer
}

func (m *machine) jump(l ir.Label) (int, error) {
	idx, ok := m.labels[l]
	if !ok {
		return 0, fmt.Errorf("unknown label %s", l)
	}
	return idx, nil
}

func (m *machine) call(c ir.CallInstr) (int64, error) {
	args := make([]int64, len(c.Args))
	for i, a := range c.Args {
		args[i] = m.vars[a]
	}
	switch c.Fn {
	case "print_int":
		_, err := fmt.Fprintf(m.out, "%d\n", args[0])
		return 0, err
	case "print_bool":
		_, err := fmt.Fprintf(m.out, "%t\n", args[0] != 0)
		return 0, err
	case "read_int":
		return m.readInt()
	}
	return applyIntrinsic(string(c.Fn), args)
}

func (m *machine) readInt() (int64, error) {
	if m.in == nil || !m.in.Scan() {
		return 0, fmt.Errorf("read_int: no input")
	}
	return strconv.ParseInt(strings.TrimSpace(m.in.Text()), 10, 64)
}

func applyIntrinsic(name string, a []int64) (int64, error) {
	if len(a) == 1 {
		switch name {
		case "unary_-":
			return -a[0], nil
		case "unary_not":
			return a[0] ^ 1, nil
		}
		return 0, fmt.Errorf("unknown unary intrinsic %q", name)
	}
	if len(a) != 2 {
		return 0, fmt.Errorf("unknown function %q/%d", name, len(a))
	}
	x, y := a[0], a[1]
	switch name {
	case "+":
		return x + y, nil
	case "-":
		return x - y, nil
	case "*":
		return x * y, nil
	case "/", "%":
		if y == 0 {
			return 0, ErrDivideByZero
		}
		// idivq усекает к нулю, как и Go
		if name == "/" {
			return x / y, nil
		}
		return x % y, nil
	case "<":
		return boolWord(x < y), nil
	case "<=":
		return boolWord(x <= y), nil
	case ">":
		return boolWord(x > y), nil
	case ">=":
		return boolWord(x >= y), nil
	case "==":
		return boolWord(x == y), nil
	case "!=":
		return boolWord(x != y), nil
	case "and":
		return x & y, nil
	case "or":
		return x | y, nil
	}
	return 0, fmt.Errorf("unknown intrinsic %q", name)
}

func boolWord(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
