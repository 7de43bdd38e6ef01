package x86

// intrinsicArgs carries operand references; an intrinsic leaves its value in result.
type intrinsicArgs struct {
	refs   []string
	result string
	emit   func(format string, args ...any)
}

type intrinsic struct {
	arity int
	gen   func(a intrinsicArgs)
}

var intrinsics = map[string]intrinsic{
	"+":         binaryArith("addq"),
	"-":         binaryArith("subq"),
	"*":         binaryArith("imulq"),
	"/":         {arity: 2, gen: divide(false)},
	"%":         {arity: 2, gen: divide(true)},
	"<":         compare("setl"),
	"<=":        compare("setle"),
	">":         compare("setg"),
	">=":        compare("setge"),
	"==":        compare("sete"),
	"!=":        compare("setne"),
	"and":       binaryArith("andq"),
	"or":        binaryArith("orq"),
	"unary_-":   {arity: 1, gen: unary("negq %s")},
	"unary_not": {arity: 1, gen: unary("xorq $1, %s")},
}

func binaryArith(op string) intrinsic {
	return intrinsic{arity: 2, gen: func(a intrinsicArgs) {
		a.emit("movq %s, %s", a.refs[0], a.result)
		a.emit("%s %s, %s", op, a.refs[1], a.result)
	}}
}

// divide: делимое в %rdx:%rax, остаток остаётся в %rdx.
func divide(remainder bool) func(a intrinsicArgs) {
	return func(a intrinsicArgs) {
		a.emit("movq %s, %%rax", a.refs[0])
		a.emit("cqto")
		a.emit("idivq %s", a.refs[1])
		if remainder {
			a.emit("movq %%rdx, %s", a.result)
		} else if a.result != "%rax" {
			a.emit("movq %%rax, %s", a.result)
		}
	}
}

func compare(set string) intrinsic {
	return intrinsic{arity: 2, gen: func(a intrinsicArgs) {
		a.emit("xorq %%rax, %%rax")
		a.emit("movq %s, %%rdx", a.refs[0])
		a.emit("cmpq %s, %%rdx", a.refs[1])
		a.emit("%s %%al", set)
		if a.result != "%rax" {
			a.emit("movq %%rax, %s", a.result)
		}
	}}
}

func unary(op string) func(a intrinsicArgs) {
	return func(a intrinsicArgs) {
		a.emit("movq %s, %s", a.refs[0], a.result)
		a.emit(op, a.result)
	}
}
