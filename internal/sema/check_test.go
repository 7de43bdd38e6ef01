package sema_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/parser"
	"ember/internal/sema"
	"ember/internal/source"
	"ember/internal/trace"
	"ember/internal/types"
)

func check(t *testing.T, input string) (*sema.Result, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.em", []byte(input), source.LoadOptions{}))
	b, root, err := parser.ParseSource(file)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return sema.Check(file, b, root)
}

func TestRootTypes(t *testing.T) {
	tests := []struct {
		input string
		want  types.TypeID
	}{
		{"1 + 2 * 3", types.Int},
		{"2 + 3;", types.Unit},
		{"1 < 2 and true", types.Bool},
		{"() == ()", types.Bool},
		{"-5 % 3", types.Int},
		{"not false", types.Bool},
		{"var x = 1", types.Int},
		{"var x = 1;", types.Unit},
		{"var x: Bool = true; x", types.Bool},
		{"if true then 1 else 2", types.Int},
		{"if true then 1", types.Unit},
		{"if true then 1 else ()", types.Unit},
		{"while false do { 1; }", types.Unit},
		{"read_int()", types.Int},
		{"print_int(1)", types.Unit},
		{"{ var x = 1; { var x = true; x } }", types.Bool},
		{"x = 1; while x < 100 do { x = x + 1; }; print_int(x);", types.Unit},
		{"var s = false; true or { s = true; true }; s", types.Bool},
		{"var x = 1; x = 2", types.Int},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, err := check(t, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Root != tt.want {
				t.Fatalf("root type = %s, want %s", res.Types.Name(res.Root), res.Types.Name(tt.want))
			}
		})
	}
}

func TestTypeErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
		msg   string
	}{
		{"-false", diag.SemaOperatorMismatch, "1:1: operator 'unary -' cannot be applied to Bool"},
		{"2 + true", diag.SemaOperatorMismatch, "1:1: operator '+' cannot be applied to Int and Bool"},
		{"not 1", diag.SemaOperatorMismatch, "1:1: operator 'unary not' cannot be applied to Int"},
		{"1 == true", diag.SemaOperatorMismatch, "1:1: operator '==' cannot be applied to Int and Bool"},
		{"print_int == print_int", diag.SemaOperatorMismatch, "1:1: operator '==' cannot be applied to (Int) => Unit and (Int) => Unit"},
		{"y + 1", diag.SemaUnresolvedSymbol, "1:1: undefined name 'y'"},
		{"if 1 then 2", diag.SemaConditionNotBool, "1:4: if condition must be Bool, got Int"},
		{"while 0 do { }", diag.SemaConditionNotBool, "1:7: while condition must be Bool, got Int"},
		{"if true then 1 else false", diag.SemaBranchMismatch, "1:1: if branches have different types: Int and Bool"},
		{"print_int(1, 2)", diag.SemaArgumentCount, "1:1: print_int expects 1 argument(s), got 2"},
		{"print_bool(1)", diag.SemaArgumentType, "1:12: argument 1 of print_bool must be Bool, got Int"},
		{"var x = 1; x(2)", diag.SemaNotCallable, "1:12: x is not a function"},
		{"foo()", diag.SemaUnresolvedSymbol, "1:1: undefined function 'foo'"},
		{"var x: Int = true", diag.SemaAnnotationMismatch, "1:5: variable 'x' is declared Int but initialized with Bool"},
		{"var x = 1; x = true", diag.SemaTypeMismatch, "1:12: cannot assign Bool to 'x' of type Int"},
		{"print_int = 1", diag.SemaInvalidAssignment, "1:1: cannot assign to builtin 'print_int'"},
		{"1 = 2", diag.SemaInvalidAssignment, "1:1: left side of '=' must be a variable name"},
		{"{ var x = 1; }; x", diag.SemaUnresolvedSymbol, "1:17: undefined name 'x'"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, err := check(t, tt.input)
			if err == nil {
				t.Fatalf("expected error, got root %v", res.Root)
			}
			if res != nil {
				t.Fatalf("no partial result on failure")
			}
			if !errors.Is(err, diag.ErrType) {
				t.Fatalf("error %v does not wrap ErrType", err)
			}
			de, ok := diag.AsError(err)
			if !ok {
				t.Fatalf("error %v is not a *diag.Error", err)
			}
			if de.Code != tt.code {
				t.Fatalf("code = %v, want %v (%v)", de.Code, tt.code, err)
			}
			if err.Error() != tt.msg {
				t.Fatalf("message = %q, want %q", err.Error(), tt.msg)
			}
		})
	}
}

func TestUndeclaredAssignmentLivesAtRoot(t *testing.T) {
	res, err := check(t, "{ { x = 1; }; x }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Root != types.Int {
		t.Fatalf("root type = %s, want Int", res.Types.Name(res.Root))
	}
}

func TestEveryNodeIsTyped(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.em", []byte("var a = 1; if a < 2 then { print_int(a); } else { a = 3; }"), source.LoadOptions{}))
	b, root, err := parser.ParseSource(file)
	if err != nil {
		t.Fatal(err)
	}
	res, err := sema.Check(file, b, root)
	if err != nil {
		t.Fatal(err)
	}
	b.Walk(root, func(id ast.ExprID) bool {
		if res.TypeOf(id) == types.NoTypeID {
			t.Errorf("node %d (%s) has no type", id, b.Exprs.Get(id).Kind)
		}
		return true
	})
}

func TestBuiltinTableIsShared(t *testing.T) {
	first := sema.Builtins()
	b, ok := first.Lookup("print_int")
	if !ok || b.Kind != sema.BuiltinIntrinsic {
		t.Fatalf("print_int missing from builtins")
	}
	b.Params[0] = types.Bool
	again, _ := sema.Builtins().Lookup("print_int")
	if again.Params[0] != types.Int {
		t.Fatalf("builtin table was mutated through a lookup")
	}
	if first != sema.Builtins() {
		t.Fatalf("builtin table must be a single shared value")
	}
	want := []string{"print_int", "print_bool", "read_int"}
	got := first.Intrinsics()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("intrinsics = %v, want %v", got, want)
	}
	for _, name := range []string{"+", "%", "<=", "!=", "and", "unary_-", "unary_not"} {
		if _, ok := first.Lookup(name); !ok {
			t.Errorf("operator %q missing", name)
		}
	}
}

func TestNodeTraceAtDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)

	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.em", []byte("1 + 2"), source.LoadOptions{}))
	b, root, err := parser.ParseSource(file)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sema.CheckContext(ctx, file, b, root); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Count(out, "type_expr") != 6 {
		t.Fatalf("want begin+end for three nodes, got:\n%s", out)
	}
	if !strings.Contains(out, "result=Int") {
		t.Fatalf("end events must carry the result type:\n%s", out)
	}
}
