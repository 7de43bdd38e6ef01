package parser_test

import (
	"errors"
	"testing"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/diagfmt"
	"ember/internal/parser"
	"ember/internal/source"
)

func parseString(t *testing.T, input string) (*ast.Builder, ast.ExprID, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.em", []byte(input), source.LoadOptions{}))
	return parser.ParseSource(file)
}

func mustParse(t *testing.T, input string) string {
	t.Helper()
	b, root, err := parseString(t, input)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return diagfmt.FormatExpr(b, root)
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "BinaryOp(+, 1, BinaryOp(*, 2, 3))"},
		{"(1 + 2) * 3", "BinaryOp(*, BinaryOp(+, 1, 2), 3)"},
		{"a - b - c", "BinaryOp(-, BinaryOp(-, a, b), c)"},
		{"a = b = c", "BinaryOp(=, a, BinaryOp(=, b, c))"},
		{"a / b % c", "BinaryOp(%, BinaryOp(/, a, b), c)"},
		{"a or b and c", "BinaryOp(or, a, BinaryOp(and, b, c))"},
		{"a == b < c", "BinaryOp(==, a, BinaryOp(<, b, c))"},
		{"x = 1 + 2 >= 3 or y", "BinaryOp(=, x, BinaryOp(or, BinaryOp(>=, BinaryOp(+, 1, 2), 3), y))"},
		{"-x * 2", "BinaryOp(*, UnaryOp(-, x), 2)"},
		{"1 - -2", "BinaryOp(-, 1, UnaryOp(-, 2))"},
		{"not not true", "UnaryOp(not, UnaryOp(not, true))"},
		{"not a and b", "BinaryOp(and, UnaryOp(not, a), b)"},
		{"f()", "FuncExpr(f, [])"},
		{"print_int(1, x + 2)", "FuncExpr(print_int, [1, BinaryOp(+, x, 2)])"},
		{"()", "()"},
		{"((false))", "false"},
		{"if a then b", "IfExpr(a, b)"},
		{"if a then b else c + 1", "IfExpr(a, b, BinaryOp(+, c, 1))"},
		{"1 + if a then 2 else 3", "BinaryOp(+, 1, IfExpr(a, 2, 3))"},
		{"while x < 3 do { x = x + 1; }", "WhileExpr(BinaryOp(<, x, 3), Statements([BinaryOp(=, x, BinaryOp(+, x, 1))]))"},
		{"{ }", "Statements([])"},
		{"{ 1; 2 }", "Statements([1], 2)"},
		{"{ 1; 2; }", "Statements([1, 2])"},
		{"{ var x: Int = 1 }", "Statements([], VarDecl(x, Int, 1))"},
		{"9223372036854775807", "9223372036854775807"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := mustParse(t, tt.input); got != tt.want {
				t.Fatalf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestTopLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2 + 3", "BinaryOp(+, 2, 3)"},
		{"2 + 3;", "Statements([BinaryOp(+, 2, 3)])"},
		{"var x = 1; x", "Statements([VarDecl(x, 1)], x)"},
		{"var x = 1", "Statements([], VarDecl(x, 1))"},
		{"{ 1 } { 2 }", "Statements([Statements([], 1)], Statements([], 2))"},
		{
			"x = 1; while x < 100 do { x = x + 1; }; print_int(x);",
			"Statements([BinaryOp(=, x, 1), WhileExpr(BinaryOp(<, x, 100), Statements([BinaryOp(=, x, BinaryOp(+, x, 1))])), FuncExpr(print_int, [x])])",
		},
		{"{ print_int(1); } not false", "Statements([Statements([FuncExpr(print_int, [1])])], UnaryOp(not, false))"},
		{"{ { print_int(1); } not false }", "Statements([Statements([FuncExpr(print_int, [1])])], UnaryOp(not, false))"},
		{"{ 1 } - 2", "BinaryOp(-, Statements([], 1), 2)"},
		{
			"if a then { 1 } else { 2 } f(x)",
			"Statements([IfExpr(a, Statements([], 1), Statements([], 2))], FuncExpr(f, [x]))",
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := mustParse(t, tt.input); got != tt.want {
				t.Fatalf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestVarAsResultFlag(t *testing.T) {
	b, root, err := parseString(t, "var a = 1; var b = true")
	if err != nil {
		t.Fatal(err)
	}
	blk, ok := b.Exprs.Block(root)
	if !ok {
		t.Fatalf("root is %s, want block", b.Exprs.Get(root).Kind)
	}
	first, _ := b.Exprs.VarDecl(blk.Stmts[0])
	last, _ := b.Exprs.VarDecl(blk.Result)
	if first.AsResult || !last.AsResult {
		t.Fatalf("AsResult = %v/%v, want false/true", first.AsResult, last.AsResult)
	}
}

func TestSpans(t *testing.T) {
	b, root, err := parseString(t, "\n  foo(1, 2) + 3")
	if err != nil {
		t.Fatal(err)
	}
	sp := b.Exprs.Get(root).Span
	if sp.Start != 3 || sp.End != 16 {
		t.Fatalf("span = %d-%d, want 3-16", sp.Start, sp.End)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
		want  string
	}{
		{"1 2", diag.SynExpectSemicolon, "1:3: expected ';', got '2'"},
		{"a b", diag.SynDanglingIdentifier, "1:3: dangling identifier 'b' after 'a'"},
		{"if var x = 1 then 2", diag.SynVarNotAllowed, "1:4: variable declaration is not allowed as if condition"},
		{"if a then var x = 1", diag.SynVarNotAllowed, "1:11: variable declaration is not allowed as if branch"},
		{"while var x = 1 do {}", diag.SynVarNotAllowed, "1:7: variable declaration is not allowed as while condition"},
		{"1 + var x = 2", diag.SynVarNotAllowed, "1:5: variable declaration is not allowed here"},
		{"f(var x = 1)", diag.SynVarNotAllowed, "1:3: variable declaration is not allowed here"},
		{"(1 + 2", diag.SynUnclosedParen, "1:7: expected ')', got end of input"},
		{"f(1 2)", diag.SynUnclosedParen, "1:5: expected ',' or ')' in call, got '2'"},
		{"{ 1; 2", diag.SynUnclosedBrace, "1:7: expected '}' to close block, got end of input"},
		{"1 + ", diag.SynExpectExpression, "1:4: expected expression, got end of input"},
		{"1 }", diag.SynTrailingInput, "1:3: unexpected '}' at top level"},
		{"var 1 = 2", diag.SynExpectIdentifier, "1:5: expected variable name after 'var', got '1'"},
		{"var x: Float = 2", diag.SynExpectType, "1:8: expected type (Int, Bool or Unit), got 'Float'"},
		{"var x 2", diag.SynUnexpectedToken, "1:7: expected '=' in variable declaration, got '2'"},
		{"if a b", diag.SynDanglingIdentifier, "1:6: dangling identifier 'b' after 'a'"},
		{"if a 1", diag.SynUnexpectedToken, "1:6: expected 'then' after if condition, got '1'"},
		{"99999999999999999999", diag.SynIntOverflow, "1:1: integer literal '99999999999999999999' is out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, _, err := parseString(t, tt.input)
			if !errors.Is(err, diag.ErrParse) {
				t.Fatalf("err = %v, want parse error", err)
			}
			if err.Error() != tt.want {
				t.Fatalf("got  %q\nwant %q", err.Error(), tt.want)
			}
			de, _ := diag.AsError(err)
			if de.Code != tt.code {
				t.Fatalf("code = %s, want %s", de.Code.ID(), tt.code.ID())
			}
		})
	}
}

func TestEmptyInput(t *testing.T) {
	for _, input := range []string{"", "  // only a comment\n"} {
		_, _, err := parseString(t, input)
		if !errors.Is(err, diag.ErrEmptyInput) {
			t.Fatalf("%q: err = %v, want empty input", input, err)
		}
	}
}

func TestLexErrorPassesThrough(t *testing.T) {
	_, _, err := parseString(t, "1 + $")
	if !errors.Is(err, diag.ErrLexical) {
		t.Fatalf("err = %v, want lexical error", err)
	}
}
