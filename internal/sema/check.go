package sema

import (
	"context"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/source"
	"ember/internal/symbols"
	"ember/internal/trace"
	"ember/internal/types"
)

// Result stores semantic artefacts produced by the checker.
type Result struct {
	Types     *types.Interner
	ExprTypes map[ast.ExprID]types.TypeID
	Root      types.TypeID
}

// TypeOf returns the resolved type of id, or NoTypeID if it was never checked.
func (r *Result) TypeOf(id ast.ExprID) types.TypeID {
	if r == nil {
		return types.NoTypeID
	}
	return r.ExprTypes[id]
}

// Check type-checks the tree rooted at root. The first violation aborts the pass.
func Check(file *source.File, b *ast.Builder, root ast.ExprID) (*Result, error) {
	return CheckContext(context.Background(), file, b, root)
}

// CheckContext is Check with a tracer taken from ctx.
func CheckContext(ctx context.Context, file *source.File, b *ast.Builder, root ast.ExprID) (*Result, error) {
	res := &Result{
		Types:     types.NewInterner(),
		ExprTypes: make(map[ast.ExprID]types.TypeID, b.Exprs.Len()),
	}
	tc := &typeChecker{
		file:    file,
		builder: b,
		types:   res.Types,
		result:  res,
		tracer:  trace.FromContext(ctx),
		parent:  trace.CurrentSpan(ctx).SpanID,
	}
	tc.scopes = symbols.NewTable[types.TypeID](symbols.Hints{}, tc.builtinType)

	ty, err := tc.typeExpr(root)
	if err != nil {
		return nil, err
	}
	res.Root = ty
	return res, nil
}

type typeChecker struct {
	file      *source.File
	builder   *ast.Builder
	types     *types.Interner
	scopes    *symbols.Table[types.TypeID]
	result    *Result
	tracer    trace.Tracer
	parent    uint64 // span стадии, под которым идут узловые span'ы
	exprDepth int
}

// builtinType resolves intrinsic procedures beneath the root scope.
// Их типы интернируются лениво, таблица при этом не меняется.
func (tc *typeChecker) builtinType(name source.StringID) (types.TypeID, bool) {
	s, ok := tc.builder.Strings.Lookup(name)
	if !ok {
		return types.NoTypeID, false
	}
	b, ok := Builtins().Lookup(s)
	if !ok || b.Kind != BuiltinIntrinsic {
		return types.NoTypeID, false
	}
	return tc.types.RegisterFn(b.Params, b.Result), true
}

func (tc *typeChecker) errorf(code diag.Code, sp source.Span, format string, args ...any) error {
	return diag.Errorf(tc.file, code, sp, format, args...)
}

func (tc *typeChecker) typeLabel(id types.TypeID) string {
	return tc.types.Name(id)
}

func (tc *typeChecker) name(id source.StringID) string {
	return tc.builder.Name(id)
}
