package sema

import (
	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/symbols"
	"ember/internal/types"
)

func (tc *typeChecker) expectBool(cond ast.ExprID, what string) error {
	ty, err := tc.typeExpr(cond)
	if err != nil {
		return err
	}
	if ty != types.Bool {
		return tc.errorf(diag.SemaConditionNotBool, tc.spanOf(cond), "%s must be Bool, got %s", what, tc.typeLabel(ty))
	}
	return nil
}

func (tc *typeChecker) typeIf(id ast.ExprID) (types.TypeID, error) {
	data, _ := tc.builder.Exprs.If(id)
	if err := tc.expectBool(data.Cond, "if condition"); err != nil {
		return types.NoTypeID, err
	}
	thenTy, err := tc.typeExpr(data.Then)
	if err != nil {
		return types.NoTypeID, err
	}
	if !data.Else.IsValid() {
		return types.Unit, nil
	}
	elseTy, err := tc.typeExpr(data.Else)
	if err != nil {
		return types.NoTypeID, err
	}
	// `else ()` ведёт себя как отсутствующая ветка
	if tc.isUnitLiteral(data.Else) {
		return types.Unit, nil
	}
	if thenTy != elseTy {
		return types.NoTypeID, tc.errorf(diag.SemaBranchMismatch, tc.spanOf(id),
			"if branches have different types: %s and %s", tc.typeLabel(thenTy), tc.typeLabel(elseTy))
	}
	return thenTy, nil
}

func (tc *typeChecker) isUnitLiteral(id ast.ExprID) bool {
	lit, ok := tc.builder.Exprs.Literal(id)
	return ok && lit.Kind == ast.LitUnit
}

func (tc *typeChecker) typeWhile(id ast.ExprID) (types.TypeID, error) {
	data, _ := tc.builder.Exprs.While(id)
	if err := tc.expectBool(data.Cond, "while condition"); err != nil {
		return types.NoTypeID, err
	}
	if _, err := tc.typeExpr(data.Body); err != nil {
		return types.NoTypeID, err
	}
	return types.Unit, nil
}

func (tc *typeChecker) typeCall(id ast.ExprID) (types.TypeID, error) {
	call, _ := tc.builder.Exprs.Call(id)
	name := tc.name(call.Callee)
	calleeTy, _, ok := tc.scopes.Lookup(call.Callee)
	if !ok {
		return types.NoTypeID, tc.errorf(diag.SemaUnresolvedSymbol, call.CalleeSpan, "undefined function '%s'", name)
	}
	fn, ok := tc.types.FnInfo(calleeTy)
	if !ok {
		return types.NoTypeID, tc.errorf(diag.SemaNotCallable, call.CalleeSpan, "%s is not a function", name)
	}
	if len(call.Args) != len(fn.Params) {
		return types.NoTypeID, tc.errorf(diag.SemaArgumentCount, tc.spanOf(id),
			"%s expects %d argument(s), got %d", name, len(fn.Params), len(call.Args))
	}
	for i, arg := range call.Args {
		argTy, err := tc.typeExpr(arg)
		if err != nil {
			return types.NoTypeID, err
		}
		if argTy != fn.Params[i] {
			return types.NoTypeID, tc.errorf(diag.SemaArgumentType, tc.spanOf(arg),
				"argument %d of %s must be %s, got %s", i+1, name, tc.typeLabel(fn.Params[i]), tc.typeLabel(argTy))
		}
	}
	return fn.Result, nil
}

func (tc *typeChecker) typeBlock(id ast.ExprID) (types.TypeID, error) {
	block, _ := tc.builder.Exprs.Block(id)
	tc.scopes.Push(symbols.ScopeBlock, tc.spanOf(id))
	defer tc.scopes.Pop()

	for _, stmt := range block.Stmts {
		if _, err := tc.typeExpr(stmt); err != nil {
			return types.NoTypeID, err
		}
	}
	if !block.Result.IsValid() {
		return types.Unit, nil
	}
	return tc.typeExpr(block.Result)
}
