package sema

import (
	"strconv"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/source"
	"ember/internal/symbols"
	"ember/internal/trace"
	"ember/internal/types"
)

func (tc *typeChecker) typeExpr(id ast.ExprID) (ty types.TypeID, err error) {
	expr := tc.builder.Exprs.Get(id)
	if expr == nil {
		return types.NoTypeID, diag.Errorf(nil, diag.GenUnsupportedNode, tc.spanOf(id), "invalid expression id %d", id)
	}

	tc.exprDepth++
	defer func() { tc.exprDepth-- }()

	// только на debug и не глубже 20, иначе трейс тонет в шуме
	var span *trace.Span
	if tc.tracer.Level() >= trace.LevelDebug && tc.exprDepth <= 20 {
		span = trace.Begin(tc.tracer, trace.ScopeNode, "type_expr", tc.parent)
		span.WithExtra("kind", expr.Kind.String())
		span.WithExtra("depth", strconv.Itoa(tc.exprDepth))
	}
	defer func() {
		if span != nil {
			if err == nil {
				span.WithExtra("result", tc.typeLabel(ty))
			}
			span.End("")
		}
	}()

	switch expr.Kind {
	case ast.ExprLit:
		ty, err = tc.typeLiteral(id)
	case ast.ExprIdent:
		ty, err = tc.typeIdent(id)
	case ast.ExprVarDecl:
		ty, err = tc.typeVarDecl(id)
	case ast.ExprBinary:
		ty, err = tc.typeBinary(id)
	case ast.ExprUnary:
		ty, err = tc.typeUnary(id)
	case ast.ExprIf:
		ty, err = tc.typeIf(id)
	case ast.ExprWhile:
		ty, err = tc.typeWhile(id)
	case ast.ExprCall:
		ty, err = tc.typeCall(id)
	case ast.ExprBlock:
		ty, err = tc.typeBlock(id)
	default:
		err = diag.Errorf(tc.file, diag.GenUnsupportedNode, expr.Span, "unsupported node %s", expr.Kind)
	}
	if err != nil {
		return types.NoTypeID, err
	}
	tc.result.ExprTypes[id] = ty
	return ty, nil
}

func (tc *typeChecker) spanOf(id ast.ExprID) (sp source.Span) {
	if expr := tc.builder.Exprs.Get(id); expr != nil {
		sp = expr.Span
	}
	return sp
}

func (tc *typeChecker) typeLiteral(id ast.ExprID) (types.TypeID, error) {
	lit, _ := tc.builder.Exprs.Literal(id)
	switch lit.Kind {
	case ast.LitInt:
		return types.Int, nil
	case ast.LitBool:
		return types.Bool, nil
	case ast.LitUnit:
		return types.Unit, nil
	}
	return types.NoTypeID, tc.errorf(diag.GenUnsupportedNode, tc.spanOf(id), "unsupported literal kind %d", lit.Kind)
}

func (tc *typeChecker) typeIdent(id ast.ExprID) (types.TypeID, error) {
	ident, _ := tc.builder.Exprs.Ident(id)
	ty, _, ok := tc.scopes.Lookup(ident.Name)
	if !ok {
		return types.NoTypeID, tc.errorf(diag.SemaUnresolvedSymbol, tc.spanOf(id), "undefined name '%s'", tc.name(ident.Name))
	}
	return ty, nil
}

func (tc *typeChecker) typeVarDecl(id ast.ExprID) (types.TypeID, error) {
	decl, _ := tc.builder.Exprs.VarDecl(id)
	initTy, err := tc.typeExpr(decl.Init)
	if err != nil {
		return types.NoTypeID, err
	}
	if declared, ok := annotType(decl.Type); ok && declared != initTy {
		return types.NoTypeID, tc.errorf(diag.SemaAnnotationMismatch, decl.NameSpan,
			"variable '%s' is declared %s but initialized with %s",
			tc.name(decl.Name), tc.typeLabel(declared), tc.typeLabel(initTy))
	}
	tc.scopes.Define(decl.Name, initTy)
	if decl.AsResult {
		return initTy, nil
	}
	return types.Unit, nil
}

func annotType(a ast.TypeAnnot) (types.TypeID, bool) {
	switch a {
	case ast.AnnotInt:
		return types.Int, true
	case ast.AnnotBool:
		return types.Bool, true
	case ast.AnnotUnit:
		return types.Unit, true
	default:
		return types.NoTypeID, false
	}
}

func (tc *typeChecker) typeBinary(id ast.ExprID) (types.TypeID, error) {
	data, _ := tc.builder.Exprs.Binary(id)
	if data.Op == ast.BinaryAssign {
		return tc.typeAssign(id, data)
	}
	left, err := tc.typeExpr(data.Left)
	if err != nil {
		return types.NoTypeID, err
	}
	right, err := tc.typeExpr(data.Right)
	if err != nil {
		return types.NoTypeID, err
	}
	op, ok := Builtins().Lookup(BinaryName(data.Op))
	if !ok {
		return types.NoTypeID, tc.errorf(diag.GenUnsupportedNode, tc.spanOf(id), "no builtin for operator '%s'", data.Op)
	}
	result := op.Apply(left, right)
	if result == types.Unit {
		return types.NoTypeID, tc.errorf(diag.SemaOperatorMismatch, tc.spanOf(id),
			"operator '%s' cannot be applied to %s and %s", data.Op, tc.typeLabel(left), tc.typeLabel(right))
	}
	return result, nil
}

func (tc *typeChecker) typeAssign(id ast.ExprID, data *ast.ExprBinaryData) (types.TypeID, error) {
	target, ok := tc.builder.Exprs.Ident(data.Left)
	if !ok {
		return types.NoTypeID, tc.errorf(diag.SemaInvalidAssignment, tc.spanOf(data.Left),
			"left side of '=' must be a variable name")
	}
	rhs, err := tc.typeExpr(data.Right)
	if err != nil {
		return types.NoTypeID, err
	}
	declared, scope, found := tc.scopes.Lookup(target.Name)
	switch {
	case !found:
		// необъявленное имя заводится в корневой области
		tc.scopes.Set(target.Name, rhs)
		declared = rhs
	case scope == symbols.NoScopeID:
		return types.NoTypeID, tc.errorf(diag.SemaInvalidAssignment, tc.spanOf(data.Left),
			"cannot assign to builtin '%s'", tc.name(target.Name))
	case declared != rhs:
		return types.NoTypeID, tc.errorf(diag.SemaTypeMismatch, tc.spanOf(id),
			"cannot assign %s to '%s' of type %s", tc.typeLabel(rhs), tc.name(target.Name), tc.typeLabel(declared))
	}
	tc.result.ExprTypes[data.Left] = declared
	return declared, nil
}

func (tc *typeChecker) typeUnary(id ast.ExprID) (types.TypeID, error) {
	data, _ := tc.builder.Exprs.Unary(id)
	operand, err := tc.typeExpr(data.Operand)
	if err != nil {
		return types.NoTypeID, err
	}
	op, ok := Builtins().Lookup(UnaryName(data.Op))
	if !ok {
		return types.NoTypeID, tc.errorf(diag.GenUnsupportedNode, tc.spanOf(id), "no builtin for operator 'unary %s'", data.Op)
	}
	result := op.Apply(operand)
	if result == types.Unit {
		return types.NoTypeID, tc.errorf(diag.SemaOperatorMismatch, tc.spanOf(id),
			"operator 'unary %s' cannot be applied to %s", data.Op, tc.typeLabel(operand))
	}
	return result, nil
}
