package ir

import (
	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/sema"
	"ember/internal/source"
	"ember/internal/symbols"
	"ember/internal/types"
)

// Generate lowers a type-checked tree into a flat instruction list.
func Generate(b *ast.Builder, root ast.ExprID, res *sema.Result) ([]Instr, error) {
	prog, err := Lower(b, root, res)
	if err != nil {
		return nil, err
	}
	return prog.Instrs, nil
}

// Lower is Generate that also keeps the variable types.
func Lower(b *ast.Builder, root ast.ExprID, res *sema.Result) (*Program, error) {
	l := &lowerer{
		builder: b,
		sema:    res,
		names:   newNamer(),
		labels:  newNamer(),
		prog: &Program{
			Instrs:   make([]Instr, 0, 2*b.Exprs.Len()+2),
			VarTypes: map[Var]types.TypeID{UnitVar: types.Unit},
		},
	}
	l.scopes = symbols.NewTable[Var](symbols.Hints{}, l.builtinVar)

	l.emitLabel(l.newLabel("start"), source.Span{})
	result, err := l.lowerExpr(root)
	if err != nil {
		return nil, err
	}
	l.prog.Result = result

	// корень печатается, если у него есть значение
	span := l.spanOf(root)
	switch l.prog.VarTypes[result] {
	case types.Int:
		l.emitCall(span, "print_int", []Var{result}, l.newVar(types.Unit))
	case types.Bool:
		l.emitCall(span, "print_bool", []Var{result}, l.newVar(types.Unit))
	}
	return l.prog, nil
}

type lowerer struct {
	builder *ast.Builder
	sema    *sema.Result
	scopes  *symbols.Table[Var]
	names   namer
	labels  namer
	prog    *Program
}

// builtinVar makes intrinsics addressable by their own name.
func (l *lowerer) builtinVar(name source.StringID) (Var, bool) {
	s, ok := l.builder.Strings.Lookup(name)
	if !ok {
		return "", false
	}
	b, ok := sema.Builtins().Lookup(s)
	if !ok || b.Kind != sema.BuiltinIntrinsic {
		return "", false
	}
	return Var(s), true
}

func (l *lowerer) newVar(ty types.TypeID) Var {
	v := Var(l.names.fresh("x"))
	l.prog.VarTypes[v] = ty
	return v
}

func (l *lowerer) newLabel(prefix string) Label {
	return Label(l.labels.fresh(prefix))
}

func (l *lowerer) emit(in Instr) {
	l.prog.Instrs = append(l.prog.Instrs, in)
}

func (l *lowerer) emitLabel(name Label, span source.Span) {
	l.emit(Instr{Kind: InstrLabel, Span: span, Label: LabelInstr{Name: name}})
}

func (l *lowerer) emitCopy(span source.Span, src, dst Var) {
	l.emit(Instr{Kind: InstrCopy, Span: span, Copy: CopyInstr{Src: src, Dst: dst}})
}

func (l *lowerer) emitCall(span source.Span, fn Var, args []Var, dst Var) {
	l.emit(Instr{Kind: InstrCall, Span: span, Call: CallInstr{Fn: fn, Args: args, Dst: dst}})
}

func (l *lowerer) emitJump(span source.Span, target Label) {
	l.emit(Instr{Kind: InstrJump, Span: span, Jump: JumpInstr{Target: target}})
}

func (l *lowerer) emitCondJump(span source.Span, cond Var, then, els Label) {
	l.emit(Instr{Kind: InstrCondJump, Span: span, CondJump: CondJumpInstr{Cond: cond, Then: then, Else: els}})
}

func (l *lowerer) spanOf(id ast.ExprID) (sp source.Span) {
	if expr := l.builder.Exprs.Get(id); expr != nil {
		sp = expr.Span
	}
	return sp
}

func (l *lowerer) typeOf(id ast.ExprID) types.TypeID {
	return l.sema.TypeOf(id)
}

// isFn reports whether a node has a function type. Such values are symbols,
// not stack data, so they are bound by name instead of copied.
func (l *lowerer) isFn(id ast.ExprID) bool {
	return l.sema.Types.IsFn(l.typeOf(id))
}

func (l *lowerer) lowerExpr(id ast.ExprID) (Var, error) {
	expr := l.builder.Exprs.Get(id)
	if expr == nil {
		return "", diag.Errorf(nil, diag.GenUnsupportedNode, source.Span{}, "invalid expression id %d", id)
	}
	switch expr.Kind {
	case ast.ExprLit:
		return l.lowerLiteral(id, expr.Span)
	case ast.ExprIdent:
		ident, _ := l.builder.Exprs.Ident(id)
		v, _, ok := l.scopes.Lookup(ident.Name)
		if !ok {
			return "", diag.Errorf(nil, diag.GenUnknownVar, expr.Span, "no IR variable bound to '%s'", l.builder.Name(ident.Name))
		}
		return v, nil
	case ast.ExprVarDecl:
		return l.lowerVarDecl(id, expr.Span)
	case ast.ExprBinary:
		data, _ := l.builder.Exprs.Binary(id)
		switch {
		case data.Op == ast.BinaryAssign:
			return l.lowerAssign(id, expr.Span, data)
		case data.Op.IsLogical():
			return l.lowerLogical(expr.Span, data)
		}
		return l.lowerOperator(id, expr.Span, sema.BinaryName(data.Op), data.Left, data.Right)
	case ast.ExprUnary:
		data, _ := l.builder.Exprs.Unary(id)
		return l.lowerOperator(id, expr.Span, sema.UnaryName(data.Op), data.Operand)
	case ast.ExprIf:
		return l.lowerIf(id, expr.Span)
	case ast.ExprWhile:
		return l.lowerWhile(id, expr.Span)
	case ast.ExprCall:
		return l.lowerCall(id, expr.Span)
	case ast.ExprBlock:
		return l.lowerBlock(id, expr.Span)
	default:
		return "", diag.Errorf(nil, diag.GenUnsupportedNode, expr.Span, "unsupported node %s", expr.Kind)
	}
}

func (l *lowerer) lowerLiteral(id ast.ExprID, span source.Span) (Var, error) {
	lit, _ := l.builder.Exprs.Literal(id)
	switch lit.Kind {
	case ast.LitInt:
		v := l.newVar(types.Int)
		l.emit(Instr{Kind: InstrLoadIntConst, Span: span, LoadInt: LoadIntConstInstr{Value: lit.Int, Dst: v}})
		return v, nil
	case ast.LitBool:
		v := l.newVar(types.Bool)
		l.emit(Instr{Kind: InstrLoadBoolConst, Span: span, LoadBool: LoadBoolConstInstr{Value: lit.Bool, Dst: v}})
		return v, nil
	case ast.LitUnit:
		return UnitVar, nil
	}
	return "", diag.Errorf(nil, diag.GenUnsupportedNode, span, "unsupported literal kind %d", lit.Kind)
}

func (l *lowerer) lowerVarDecl(id ast.ExprID, span source.Span) (Var, error) {
	decl, _ := l.builder.Exprs.VarDecl(id)
	src, err := l.lowerExpr(decl.Init)
	if err != nil {
		return "", err
	}
	dst := src
	if !l.isFn(decl.Init) {
		dst = l.newVar(l.typeOf(decl.Init))
		l.emitCopy(span, src, dst)
	}
	l.scopes.Define(decl.Name, dst)
	if decl.AsResult {
		return dst, nil
	}
	return UnitVar, nil
}

func (l *lowerer) lowerAssign(id ast.ExprID, span source.Span, data *ast.ExprBinaryData) (Var, error) {
	target, _ := l.builder.Exprs.Ident(data.Left)
	src, err := l.lowerExpr(data.Right)
	if err != nil {
		return "", err
	}
	if l.isFn(id) {
		l.scopes.Set(target.Name, src)
		return src, nil
	}
	dst, _, ok := l.scopes.Lookup(target.Name)
	if !ok {
		// первое присваивание необъявленному имени заводит его в корне
		dst = l.newVar(l.typeOf(data.Right))
		l.scopes.Set(target.Name, dst)
	}
	l.emitCopy(span, src, dst)
	return dst, nil
}

func (l *lowerer) lowerOperator(id ast.ExprID, span source.Span, op string, operands ...ast.ExprID) (Var, error) {
	args := make([]Var, 0, len(operands))
	for _, operand := range operands {
		v, err := l.lowerExpr(operand)
		if err != nil {
			return "", err
		}
		args = append(args, v)
	}
	dst := l.newVar(l.typeOf(id))
	l.emitCall(span, Var(op), args, dst)
	return dst, nil
}

// lowerLogical keeps the right operand's effects behind a branch.
func (l *lowerer) lowerLogical(span source.Span, data *ast.ExprBinaryData) (Var, error) {
	prefix := data.Op.String()
	right := l.newLabel(prefix + "_right")
	skip := l.newLabel(prefix + "_skip")
	end := l.newLabel(prefix + "_end")

	left, err := l.lowerExpr(data.Left)
	if err != nil {
		return "", err
	}
	if data.Op == ast.BinaryAnd {
		l.emitCondJump(span, left, right, skip)
	} else {
		l.emitCondJump(span, left, skip, right)
	}

	l.emitLabel(right, span)
	result := l.newVar(types.Bool)
	rv, err := l.lowerExpr(data.Right)
	if err != nil {
		return "", err
	}
	l.emitCopy(span, rv, result)
	l.emitJump(span, end)

	l.emitLabel(skip, span)
	l.emit(Instr{Kind: InstrLoadBoolConst, Span: span, LoadBool: LoadBoolConstInstr{
		Value: data.Op == ast.BinaryOr,
		Dst:   result,
	}})
	l.emitJump(span, end)

	l.emitLabel(end, span)
	return result, nil
}

func (l *lowerer) lowerIf(id ast.ExprID, span source.Span) (Var, error) {
	data, _ := l.builder.Exprs.If(id)
	if !data.Else.IsValid() {
		then := l.newLabel("then")
		end := l.newLabel("if_end")
		cond, err := l.lowerExpr(data.Cond)
		if err != nil {
			return "", err
		}
		l.emitCondJump(span, cond, then, end)
		l.emitLabel(then, span)
		if _, err := l.lowerExpr(data.Then); err != nil {
			return "", err
		}
		l.emitLabel(end, span)
		return UnitVar, nil
	}

	then := l.newLabel("then")
	els := l.newLabel("else")
	end := l.newLabel("if_end")
	cond, err := l.lowerExpr(data.Cond)
	if err != nil {
		return "", err
	}
	l.emitCondJump(span, cond, then, els)
	l.emitLabel(then, span)

	// Unit и функции не копируются: ветки считаются только ради эффектов
	ty := l.typeOf(id)
	byValue := ty != types.Unit && !l.sema.Types.IsFn(ty)
	var result Var
	if byValue {
		result = l.newVar(ty)
	}
	tv, err := l.lowerExpr(data.Then)
	if err != nil {
		return "", err
	}
	if byValue {
		l.emitCopy(span, tv, result)
	}
	l.emitJump(span, end)

	l.emitLabel(els, span)
	ev, err := l.lowerExpr(data.Else)
	if err != nil {
		return "", err
	}
	if byValue {
		l.emitCopy(span, ev, result)
	}
	l.emitLabel(end, span)

	switch {
	case byValue:
		return result, nil
	case ty == types.Unit:
		return UnitVar, nil
	default:
		return tv, nil
	}
}

func (l *lowerer) lowerWhile(id ast.ExprID, span source.Span) (Var, error) {
	data, _ := l.builder.Exprs.While(id)
	start := l.newLabel("while_start")
	body := l.newLabel("while_body")
	end := l.newLabel("while_end")

	l.emitLabel(start, span)
	cond, err := l.lowerExpr(data.Cond)
	if err != nil {
		return "", err
	}
	l.emitCondJump(span, cond, body, end)
	l.emitLabel(body, span)
	if _, err := l.lowerExpr(data.Body); err != nil {
		return "", err
	}
	l.emitJump(span, start)
	l.emitLabel(end, span)
	return UnitVar, nil
}

func (l *lowerer) lowerCall(id ast.ExprID, span source.Span) (Var, error) {
	call, _ := l.builder.Exprs.Call(id)
	fn, _, ok := l.scopes.Lookup(call.Callee)
	if !ok {
		return "", diag.Errorf(nil, diag.GenUnknownVar, call.CalleeSpan, "no IR variable bound to '%s'", l.builder.Name(call.Callee))
	}
	args := make([]Var, 0, len(call.Args))
	for _, arg := range call.Args {
		v, err := l.lowerExpr(arg)
		if err != nil {
			return "", err
		}
		args = append(args, v)
	}
	dst := l.newVar(l.typeOf(id))
	l.emitCall(span, fn, args, dst)
	return dst, nil
}

func (l *lowerer) lowerBlock(id ast.ExprID, span source.Span) (Var, error) {
	block, _ := l.builder.Exprs.Block(id)
	l.scopes.Push(symbols.ScopeBlock, span)
	defer l.scopes.Pop()

	for _, stmt := range block.Stmts {
		if _, err := l.lowerExpr(stmt); err != nil {
			return "", err
		}
	}
	if !block.Result.IsValid() {
		return UnitVar, nil
	}
	return l.lowerExpr(block.Result)
}
