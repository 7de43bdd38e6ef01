package ast

import (
	"ember/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena    *Arena[Expr]
	Literals *Arena[ExprLiteralData]
	Idents   *Arena[ExprIdentData]
	Binaries *Arena[ExprBinaryData]
	Unaries  *Arena[ExprUnaryData]
	Ifs      *Arena[ExprIfData]
	Whiles   *Arena[ExprWhileData]
	Blocks   *Arena[ExprBlockData]
	Calls    *Arena[ExprCallData]
	VarDecls *Arena[ExprVarDeclData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint.
// If capHint is 0, a default capacity of 1<<8 is used.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/4 + 1
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Literals: NewArena[ExprLiteralData](capHint),
		Idents:   NewArena[ExprIdentData](capHint),
		Binaries: NewArena[ExprBinaryData](capHint),
		Unaries:  NewArena[ExprUnaryData](small),
		Ifs:      NewArena[ExprIfData](small),
		Whiles:   NewArena[ExprWhileData](small),
		Blocks:   NewArena[ExprBlockData](small),
		Calls:    NewArena[ExprCallData](small),
		VarDecls: NewArena[ExprVarDeclData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// Len returns the number of allocated expressions.
func (e *Exprs) Len() uint32 { return e.Arena.Len() }

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

// NewIntLit creates an Int literal.
func (e *Exprs) NewIntLit(span source.Span, v int64) ExprID {
	return e.new(ExprLit, span, e.Literals.Allocate(ExprLiteralData{Kind: LitInt, Int: v}))
}

// NewBoolLit creates a Bool literal.
func (e *Exprs) NewBoolLit(span source.Span, v bool) ExprID {
	return e.new(ExprLit, span, e.Literals.Allocate(ExprLiteralData{Kind: LitBool, Bool: v}))
}

// NewUnitLit creates the `()` literal.
func (e *Exprs) NewUnitLit(span source.Span) ExprID {
	return e.new(ExprLit, span, e.Literals.Allocate(ExprLiteralData{Kind: LitUnit}))
}

// Literal returns the literal data for the given expression ID.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	p, ok := e.payload(id, ExprLit)
	if !ok {
		return nil, false
	}
	return e.Literals.Get(p), true
}

// NewIdent creates a new identifier expression.
func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	return e.new(ExprIdent, span, e.Idents.Allocate(ExprIdentData{Name: name}))
}

// Ident returns the identifier data for the given expression ID.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	p, ok := e.payload(id, ExprIdent)
	if !ok {
		return nil, false
	}
	return e.Idents.Get(p), true
}

// NewBinary creates a new binary expression.
func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

// Binary returns the binary data for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

// NewUnary creates a new unary expression.
func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

// Unary returns the unary data for the given expression ID.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

// NewIf creates an if expression; elseExpr may be NoExprID.
func (e *Exprs) NewIf(span source.Span, cond, then, elseExpr ExprID) ExprID {
	return e.new(ExprIf, span, e.Ifs.Allocate(ExprIfData{Cond: cond, Then: then, Else: elseExpr}))
}

func (e *Exprs) If(id ExprID) (*ExprIfData, bool) {
	p, ok := e.payload(id, ExprIf)
	if !ok {
		return nil, false
	}
	return e.Ifs.Get(p), true
}

func (e *Exprs) NewWhile(span source.Span, cond, body ExprID) ExprID {
	return e.new(ExprWhile, span, e.Whiles.Allocate(ExprWhileData{Cond: cond, Body: body}))
}

func (e *Exprs) While(id ExprID) (*ExprWhileData, bool) {
	p, ok := e.payload(id, ExprWhile)
	if !ok {
		return nil, false
	}
	return e.Whiles.Get(p), true
}

// NewBlock creates a block; result may be NoExprID (the block yields Unit).
func (e *Exprs) NewBlock(span source.Span, stmts []ExprID, result ExprID) ExprID {
	return e.new(ExprBlock, span, e.Blocks.Allocate(ExprBlockData{Stmts: stmts, Result: result}))
}

func (e *Exprs) Block(id ExprID) (*ExprBlockData, bool) {
	p, ok := e.payload(id, ExprBlock)
	if !ok {
		return nil, false
	}
	return e.Blocks.Get(p), true
}

func (e *Exprs) NewCall(span source.Span, callee source.StringID, calleeSpan source.Span, args []ExprID) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{Callee: callee, CalleeSpan: calleeSpan, Args: args}))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

func (e *Exprs) NewVarDecl(span source.Span, data ExprVarDeclData) ExprID {
	return e.new(ExprVarDecl, span, e.VarDecls.Allocate(data))
}

func (e *Exprs) VarDecl(id ExprID) (*ExprVarDeclData, bool) {
	p, ok := e.payload(id, ExprVarDecl)
	if !ok {
		return nil, false
	}
	return e.VarDecls.Get(p), true
}

// IsVarDecl reports whether id is a var declaration.
func (e *Exprs) IsVarDecl(id ExprID) bool {
	expr := e.Get(id)
	return expr != nil && expr.Kind == ExprVarDecl
}
