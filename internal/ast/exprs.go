package ast

import (
	"lunar/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena    *Arena[Expr]
	Literals *Arena[ExprLiteralData]
	Names    *Arena[ExprNameData]
	Unaries  *Arena[ExprUnaryData]
	Binaries *Arena[ExprBinaryData]
	Assigns  *Arena[ExprAssignData]
	Calls    *Arena[ExprCallData]
}

// newExprs preallocates per-kind arenas using capHint (0 = 1<<8).
func newExprs(capHint uint, budget *Budget) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/4 + 1
	return &Exprs{
		Arena:    newBudgetedArena[Expr](capHint, budget),
		Literals: newBudgetedArena[ExprLiteralData](capHint/2+1, budget),
		Names:    newBudgetedArena[ExprNameData](capHint/2+1, budget),
		Unaries:  newBudgetedArena[ExprUnaryData](small, budget),
		Binaries: newBudgetedArena[ExprBinaryData](small, budget),
		Assigns:  newBudgetedArena[ExprAssignData](small, budget),
		Calls:    newBudgetedArena[ExprCallData](small, budget),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	if payload == 0 {
		return NoExprID
	}
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

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

// NewInt creates an integer literal.
func (e *Exprs) NewInt(span source.Span, value int64) ExprID {
	return e.new(ExprInt, span, e.Literals.Allocate(ExprLiteralData{Int: value}))
}

// IntLit returns the value of an integer literal.
func (e *Exprs) IntLit(id ExprID) (int64, bool) {
	p, ok := e.payload(id, ExprInt)
	if !ok {
		return 0, false
	}
	return e.Literals.Get(p).Int, true
}

// NewString creates a string literal.
func (e *Exprs) NewString(span source.Span, value source.StringID) ExprID {
	return e.new(ExprString, span, e.Literals.Allocate(ExprLiteralData{Str: value}))
}

// StringLit returns the raw contents of a string literal.
func (e *Exprs) StringLit(id ExprID) (source.StringID, bool) {
	p, ok := e.payload(id, ExprString)
	if !ok {
		return source.NoStringID, false
	}
	return e.Literals.Get(p).Str, true
}

// NewBool creates a boolean literal.
func (e *Exprs) NewBool(span source.Span, value bool) ExprID {
	return e.new(ExprBool, span, e.Literals.Allocate(ExprLiteralData{Bool: value}))
}

// BoolLit returns the value of a boolean literal; ok reports whether id is one.
func (e *Exprs) BoolLit(id ExprID) (value, ok bool) {
	p, ok := e.payload(id, ExprBool)
	if !ok {
		return false, false
	}
	return e.Literals.Get(p).Bool, true
}

// NewName creates a name reference.
func (e *Exprs) NewName(span source.Span, name source.StringID) ExprID {
	return e.new(ExprName, span, e.Names.Allocate(ExprNameData{Name: name}))
}

// Name returns the identifier data for the given expression ID.
func (e *Exprs) Name(id ExprID) (*ExprNameData, bool) {
	p, ok := e.payload(id, ExprName)
	if !ok {
		return nil, false
	}
	return e.Names.Get(p), true
}

// NewUnary creates a new unary expression.
func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
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

// NewBinary creates a new binary expression.
func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
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

// NewAssign creates an assignment. Pass source.NoStringID as target when the
// left side was not a name.
func (e *Exprs) NewAssign(span source.Span, target source.StringID, targetSpan source.Span, value ExprID) ExprID {
	return e.new(ExprAssign, span, e.Assigns.Allocate(ExprAssignData{Target: target, TargetSpan: targetSpan, Value: value}))
}

// Assign returns the assignment data for the given expression ID.
func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	p, ok := e.payload(id, ExprAssign)
	if !ok {
		return nil, false
	}
	return e.Assigns.Get(p), true
}

// NewCall creates a new function call expression. args is copied.
func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{
		Callee: callee,
		Args:   append([]ExprID(nil), args...),
	}))
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

func (e *Exprs) release() {
	e.Arena.Release()
	e.Literals.Release()
	e.Names.Release()
	e.Unaries.Release()
	e.Binaries.Release()
	e.Assigns.Release()
	e.Calls.Release()
}
