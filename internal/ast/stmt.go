package ast

import (
	"lunar/internal/source"
)

type StmtKind uint8

const (
	StmtLet StmtKind = iota
	StmtReturn
	StmtExpr
)

func (k StmtKind) String() string {
	switch k {
	case StmtLet:
		return "Let"
	case StmtReturn:
		return "Return"
	case StmtExpr:
		return "ExprStmt"
	}
	return "Stmt(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type LetStmt struct {
	IsMut bool
	Name  source.StringID
	Type  source.StringID // NoStringID if omitted
	Init  ExprID
}

type ReturnStmt struct {
	Value ExprID // NoExprID for a bare return
}

type ExprStmt struct {
	Expr ExprID
}

type Stmts struct {
	Arena     *Arena[Stmt]
	Lets      *Arena[LetStmt]
	Returns   *Arena[ReturnStmt]
	ExprStmts *Arena[ExprStmt]
}

func newStmts(capHint uint, budget *Budget) *Stmts {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Stmts{
		Arena:     newBudgetedArena[Stmt](capHint, budget),
		Lets:      newBudgetedArena[LetStmt](capHint/2+1, budget),
		Returns:   newBudgetedArena[ReturnStmt](capHint/4+1, budget),
		ExprStmts: newBudgetedArena[ExprStmt](capHint/2+1, budget),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	if payload == 0 {
		return NoStmtID
	}
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewLet(span source.Span, isMut bool, name, typ source.StringID, init ExprID) StmtID {
	return s.new(StmtLet, span, s.Lets.Allocate(LetStmt{IsMut: isMut, Name: name, Type: typ, Init: init}))
}

func (s *Stmts) Let(id StmtID) (*LetStmt, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtLet {
		return nil, false
	}
	return s.Lets.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(ReturnStmt{Value: value}))
}

func (s *Stmts) Return(id StmtID) (*ReturnStmt, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, s.ExprStmts.Allocate(ExprStmt{Expr: expr}))
}

func (s *Stmts) Expr(id StmtID) (*ExprStmt, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil, false
	}
	return s.ExprStmts.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) release() {
	s.Arena.Release()
	s.Lets.Release()
	s.Returns.Release()
	s.ExprStmts.Release()
}
