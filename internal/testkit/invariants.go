package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"lunar/internal/ast"
	"lunar/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed program:
// 1) every span points into sf (same path, offset within content bounds)
// 2) functions appear in source order, each starting at or after the program span
// 3) statements of a function follow its header and each other
// 4) an expression never starts before the statement that owns it
func CheckSpanInvariants(b *ast.Builder, progID ast.ProgramID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	prog := b.Programs.Get(progID)
	if prog == nil {
		return fmt.Errorf("program node not found")
	}
	limit, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	inFile := func(what string, sp source.Span) error {
		if sp.IsZero() {
			return fmt.Errorf("%s has zero span", what)
		}
		if sp.Path != sf.Path {
			return fmt.Errorf("%s span points to different file: got=%q want=%q", what, sp.Path, sf.Path)
		}
		if sp.Off > limit {
			return fmt.Errorf("%s span offset beyond content: %d > %d", what, sp.Off, limit)
		}
		return nil
	}

	if err := inFile("program", prog.Span); err != nil {
		return err
	}
	prev := prog.Span
	for i, fnID := range prog.Fns {
		fn := b.Fns.Get(fnID)
		if fn == nil {
			return fmt.Errorf("nil fn for id=%d", fnID)
		}
		what := fmt.Sprintf("fn #%d", i)
		if err := inFile(what, fn.Span); err != nil {
			return err
		}
		if fn.Span.Before(prev) {
			return fmt.Errorf("%s at %v starts before %v", what, fn.Span, prev)
		}
		for _, param := range b.Fns.ParamsOf(fnID) {
			if err := inFile(what+" param", param.Span); err != nil {
				return err
			}
			if !fn.Span.Before(param.Span) {
				return fmt.Errorf("%s param at %v is not after header %v", what, param.Span, fn.Span)
			}
		}
		last := fn.Span
		for _, stmtID := range fn.Body {
			stmt := b.Stmts.Get(stmtID)
			if stmt == nil {
				return fmt.Errorf("nil stmt for id=%d", stmtID)
			}
			if err := inFile("stmt", stmt.Span); err != nil {
				return err
			}
			if !last.Before(stmt.Span) {
				return fmt.Errorf("stmt %s at %v is not after %v", stmt.Kind, stmt.Span, last)
			}
			if err := checkStmtExprs(b, stmtID, stmt, inFile); err != nil {
				return err
			}
			last = stmt.Span
		}
		prev = fn.Span
	}
	return nil
}

func checkStmtExprs(b *ast.Builder, id ast.StmtID, stmt *ast.Stmt, inFile func(string, source.Span) error) error {
	var root ast.ExprID
	switch stmt.Kind {
	case ast.StmtLet:
		if let, ok := b.Stmts.Let(id); ok {
			root = let.Init
		}
	case ast.StmtReturn:
		if ret, ok := b.Stmts.Return(id); ok {
			root = ret.Value
		}
	case ast.StmtExpr:
		if es, ok := b.Stmts.Expr(id); ok {
			root = es.Expr
		}
	}
	if !root.IsValid() {
		return nil
	}
	return walkExpr(b, root, func(e *ast.Expr) error {
		if err := inFile("expr", e.Span); err != nil {
			return err
		}
		if e.Span.Before(stmt.Span) {
			return fmt.Errorf("expr at %v starts before its stmt %v", e.Span, stmt.Span)
		}
		return nil
	})
}

// walkExpr visits id and every operand below it.
func walkExpr(b *ast.Builder, id ast.ExprID, visit func(*ast.Expr) error) error {
	e := b.Exprs.Get(id)
	if e == nil {
		return fmt.Errorf("nil expr for id=%d", id)
	}
	if err := visit(e); err != nil {
		return err
	}
	var children []ast.ExprID
	switch e.Kind {
	case ast.ExprUnary:
		if u, ok := b.Exprs.Unary(id); ok {
			children = append(children, u.Operand)
		}
	case ast.ExprBinary:
		if bin, ok := b.Exprs.Binary(id); ok {
			children = append(children, bin.Left, bin.Right)
		}
	case ast.ExprAssign:
		if a, ok := b.Exprs.Assign(id); ok {
			children = append(children, a.Value)
		}
	case ast.ExprCall:
		if c, ok := b.Exprs.Call(id); ok {
			children = append(children, c.Callee)
			children = append(children, c.Args...)
		}
	}
	for _, child := range children {
		if !child.IsValid() {
			continue
		}
		if err := walkExpr(b, child, visit); err != nil {
			return err
		}
	}
	return nil
}
