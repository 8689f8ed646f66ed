package parser_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"lunar/internal/ast"
	"lunar/internal/diag"
	"lunar/internal/lexer"
	"lunar/internal/parser"
	"lunar/internal/source"
)

type parsed struct {
	builder *ast.Builder
	res     parser.Result
	bag     *diag.Bag
	err     error
}

func parseWith(t *testing.T, src string, hints ast.Hints, opts parser.Options) parsed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lr", []byte(src))
	bag := diag.NewBag(0)
	reporter := diag.BagReporter{Bag: bag}

	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: reporter})
	b := ast.NewBuilder(hints, nil)
	opts.Reporter = reporter
	res, err := parser.ParseFile(context.Background(), lx, b, opts)
	return parsed{builder: b, res: res, bag: bag, err: err}
}

func parseSource(t *testing.T, src string) parsed {
	t.Helper()
	out := parseWith(t, src, ast.Hints{}, parser.Options{})
	if out.err != nil {
		t.Fatalf("unexpected error: %v", out.err)
	}
	return out
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s @%s", d.Code.ID(), d.Message, d.Primary)
	}
	return strings.Join(lines, "; ")
}

func (p parsed) fns() []ast.FnID {
	prog := p.builder.Programs.Get(p.res.Program)
	if prog == nil {
		return nil
	}
	return prog.Fns
}

// sexpr печатает выражение в виде Add(Int(1), Name(x)).
func sexpr(b *ast.Builder, id ast.ExprID) string {
	e := b.Exprs.Get(id)
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ast.ExprInt:
		v, _ := b.Exprs.IntLit(id)
		return fmt.Sprintf("Int(%d)", v)
	case ast.ExprString:
		s, _ := b.Exprs.StringLit(id)
		return fmt.Sprintf("Str(%q)", b.Lookup(s))
	case ast.ExprBool:
		v, _ := b.Exprs.BoolLit(id)
		return fmt.Sprintf("Bool(%t)", v)
	case ast.ExprName:
		n, _ := b.Exprs.Name(id)
		return fmt.Sprintf("Name(%s)", b.Lookup(n.Name))
	case ast.ExprUnary:
		u, _ := b.Exprs.Unary(id)
		name := "Neg"
		if u.Op == ast.UnaryNot {
			name = "Not"
		}
		return fmt.Sprintf("%s(%s)", name, sexpr(b, u.Operand))
	case ast.ExprBinary:
		bin, _ := b.Exprs.Binary(id)
		return fmt.Sprintf("%s(%s, %s)", binaryName(bin.Op), sexpr(b, bin.Left), sexpr(b, bin.Right))
	case ast.ExprAssign:
		a, _ := b.Exprs.Assign(id)
		target := "<invalid>"
		if a.HasTarget() {
			target = b.Lookup(a.Target)
		}
		return fmt.Sprintf("Assign(%s, %s)", target, sexpr(b, a.Value))
	case ast.ExprCall:
		c, _ := b.Exprs.Call(id)
		args := make([]string, len(c.Args))
		for i, arg := range c.Args {
			args[i] = sexpr(b, arg)
		}
		return fmt.Sprintf("Call(%s, [%s])", sexpr(b, c.Callee), strings.Join(args, ", "))
	}
	return "?"
}

func binaryName(op ast.ExprBinaryOp) string {
	return [...]string{
		ast.OpAdd:       "Add",
		ast.OpSub:       "Sub",
		ast.OpMul:       "Mul",
		ast.OpDiv:       "Div",
		ast.OpEq:        "Eq",
		ast.OpNotEq:     "NotEq",
		ast.OpLess:      "Less",
		ast.OpLessEq:    "LessEq",
		ast.OpGreater:   "Greater",
		ast.OpGreaterEq: "GreaterEq",
	}[op]
}

// dump сериализует всю программу; используется для проверки идемпотентности.
func dump(p parsed) string {
	b := p.builder
	var sb strings.Builder
	for _, fnID := range p.fns() {
		fn := b.Fns.Get(fnID)
		fmt.Fprintf(&sb, "fn %s@%s(", b.Lookup(fn.Name), fn.Span)
		for i, param := range b.Fns.ParamsOf(fnID) {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s:%s", b.Lookup(param.Name), b.Lookup(param.Type))
		}
		fmt.Fprintf(&sb, ") ret %s\n", b.Lookup(fn.ReturnType))
		for _, stmtID := range fn.Body {
			stmt := b.Stmts.Get(stmtID)
			fmt.Fprintf(&sb, "  %s@%s ", stmt.Kind, stmt.Span)
			switch stmt.Kind {
			case ast.StmtLet:
				let, _ := b.Stmts.Let(stmtID)
				fmt.Fprintf(&sb, "mut=%t %s:%s = %s", let.IsMut, b.Lookup(let.Name), b.Lookup(let.Type), sexpr(b, let.Init))
			case ast.StmtReturn:
				ret, _ := b.Stmts.Return(stmtID)
				if ret.Value.IsValid() {
					sb.WriteString(sexpr(b, ret.Value))
				}
			case ast.StmtExpr:
				es, _ := b.Stmts.Expr(stmtID)
				sb.WriteString(sexpr(b, es.Expr))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
