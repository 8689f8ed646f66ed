package diagfmt

import (
	"fmt"
	"strings"

	"lunar/internal/ast"
	"lunar/internal/source"
)

const exprInlineMaxDepth = 512

// formatExprInline produces a compact, source-like representation of the
// expression. Binary operators are fully parenthesised so the tree shape is
// visible. Invalid handles render as "<none>" / "<invalid>".
func formatExprInline(builder *ast.Builder, exprID ast.ExprID) string {
	var sb strings.Builder
	writeExprInline(&sb, builder, exprID, 0)
	return sb.String()
}

func writeExprInline(sb *strings.Builder, builder *ast.Builder, exprID ast.ExprID, depth int) {
	if !exprID.IsValid() {
		sb.WriteString("<none>")
		return
	}
	if depth >= exprInlineMaxDepth {
		sb.WriteString("...")
		return
	}
	expr := builder.Exprs.Get(exprID)
	if expr == nil {
		sb.WriteString("<invalid>")
		return
	}

	switch expr.Kind {
	case ast.ExprInt:
		v, _ := builder.Exprs.IntLit(exprID)
		fmt.Fprintf(sb, "%d", v)
	case ast.ExprString:
		s, _ := builder.Exprs.StringLit(exprID)
		sb.WriteString(`"` + builder.Lookup(s) + `"`)
	case ast.ExprBool:
		v, _ := builder.Exprs.BoolLit(exprID)
		fmt.Fprintf(sb, "%t", v)
	case ast.ExprName:
		n, _ := builder.Exprs.Name(exprID)
		sb.WriteString(builder.Lookup(n.Name))
	case ast.ExprUnary:
		u, _ := builder.Exprs.Unary(exprID)
		sb.WriteString(u.Op.String())
		writeExprInline(sb, builder, u.Operand, depth+1)
	case ast.ExprBinary:
		b, _ := builder.Exprs.Binary(exprID)
		sb.WriteByte('(')
		writeExprInline(sb, builder, b.Left, depth+1)
		sb.WriteString(" " + b.Op.String() + " ")
		writeExprInline(sb, builder, b.Right, depth+1)
		sb.WriteByte(')')
	case ast.ExprAssign:
		a, _ := builder.Exprs.Assign(exprID)
		sb.WriteString(assignTarget(builder, a))
		sb.WriteString(" = ")
		writeExprInline(sb, builder, a.Value, depth+1)
	case ast.ExprCall:
		c, _ := builder.Exprs.Call(exprID)
		writeExprInline(sb, builder, c.Callee, depth+1)
		sb.WriteByte('(')
		for i, arg := range c.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExprInline(sb, builder, arg, depth+1)
		}
		sb.WriteByte(')')
	default:
		fmt.Fprintf(sb, "<expr kind %d>", expr.Kind)
	}
}

func assignTarget(builder *ast.Builder, a *ast.ExprAssignData) string {
	if !a.HasTarget() {
		return "<invalid target>"
	}
	return builder.Lookup(a.Target)
}

// lookupStringOr returns the interned text or fallback for NoStringID.
func lookupStringOr(builder *ast.Builder, id source.StringID, fallback string) string {
	if id == source.NoStringID {
		return fallback
	}
	return builder.Lookup(id)
}
