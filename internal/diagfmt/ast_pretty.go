package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"lunar/internal/ast"
)

// FormatASTPretty печатает программу обратно в виде исходника;
// бинарные выражения берутся в скобки, чтобы был виден приоритет.
func FormatASTPretty(w io.Writer, builder *ast.Builder, progID ast.ProgramID) error {
	prog := builder.Programs.Get(progID)
	if prog == nil {
		return fmt.Errorf("program %d not found", progID)
	}

	var sb strings.Builder
	for i, fnID := range prog.Fns {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeFnPretty(&sb, builder, fnID)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeFnPretty(sb *strings.Builder, builder *ast.Builder, fnID ast.FnID) {
	fn := builder.Fns.Get(fnID)
	if fn == nil {
		sb.WriteString("<nil fn>\n")
		return
	}
	fmt.Fprintf(sb, "funct %s(", lookupStringOr(builder, fn.Name, "<anon>"))
	for i, param := range builder.Fns.ParamsOf(fnID) {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(builder.Lookup(param.Name))
		if param.Type != 0 {
			sb.WriteString(": " + builder.Lookup(param.Type))
		}
	}
	fmt.Fprintf(sb, ") ret %s {\n", lookupStringOr(builder, fn.ReturnType, "<none>"))
	for _, stmtID := range fn.Body {
		sb.WriteString("    ")
		sb.WriteString(formatStmtInline(builder, stmtID))
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")
}

func formatStmtInline(builder *ast.Builder, stmtID ast.StmtID) string {
	stmt := builder.Stmts.Get(stmtID)
	if stmt == nil {
		return "<nil>;"
	}
	switch stmt.Kind {
	case ast.StmtLet:
		let, _ := builder.Stmts.Let(stmtID)
		var sb strings.Builder
		sb.WriteString("let ")
		if let.IsMut {
			sb.WriteString("mut ")
		}
		sb.WriteString(builder.Lookup(let.Name))
		if let.Type != 0 {
			sb.WriteString(": " + builder.Lookup(let.Type))
		}
		sb.WriteString(" = " + formatExprInline(builder, let.Init) + ";")
		return sb.String()
	case ast.StmtReturn:
		ret, _ := builder.Stmts.Return(stmtID)
		if !ret.Value.IsValid() {
			return "return;"
		}
		return "return " + formatExprInline(builder, ret.Value) + ";"
	case ast.StmtExpr:
		es, _ := builder.Stmts.Expr(stmtID)
		return formatExprInline(builder, es.Expr) + ";"
	}
	return fmt.Sprintf("<stmt kind %d>;", stmt.Kind)
}
