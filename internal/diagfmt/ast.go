package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"lunar/internal/ast"
)

// ASTNodeOutput: общая модель дерева для tree/json/msgpack.
type ASTNodeOutput struct {
	Type     string          `json:"type" msgpack:"type"`
	Kind     string          `json:"kind,omitempty" msgpack:"kind,omitempty"`
	Line     uint32          `json:"line" msgpack:"line"`
	Col      uint32          `json:"col" msgpack:"col"`
	Fields   map[string]any  `json:"fields,omitempty" msgpack:"fields,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty" msgpack:"children,omitempty"`
}

// BuildProgramOutput converts the program into the serialisable node model.
func BuildProgramOutput(builder *ast.Builder, progID ast.ProgramID) (ASTNodeOutput, error) {
	prog := builder.Programs.Get(progID)
	if prog == nil {
		return ASTNodeOutput{}, fmt.Errorf("program %d not found", progID)
	}
	out := ASTNodeOutput{
		Type: "Program",
		Line: prog.Span.Line,
		Col:  prog.Span.Col,
	}
	if prog.Span.Path != "" {
		out.Fields = map[string]any{"path": prog.Span.Path}
	}
	for _, fnID := range prog.Fns {
		out.Children = append(out.Children, fnOutput(builder, fnID))
	}
	return out, nil
}

func fnOutput(builder *ast.Builder, fnID ast.FnID) ASTNodeOutput {
	fn := builder.Fns.Get(fnID)
	if fn == nil {
		return ASTNodeOutput{Type: "Fn", Kind: "<nil>"}
	}
	node := ASTNodeOutput{
		Type: "Fn",
		Line: fn.Span.Line,
		Col:  fn.Span.Col,
		Fields: map[string]any{
			"name": lookupStringOr(builder, fn.Name, "<anon>"),
			"ret":  lookupStringOr(builder, fn.ReturnType, "<none>"),
		},
	}
	for _, param := range builder.Fns.ParamsOf(fnID) {
		p := ASTNodeOutput{
			Type:   "Param",
			Line:   param.Span.Line,
			Col:    param.Span.Col,
			Fields: map[string]any{"name": builder.Lookup(param.Name)},
		}
		if param.Type != 0 {
			p.Fields["type"] = builder.Lookup(param.Type)
		}
		node.Children = append(node.Children, p)
	}
	for _, stmtID := range fn.Body {
		node.Children = append(node.Children, stmtOutput(builder, stmtID))
	}
	return node
}

func stmtOutput(builder *ast.Builder, stmtID ast.StmtID) ASTNodeOutput {
	stmt := builder.Stmts.Get(stmtID)
	if stmt == nil {
		return ASTNodeOutput{Type: "Stmt", Kind: "<nil>"}
	}
	node := ASTNodeOutput{
		Type: "Stmt",
		Kind: stmt.Kind.String(),
		Line: stmt.Span.Line,
		Col:  stmt.Span.Col,
	}
	switch stmt.Kind {
	case ast.StmtLet:
		if let, ok := builder.Stmts.Let(stmtID); ok {
			node.Fields = map[string]any{
				"name": builder.Lookup(let.Name),
				"mut":  let.IsMut,
			}
			if let.Type != 0 {
				node.Fields["type"] = builder.Lookup(let.Type)
			}
			node.Children = append(node.Children, exprOutput(builder, let.Init, 0))
		}
	case ast.StmtReturn:
		if ret, ok := builder.Stmts.Return(stmtID); ok && ret.Value.IsValid() {
			node.Children = append(node.Children, exprOutput(builder, ret.Value, 0))
		}
	case ast.StmtExpr:
		if es, ok := builder.Stmts.Expr(stmtID); ok {
			node.Children = append(node.Children, exprOutput(builder, es.Expr, 0))
		}
	}
	return node
}

func exprOutput(builder *ast.Builder, exprID ast.ExprID, depth int) ASTNodeOutput {
	expr := builder.Exprs.Get(exprID)
	if expr == nil {
		return ASTNodeOutput{Type: "Expr", Kind: "<invalid>"}
	}
	node := ASTNodeOutput{
		Type: "Expr",
		Kind: expr.Kind.String(),
		Line: expr.Span.Line,
		Col:  expr.Span.Col,
	}
	if depth >= exprInlineMaxDepth {
		node.Fields = map[string]any{"truncated": true}
		return node
	}

	switch expr.Kind {
	case ast.ExprInt:
		v, _ := builder.Exprs.IntLit(exprID)
		node.Fields = map[string]any{"value": v}
	case ast.ExprString:
		s, _ := builder.Exprs.StringLit(exprID)
		node.Fields = map[string]any{"value": builder.Lookup(s)}
	case ast.ExprBool:
		v, _ := builder.Exprs.BoolLit(exprID)
		node.Fields = map[string]any{"value": v}
	case ast.ExprName:
		n, _ := builder.Exprs.Name(exprID)
		node.Fields = map[string]any{"name": builder.Lookup(n.Name)}
	case ast.ExprUnary:
		u, _ := builder.Exprs.Unary(exprID)
		node.Fields = map[string]any{"op": u.Op.String()}
		node.Children = []ASTNodeOutput{exprOutput(builder, u.Operand, depth+1)}
	case ast.ExprBinary:
		b, _ := builder.Exprs.Binary(exprID)
		node.Fields = map[string]any{"op": b.Op.String()}
		node.Children = []ASTNodeOutput{
			exprOutput(builder, b.Left, depth+1),
			exprOutput(builder, b.Right, depth+1),
		}
	case ast.ExprAssign:
		a, _ := builder.Exprs.Assign(exprID)
		node.Fields = map[string]any{"target": assignTarget(builder, a)}
		node.Children = []ASTNodeOutput{exprOutput(builder, a.Value, depth+1)}
	case ast.ExprCall:
		c, _ := builder.Exprs.Call(exprID)
		node.Children = append(node.Children, exprOutput(builder, c.Callee, depth+1))
		for _, arg := range c.Args {
			node.Children = append(node.Children, exprOutput(builder, arg, depth+1))
		}
	}
	return node
}

// FormatASTJSON пишет программу как JSON-дерево.
func FormatASTJSON(w io.Writer, builder *ast.Builder, progID ast.ProgramID) error {
	output, err := BuildProgramOutput(builder, progID)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// FormatASTMsgpack пишет то же дерево в msgpack; ключи map сортируются,
// чтобы вывод был воспроизводимым.
func FormatASTMsgpack(w io.Writer, builder *ast.Builder, progID ast.ProgramID) error {
	output, err := BuildProgramOutput(builder, progID)
	if err != nil {
		return err
	}
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	return enc.Encode(output)
}
