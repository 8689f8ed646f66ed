package diagfmt

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"lunar/internal/ast"
)

// FormatASTTree печатает дерево узлов с ветками ├─ / └─:
//
//	Program @1:1
//	└─ Fn name=add ret=int @1:1
//	   ├─ Param name=a type=int @1:11
//	   ...
func FormatASTTree(w io.Writer, builder *ast.Builder, progID ast.ProgramID) error {
	root, err := BuildProgramOutput(builder, progID)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, nodeLabel(&root)); err != nil {
		return err
	}
	return writeTreeChildren(w, root.Children, "")
}

func writeTreeChildren(w io.Writer, children []ASTNodeOutput, prefix string) error {
	for i := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, nodeLabel(&children[i])); err != nil {
			return err
		}
		if err := writeTreeChildren(w, children[i].Children, prefix+next); err != nil {
			return err
		}
	}
	return nil
}

// nodeLabel: "Kind k=v k=v @line:col", ключи по алфавиту.
func nodeLabel(n *ASTNodeOutput) string {
	var sb strings.Builder
	if n.Kind != "" && n.Type != "Program" && n.Type != "Fn" && n.Type != "Param" {
		sb.WriteString(n.Kind)
	} else {
		sb.WriteString(n.Type)
	}
	keys := make([]string, 0, len(n.Fields))
	for k := range n.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := n.Fields[k]
		if s, ok := v.(string); ok && n.Kind == "String" && k == "value" {
			v = fmt.Sprintf("%q", s)
		}
		fmt.Fprintf(&sb, " %s=%v", k, v)
	}
	fmt.Fprintf(&sb, " @%d:%d", n.Line, n.Col)
	return sb.String()
}
