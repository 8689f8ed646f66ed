package parser_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lunar/internal/ast"
	"lunar/internal/diag"
	"lunar/internal/lexer"
	"lunar/internal/parser"
	"lunar/internal/source"
)

func TestPrecedenceShape(t *testing.T) {
	p := parseSource(t, "funct f() ret int { let x = 1 + 2 * 3; return x; }")
	if p.bag.Len() != 0 || p.res.HadErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	fns := p.fns()
	if len(fns) != 1 {
		t.Fatalf("expected 1 fn, got %d", len(fns))
	}
	fn := p.builder.Fns.Get(fns[0])
	if got := p.builder.Lookup(fn.Name); got != "f" {
		t.Fatalf("fn name = %q", got)
	}
	if fn.ParamCount != 0 || len(fn.Body) != 2 {
		t.Fatalf("params=%d body=%d", fn.ParamCount, len(fn.Body))
	}
	if fn.Span.Line != 1 || fn.Span.Col != 1 {
		t.Errorf("fn span = %s", fn.Span)
	}

	let, ok := p.builder.Stmts.Let(fn.Body[0])
	if !ok {
		t.Fatalf("first stmt is %s, want let", p.builder.Stmts.Get(fn.Body[0]).Kind)
	}
	if got := sexpr(p.builder, let.Init); got != "Add(Int(1), Mul(Int(2), Int(3)))" {
		t.Errorf("init = %s", got)
	}
	if sp := p.builder.Stmts.Get(fn.Body[0]).Span; sp.Col != 21 {
		t.Errorf("let span = %s, want col 21", sp)
	}
	if _, ok := p.builder.Stmts.Return(fn.Body[1]); !ok {
		t.Errorf("second stmt is not return")
	}
}

func TestMultiParamFunction(t *testing.T) {
	p := parseSource(t, "funct add(a: int, b: int) ret int { return a + b; }")
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	fns := p.fns()
	if len(fns) != 1 {
		t.Fatalf("expected 1 fn, got %d", len(fns))
	}
	fn := p.builder.Fns.Get(fns[0])
	if p.builder.Lookup(fn.Name) != "add" || p.builder.Lookup(fn.ReturnType) != "int" {
		t.Fatalf("fn = %s ret %s", p.builder.Lookup(fn.Name), p.builder.Lookup(fn.ReturnType))
	}
	params := p.builder.Fns.ParamsOf(fns[0])
	if len(params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(params))
	}
	for i, want := range []string{"a", "b"} {
		if got := p.builder.Lookup(params[i].Name); got != want {
			t.Errorf("param %d name = %q, want %q", i, got, want)
		}
		if got := p.builder.Lookup(params[i].Type); got != "int" {
			t.Errorf("param %d type = %q", i, got)
		}
	}
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 stmt, got %d", len(fn.Body))
	}
	ret, ok := p.builder.Stmts.Return(fn.Body[0])
	if !ok || sexpr(p.builder, ret.Value) != "Add(Name(a), Name(b))" {
		t.Errorf("return = %s", sexpr(p.builder, ret.Value))
	}
}

func TestUntypedParam(t *testing.T) {
	p := parseSource(t, "funct id(x) ret int { return x; }")
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	params := p.builder.Fns.ParamsOf(p.fns()[0])
	if len(params) != 1 || params[0].Type != source.NoStringID {
		t.Fatalf("params = %+v", params)
	}
}

func TestMissingFunctionName(t *testing.T) {
	p := parseSource(t, "funct () ret int {}")
	if p.bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %s", diagnosticsSummary(p.bag))
	}
	d := p.bag.Items()[0]
	if d.Code != diag.SynExpectIdentifier || d.Message != "expected function name" {
		t.Errorf("diagnostic = %s", diagnosticsSummary(p.bag))
	}
	if !p.res.HadErrors() || p.res.Errors != 1 {
		t.Errorf("result = %+v", p.res)
	}
	if len(p.fns()) != 0 {
		t.Errorf("nameless fn must not be added, got %d fns", len(p.fns()))
	}
}

func TestNonNestingCommentInBody(t *testing.T) {
	p := parseSource(t, "funct main() ret int { /* a /* b */ c */ }")
	if p.bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %s", diagnosticsSummary(p.bag))
	}
	if len(p.fns()) != 1 {
		t.Fatalf("expected main to survive recovery, got %d fns", len(p.fns()))
	}
}

func TestExpressionShapes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"a = b = c", "Assign(a, Assign(b, Name(c)))"},
		{"1 - 2 - 3", "Sub(Sub(Int(1), Int(2)), Int(3))"},
		{"8 / 4 * 2", "Mul(Div(Int(8), Int(4)), Int(2))"},
		{"(1 + 2) * 3", "Mul(Add(Int(1), Int(2)), Int(3))"},
		{"a < b == c >= d", "Eq(Less(Name(a), Name(b)), GreaterEq(Name(c), Name(d)))"},
		{"a <= b != c > d", "NotEq(LessEq(Name(a), Name(b)), Greater(Name(c), Name(d)))"},
		{"-!x", "Neg(Not(Name(x)))"},
		{"-a * b", "Mul(Neg(Name(a)), Name(b))"},
		{"-f(1)", "Neg(Call(Name(f), [Int(1)]))"},
		{"f()", "Call(Name(f), [])"},
		{"f(1, g(2))(3)", "Call(Call(Name(f), [Int(1), Call(Name(g), [Int(2)])]), [Int(3)])"},
		{"true != false", "NotEq(Bool(true), Bool(false))"},
		{`"hi\n"`, `Str("hi\\n")`},
		{"x = 1 + 2", "Assign(x, Add(Int(1), Int(2)))"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p := parseSource(t, "funct f() ret int { "+tt.src+"; }")
			if p.bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
			}
			fn := p.builder.Fns.Get(p.fns()[0])
			if len(fn.Body) != 1 {
				t.Fatalf("expected 1 stmt, got %d", len(fn.Body))
			}
			es, ok := p.builder.Stmts.Expr(fn.Body[0])
			if !ok {
				t.Fatalf("stmt is not an expression statement")
			}
			if got := sexpr(p.builder, es.Expr); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLetForms(t *testing.T) {
	p := parseSource(t, "funct f() ret int { let mut total: int = 0; let s = \"x\"; return; }")
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	fn := p.builder.Fns.Get(p.fns()[0])
	if len(fn.Body) != 3 {
		t.Fatalf("expected 3 stmts, got %d", len(fn.Body))
	}
	first, _ := p.builder.Stmts.Let(fn.Body[0])
	if !first.IsMut || p.builder.Lookup(first.Name) != "total" || p.builder.Lookup(first.Type) != "int" {
		t.Errorf("first let = %+v", first)
	}
	second, _ := p.builder.Stmts.Let(fn.Body[1])
	if second.IsMut || second.Type != source.NoStringID {
		t.Errorf("second let = %+v", second)
	}
	ret, _ := p.builder.Stmts.Return(fn.Body[2])
	if ret.Value.IsValid() {
		t.Errorf("bare return carries a value")
	}
}

func TestInvalidAssignTarget(t *testing.T) {
	p := parseSource(t, "funct f() ret int { 1 + 2 = 3; }")
	if p.bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %s", diagnosticsSummary(p.bag))
	}
	d := p.bag.Items()[0]
	if d.Code != diag.SynInvalidAssignTarget || d.Message != "left side of assignment must be a name" {
		t.Errorf("diagnostic = %s", diagnosticsSummary(p.bag))
	}
	if d.Primary.Col != 21 {
		t.Errorf("diagnostic at %s, want col 21", d.Primary)
	}
	fn := p.builder.Fns.Get(p.fns()[0])
	es, ok := p.builder.Stmts.Expr(fn.Body[0])
	if !ok {
		t.Fatal("assignment statement dropped")
	}
	if got := sexpr(p.builder, es.Expr); got != "Assign(<invalid>, Int(3))" {
		t.Errorf("got %s", got)
	}
}

func TestRecovery(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		diags     []string
		fns       int
		bodyStmts int // statements of the first fn
	}{
		{
			name:      "missing semicolon keeps statement",
			src:       "funct f() ret int { let x = 1 let y = 2; }",
			diags:     []string{"expected ';'"},
			fns:       1,
			bodyStmts: 2,
		},
		{
			name:      "missing variable name",
			src:       "funct f() ret int { let = 1; return 2; }",
			diags:     []string{"expected variable name"},
			fns:       1,
			bodyStmts: 2, // "1;" parses as an expression statement
		},
		{
			name:      "top level garbage",
			src:       "x y z funct f() ret int {}",
			diags:     []string{"expected 'funct'"},
			fns:       1,
			bodyStmts: 0,
		},
		{
			name:      "errors after sync are reported",
			src:       "funct f() ret int { let = 1; let = 2; }",
			diags:     []string{"expected variable name", "expected variable name"},
			fns:       1,
			bodyStmts: 2,
		},
		{
			name:      "unclosed block ends at next funct",
			src:       "funct f() ret int { return 1; funct g() ret int { return 2; }",
			diags:     []string{"expected '}'"},
			fns:       2,
			bodyStmts: 1,
		},
		{
			name:      "missing ret",
			src:       "funct f() int { return 1; }",
			diags:     []string{"expected 'ret'"},
			fns:       1,
			bodyStmts: 1,
		},
		{
			name:      "stray semicolon",
			src:       "funct f() ret int { return ; ; }",
			diags:     []string{"expected expression"},
			fns:       1,
			bodyStmts: 1,
		},
		{
			name:      "bad parameter",
			src:       "funct f(1) ret int { return 1; }",
			diags:     []string{"expected parameter name"},
			fns:       1,
			bodyStmts: 1,
		},
		{
			name:      "unexpected eof",
			src:       "funct f() ret int { return 1",
			diags:     []string{"expected ';'"},
			fns:       1,
			bodyStmts: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseSource(t, tt.src)
			items := p.bag.Items()
			if len(items) != len(tt.diags) {
				t.Fatalf("diagnostics = %s, want %v", diagnosticsSummary(p.bag), tt.diags)
			}
			for i, want := range tt.diags {
				if items[i].Message != want {
					t.Errorf("diagnostic %d = %q, want %q", i, items[i].Message, want)
				}
			}
			fns := p.fns()
			if len(fns) != tt.fns {
				t.Fatalf("fns = %d, want %d", len(fns), tt.fns)
			}
			if tt.fns > 0 {
				if got := len(p.builder.Fns.Get(fns[0]).Body); got != tt.bodyStmts {
					t.Errorf("body stmts = %d, want %d", got, tt.bodyStmts)
				}
			}
		})
	}
}

func TestUnknownCharacterSkipped(t *testing.T) {
	p := parseSource(t, "funct f() ret int { let x = 1 @; }")
	if p.res.Errors != 0 {
		t.Fatalf("parser reported errors: %s", diagnosticsSummary(p.bag))
	}
	if !p.res.LexFailed || !p.res.HadErrors() {
		t.Fatalf("lexer failure not propagated: %+v", p.res)
	}
	if p.bag.Len() != 1 || p.bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("diagnostics = %s", diagnosticsSummary(p.bag))
	}
	if got := len(p.builder.Fns.Get(p.fns()[0]).Body); got != 1 {
		t.Errorf("body stmts = %d", got)
	}
}

func TestNestingTooDeep(t *testing.T) {
	deep := strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300)
	p := parseSource(t, "funct f() ret int { return "+deep+"; let y = 1; }")
	if p.bag.Len() != 1 || p.bag.Items()[0].Code != diag.SynNestingTooDeep {
		t.Fatalf("diagnostics = %s", diagnosticsSummary(p.bag))
	}
	body := p.builder.Fns.Get(p.fns()[0]).Body
	if len(body) != 1 {
		t.Fatalf("expected the let after the deep return to survive, got %d stmts", len(body))
	}
	if _, ok := p.builder.Stmts.Let(body[0]); !ok {
		t.Error("surviving statement is not the let")
	}

	shallow := strings.Repeat("(", 100) + "1" + strings.Repeat(")", 100)
	p = parseSource(t, "funct f() ret int { return "+shallow+"; }")
	if p.bag.Len() != 0 {
		t.Fatalf("100 levels should parse: %s", diagnosticsSummary(p.bag))
	}
}

func TestMaxDepthOption(t *testing.T) {
	p := parseWith(t, "funct f() ret int { return ((1)); }", ast.Hints{}, parser.Options{MaxDepth: 2})
	if p.err != nil {
		t.Fatal(p.err)
	}
	if p.bag.Len() != 1 || p.bag.Items()[0].Code != diag.SynNestingTooDeep {
		t.Fatalf("diagnostics = %s", diagnosticsSummary(p.bag))
	}
}

func TestMaxErrors(t *testing.T) {
	src := "funct f() ret int { let = 1; let = 2; let = 3; }"
	p := parseWith(t, src, ast.Hints{}, parser.Options{MaxErrors: 2})
	if p.err != nil {
		t.Fatal(p.err)
	}
	if p.res.Errors != 3 {
		t.Errorf("errors = %d, want 3", p.res.Errors)
	}
	if p.bag.Len() != 2 {
		t.Errorf("reported = %d, want 2", p.bag.Len())
	}
}

func TestArenaExhausted(t *testing.T) {
	src := "funct f() ret int { let x = 1 + 2 + 3 + 4 + 5; return x; }"
	p := parseWith(t, src, ast.Hints{MaxNodes: 6}, parser.Options{})
	if !errors.Is(p.err, ast.ErrArenaExhausted) {
		t.Fatalf("err = %v, want ErrArenaExhausted", p.err)
	}
}

func TestCancelledContext(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("c.lr", []byte("funct f() ret int {}"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := parser.ParseFile(ctx, lexer.New(fs.Get(id), lexer.Options{}), ast.NewBuilder(ast.Hints{}, nil), parser.Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestIdempotence(t *testing.T) {
	src := `// sample
funct add(a: int, b: int) ret int {
	return a + b;
}

funct main() ret int {
	let mut x: int = add(1, 2) * -3;
	x = x / 2;
	return x == 0;
}
`
	first := dump(parseSource(t, src))
	second := dump(parseSource(t, src))
	if first == "" {
		t.Fatal("empty dump")
	}
	if first != second {
		t.Fatalf("dumps differ:\n%s\n---\n%s", first, second)
	}
}
