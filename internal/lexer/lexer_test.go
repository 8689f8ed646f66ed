package lexer_test

import (
	"math"
	"strings"
	"testing"

	"lunar/internal/diag"
	"lunar/internal/lexer"
	"lunar/internal/source"
	"lunar/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.lr", []byte(input)))
	bag := diag.NewBag(100)
	return lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	lx, bag := makeTestLexer(input)
	toks := lx.All()
	got := kinds(toks)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %v, want %v (all: %v)", input, i, got[i], want[i], got)
		}
	}
	if bag.Len() != 0 {
		t.Fatalf("%q: unexpected diagnostics: %v", input, bag.Items())
	}
	return toks
}

func TestKeywordsExactMatch(t *testing.T) {
	toks := expectKinds(t, "funct functy ret return retx _funct let mut if else while true false",
		token.KwFunct, token.Ident, token.KwRet, token.KwReturn, token.Ident, token.Ident,
		token.KwLet, token.KwMut, token.KwIf, token.KwElse, token.KwWhile, token.KwTrue, token.KwFalse)
	if toks[1].Text != "functy" {
		t.Errorf("ident text = %q", toks[1].Text)
	}
}

func TestOperatorsAndPunct(t *testing.T) {
	expectKinds(t, "-> == != <= >= ( ) { } [ ] , ; : . + - * / = ! < >",
		token.Arrow, token.EqEq, token.BangEq, token.LtEq, token.GtEq,
		token.LParen, token.RParen, token.LBrace, token.RBrace, token.LBracket, token.RBracket,
		token.Comma, token.Semicolon, token.Colon, token.Dot,
		token.Plus, token.Minus, token.Star, token.Slash, token.Assign, token.Bang, token.Lt, token.Gt)

	// жадность: "-->" это '-' и '->', "===" это '==' и '='
	expectKinds(t, "-->", token.Minus, token.Arrow)
	expectKinds(t, "===", token.EqEq, token.Assign)
}

func TestIntegerLiterals(t *testing.T) {
	toks := expectKinds(t, "0 42 9223372036854775807 12ab",
		token.IntLit, token.IntLit, token.IntLit, token.IntLit, token.Ident)
	want := []int64{0, 42, math.MaxInt64, 12}
	for i, v := range want {
		if toks[i].Value != v {
			t.Errorf("token %d value = %d, want %d", i, toks[i].Value, v)
		}
	}
}

func TestIntegerOverflowSaturates(t *testing.T) {
	lx, bag := makeTestLexer("99999999999999999999 1")
	tok := lx.Next()
	if tok.Kind != token.IntLit || tok.Value != math.MaxInt64 {
		t.Fatalf("got %v %d", tok.Kind, tok.Value)
	}
	if next := lx.Next(); next.Kind != token.IntLit || next.Value != 1 {
		t.Fatalf("lexing did not continue: %v", next)
	}
	if !lx.HadError() || bag.Len() != 1 || bag.Items()[0].Code != diag.LexIntOverflow {
		t.Fatalf("expected one overflow diagnostic, got %v", bag.Items())
	}
}

func TestStringLiterals(t *testing.T) {
	toks := expectKinds(t, `"hi" "a\"b" "" "x\n"`,
		token.StringLit, token.StringLit, token.StringLit, token.StringLit)
	want := []string{"hi", `a\"b`, "", `x\n`}
	for i, s := range want {
		if toks[i].Text != s {
			t.Errorf("string %d text = %q, want %q", i, toks[i].Text, s)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	lx, bag := makeTestLexer("let s = \"abc")
	toks := lx.All()
	last := toks[len(toks)-2]
	if last.Kind != token.StringLit || last.Text != "abc" {
		t.Fatalf("got %v %q", last.Kind, last.Text)
	}
	if !lx.HadError() {
		t.Fatal("error flag not set")
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.LexUnterminatedString || items[0].Message != "unterminated string literal" {
		t.Fatalf("diagnostics: %v", items)
	}
	if items[0].Primary.Col != 9 {
		t.Errorf("diagnostic column = %d, want 9", items[0].Primary.Col)
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	expectKinds(t, "a // line comment\nb /* block\n comment */ c",
		token.Ident, token.Ident, token.Ident)
	expectKinds(t, "a / b", token.Ident, token.Slash, token.Ident)
	expectKinds(t, "a /", token.Ident, token.Slash)
}

// /* /* */ */ закрывается на первом "*/", остаток - обычные токены.
func TestBlockCommentsDoNotNest(t *testing.T) {
	expectKinds(t, "/* /* */ */", token.Star, token.Slash)
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, bag := makeTestLexer("x /* never closed")
	got := kinds(lx.All())
	if len(got) != 2 || got[0] != token.Ident || got[1] != token.EOF {
		t.Fatalf("got %v", got)
	}
	if !lx.HadError() || bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
}

func TestUnknownCharacter(t *testing.T) {
	lx, bag := makeTestLexer("a @ b")
	got := kinds(lx.All())
	want := []token.Kind{token.Ident, token.Invalid, token.Ident, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.LexUnknownChar || d.Message != "unexpected character '@' (0x40)" {
		t.Fatalf("diagnostic: %+v", d)
	}
	if d.Primary.Line != 1 || d.Primary.Col != 3 {
		t.Fatalf("diagnostic at %v", d.Primary)
	}
}

func TestUnknownUnicodeCharacterIsOneToken(t *testing.T) {
	lx, bag := makeTestLexer("a ∑ b")
	toks := lx.All()
	if len(toks) != 4 || toks[1].Kind != token.Invalid || toks[1].Text != "∑" {
		t.Fatalf("tokens: %v", toks)
	}
	if toks[2].Span.Col != 5 {
		t.Errorf("column after multi-byte rune = %d, want 5", toks[2].Span.Col)
	}
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
}

// Колонки считаются в рунах и внутри строк, и внутри комментариев.
func TestColumnsCountRunesAfterNonASCII(t *testing.T) {
	tests := []struct {
		input     string
		text      string
		line, col uint32
		off       uint32
	}{
		{`let s = "héllo" x;`, "x", 1, 17, 17},
		{"/* ü */ 1 = 2;", "1", 1, 9, 9},
		{"// ∑∑\nx", "x", 2, 1, 10},
		{"é 1", "1", 1, 3, 3},
		{"\x80 1", "1", 1, 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, _ := makeTestLexer(tt.input)
			for _, tok := range lx.All() {
				if tok.Text != tt.text {
					continue
				}
				sp := tok.Span
				if sp.Line != tt.line || sp.Col != tt.col || sp.Off != tt.off {
					t.Fatalf("%q at %d:%d off %d, want %d:%d off %d", tok.Text, sp.Line, sp.Col, sp.Off, tt.line, tt.col, tt.off)
				}
				return
			}
			t.Fatalf("no %q token", tt.text)
		})
	}
}

func TestEOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("x")
	lx.Next()
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v", tok.Kind)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("second Peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("Next = %q", n.Text)
	}
}

func TestSpansAreMonotonic(t *testing.T) {
	src := "funct add(a: int, b: int) ret int {\n\treturn a + b; // sum\n}\n/* tail */ funct main() ret int { let x = add(1, 2); }"
	lx, _ := makeTestLexer(src)
	toks := lx.All()
	for i := 1; i < len(toks); i++ {
		prev, cur := toks[i-1].Span, toks[i].Span
		if cur.Before(prev) || cur.Off < prev.Off {
			t.Fatalf("span went backwards at token %d: %v then %v", i, prev, cur)
		}
	}
	if sp := toks[0].Span; sp.Line != 1 || sp.Col != 1 {
		t.Errorf("first token at %v", sp)
	}
	ret := toks[14] // "return" on line 2 after a tab
	if ret.Kind != token.KwReturn || ret.Span.Line != 2 || ret.Span.Col != 2 {
		t.Errorf("return token %v at %v", ret.Kind, ret.Span)
	}
}

func TestDeterministic(t *testing.T) {
	src := strings.Repeat("funct f(x) ret int { let mut y: int = -x * (3 + 4) == 2; return \"s\"; }\n", 20)
	a, _ := makeTestLexer(src)
	b, _ := makeTestLexer(src)
	ta, tb := a.All(), b.All()
	if len(ta) != len(tb) {
		t.Fatalf("lengths differ: %d vs %d", len(ta), len(tb))
	}
	for i := range ta {
		if ta[i] != tb[i] {
			t.Fatalf("token %d differs: %+v vs %+v", i, ta[i], tb[i])
		}
	}
}
