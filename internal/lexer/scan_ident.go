package lexer

import (
	"lunar/internal/token"
)

// scanIdentOrKeyword сканирует [A-Za-z_][A-Za-z0-9_]* и проверяет через LookupKeyword.
// Token.Text: ровно исходный фрагмент.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	text := lx.cursor.Text(start)
	kind, _ := token.LookupKeyword(text)
	return token.Token{Kind: kind, Span: lx.cursor.SpanAt(start), Text: text}
}
