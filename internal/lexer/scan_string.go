package lexer

import (
	"lunar/internal/diag"
	"lunar/internal/token"
)

// scanString читает "..." без декодирования escape-последовательностей:
// '\' лишь защищает следующий байт от интерпретации как закрывающей кавычки.
// Text: содержимое между кавычками.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	body := lx.cursor.Mark()

	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			text := lx.cursor.Text(body)
			lx.cursor.Bump()
			return token.Token{Kind: token.StringLit, Span: lx.cursor.SpanAt(start), Text: text}
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				continue
			}
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanAt(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.StringLit, Span: sp, Text: lx.cursor.Text(body)}
}
