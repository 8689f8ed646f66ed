package lexer

import (
	"math"

	"lunar/internal/diag"
	"lunar/internal/token"
)

// scanNumber читает десятичный литерал [0-9]+.
// При переполнении int64 значение насыщается до MaxInt64 и выдаётся
// диагностика; токен остаётся IntLit, чтобы парсер продолжил работу.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	var value int64
	overflow := false
	for isDec(lx.cursor.Peek()) {
		d := int64(lx.cursor.Bump() - '0')
		if overflow {
			continue
		}
		if value > (math.MaxInt64-d)/10 {
			overflow = true
			value = math.MaxInt64
			continue
		}
		value = value*10 + d
	}

	sp := lx.cursor.SpanAt(start)
	text := lx.cursor.Text(start)
	if overflow {
		lx.errLex(diag.LexIntOverflow, sp, "integer literal "+text+" overflows int64")
	}
	return token.Token{Kind: token.IntLit, Span: sp, Text: text, Value: value}
}
