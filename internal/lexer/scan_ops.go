package lexer

import (
	"fmt"
	"unicode/utf8"

	"lunar/internal/diag"
	"lunar/internal/token"
)

// Жадность: сначала 2-символьные (-> == != <= >=), затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		return token.Token{
			Kind: k,
			Span: lx.cursor.SpanAt(start),
			Text: lx.cursor.Text(start),
		}
	}

	switch {
	case lx.try2('-', '>'):
		return emit(token.Arrow)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('!', '='):
		return emit(token.BangEq)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	}

	if k, ok := singleCharKinds[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return emit(k)
	}

	return lx.unknownChar(start)
}

var singleCharKinds = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	',': token.Comma,
	';': token.Semicolon,
	':': token.Colon,
	'.': token.Dot,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'=': token.Assign,
	'!': token.Bang,
	'<': token.Lt,
	'>': token.Gt,
}

// unknownChar съедает один символ (целую UTF-8 руну, если она валидна),
// выдаёт диагностику и возвращает Invalid: следующий Next продолжит после него.
func (lx *Lexer) unknownChar(start Mark) token.Token {
	var msg string
	r, size := lx.peekRune()
	switch {
	case r < utf8.RuneSelf:
		b := lx.cursor.Bump()
		msg = fmt.Sprintf("unexpected character '%c' (0x%02x)", b, b)
	case r == utf8.RuneError && size <= 1:
		b := lx.cursor.Bump()
		if b&0xC0 == 0x80 {
			// одиночный байт продолжения: Bump колонку не сдвинул
			lx.cursor.Col++
		}
		msg = fmt.Sprintf("unexpected byte 0x%02x", b)
	default:
		lx.bumpRune()
		msg = fmt.Sprintf("unexpected character '%c' (U+%04X)", r, r)
	}

	sp := lx.cursor.SpanAt(start)
	lx.errLex(diag.LexUnknownChar, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.Text(start)}
}
