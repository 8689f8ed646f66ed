package lexer

import (
	"lunar/internal/source"
	"lunar/internal/token"
)

// Lexer turns one source file into a token stream on demand.
// Single-threaded: one Lexer per file per parse.
type Lexer struct {
	file     *source.File
	cursor   Cursor
	opts     Options
	look     *token.Token // 1 элементный буфер для токена
	hadError bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий значимый токен.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// HadError reports whether any lexical diagnostic was produced so far.
// The flag is sticky.
func (lx *Lexer) HadError() bool {
	return lx.hadError
}

// File returns the file being tokenized.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// EmptySpan is the current cursor position as a span.
func (lx *Lexer) EmptySpan() source.Span {
	return lx.cursor.SpanAt(lx.cursor.Mark())
}

// All drains the lexer and returns every token up to and including EOF.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}
