package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"lunar/internal/source"
)

// Cursor представляет собой позицию в файле: байтовое смещение и
// 1-based строка/колонка, которые обновляются при каждом Bump.
type Cursor struct {
	File *source.File
	Off  uint32
	Line uint32
	Col  uint32
	// Limit is the exclusive upper bound for Off; defaults to len(File.Content).
	Limit uint32
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{
		File:  f,
		Line:  1,
		Col:   1,
		Limit: limit,
	}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Peek2 читает текущий и следующий байт, если есть, иначе возвращает 0, 0, false
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт.
// '\n' переводит на следующую строку, колонка сбрасывается в 1.
// Колонка считается в рунах: байты продолжения UTF-8 её не двигают.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	if b == '\n' {
		c.Line++
		c.Col = 1
	} else if b&0xC0 != 0x80 {
		c.Col++
	}
	return b
}

// BumpN advances over n bytes that are known not to contain '\n'.
func (c *Cursor) BumpN(n uint32) {
	if c.Off+n > c.Limit {
		n = c.Limit - c.Off
	}
	c.Off += n
	c.Col += n
}

// Mark это метка, что бы быстро получать Span начала фрагмента
type Mark struct {
	off  uint32
	line uint32
	col  uint32
}

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark{off: c.Off, line: c.Line, col: c.Col}
}

// SpanAt возвращает точечный Span для метки.
func (c *Cursor) SpanAt(m Mark) source.Span {
	return source.Span{
		Path: c.File.Path,
		Line: m.line,
		Col:  m.col,
		Off:  m.off,
	}
}

// Text возвращает исходный фрагмент от метки до текущей позиции.
func (c *Cursor) Text(m Mark) string {
	return string(c.File.Content[m.off:c.Off])
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off, c.Line, c.Col = m.off, m.line, m.col
}
