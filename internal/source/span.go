package source

import (
	"fmt"
)

// Span is a point location: the first byte of a token or node.
// Line and Col are 1-based, Off is the byte offset of the same point.
type Span struct {
	Path string
	Line uint32
	Col  uint32
	Off  uint32
}

// IsZero reports whether the span was never set.
func (s Span) IsZero() bool {
	return s.Line == 0
}

// Before reports whether s lies strictly before other in the same file.
func (s Span) Before(other Span) bool {
	if s.Line != other.Line {
		return s.Line < other.Line
	}
	return s.Col < other.Col
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d", s.Path, s.Line, s.Col)
}
