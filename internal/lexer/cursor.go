package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"sdl/internal/source"
)

// Cursor walks the bytes of one file and tracks the current line.
type Cursor struct {
	File *source.File
	Off  uint32
	// Line is the 1-based line of Off.
	Line uint32
	// Limit is the exclusive upper bound for Off; defaults to len(File.Content).
	Limit uint32
}

// NewCursor creates a cursor at the first byte of f.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Line: 1, Limit: limit}
}

func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek возвращает текущий байт или 0 в конце файла.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Peek2 returns the current and the next byte; ok is false when fewer than two remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

// Bump consumes one byte and returns it; 0 at end of file.
// Crossing '\n' moves Line forward.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	if b == '\n' {
		c.Line++
	}
	return b
}

// Advance moves the cursor n bytes forward, counting newlines.
func (c *Cursor) Advance(n int) {
	for i := 0; i < n && !c.EOF(); i++ {
		c.Bump()
	}
}

// Mark remembers where a token starts.
type Mark struct {
	off  uint32
	line uint32
}

func (c *Cursor) Mark() Mark {
	return Mark{off: c.Off, line: c.Line}
}

// SpanFrom returns the span from m to the current offset.
// Line is the line of m, not of the cursor.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: m.off, End: c.Off, Line: m.line}
}
