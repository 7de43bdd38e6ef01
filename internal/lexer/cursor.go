package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"ember/internal/source"
)

// Cursor walks the bytes of one file. Reads past the end yield 0.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32 // len(File.Content)
}

func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Limit: limit}
}

func (c *Cursor) EOF() bool { return c.Off >= c.Limit }

func (c *Cursor) at(off uint32) byte {
	if off >= c.Limit {
		return 0
	}
	return c.File.Content[off]
}

func (c *Cursor) Peek() byte { return c.at(c.Off) }

// Peek2 returns the next two bytes; ok is false when fewer remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	return c.at(c.Off), c.at(c.Off + 1), c.Off+1 < c.Limit
}

// Bump consumes one byte and returns it.
func (c *Cursor) Bump() byte {
	b := c.at(c.Off)
	if !c.EOF() {
		c.Off++
	}
	return b
}

// Mark is a saved offset; SpanFrom turns it into the span read since.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}
