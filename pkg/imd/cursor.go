// file: pkg/imd/cursor.go

package imd

import "github.com/pkg/errors"

// cursor walks a fully buffered image. Every read is bounds checked so a short
// file surfaces as ErrTruncated instead of reading past the end of data.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte, pos int) *cursor {
	return &cursor{data: data, pos: pos}
}

// Offset is the absolute position in the image buffer.
func (c *cursor) Offset() int {
	return c.pos
}

func (c *cursor) Remaining() int {
	return len(c.data) - c.pos
}

func (c *cursor) EOF() bool {
	return c.pos >= len(c.data)
}

// Byte consumes a single byte.
func (c *cursor) Byte() (byte, error) {
	if c.Remaining() < 1 {
		return 0, errors.Wrapf(ErrTruncated, "need 1 byte at offset %d", c.pos)
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// Bytes consumes n bytes. The returned slice aliases the image buffer.
func (c *cursor) Bytes(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, errors.Wrapf(ErrTruncated, "need %d bytes at offset %d, %d remain", n, c.pos, c.Remaining())
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}
