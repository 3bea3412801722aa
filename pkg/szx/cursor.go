package szx

import (
	"encoding/binary"
	"fmt"
)

// cursor reads little-endian fields from a block payload. Reads past the end
// return zero values and latch an error that decoders check once.
type cursor struct {
	buf []byte
	off int
	err error
}

func newCursor(b []byte) *cursor {
	return &cursor{buf: b}
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.off
}

func (c *cursor) take(n int) []byte {
	if c.err != nil {
		return nil
	}
	if n < 0 || n > c.remaining() {
		c.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrInvalidBlock, n, c.off, c.remaining())
		return nil
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b
}

func (c *cursor) u8() byte {
	b := c.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (c *cursor) u16() uint16 {
	b := c.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (c *cursor) u32() uint32 {
	b := c.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// bytes returns the next n bytes without copying.
func (c *cursor) bytes(n int) []byte {
	return c.take(n)
}

// rest returns everything not yet consumed.
func (c *cursor) rest() []byte {
	return c.take(c.remaining())
}

func (c *cursor) skip(n int) {
	c.take(n)
}

// buffer stages one block payload so its length can be written ahead of it.
type buffer struct {
	b []byte
}

func (w *buffer) u8(v byte) { w.b = append(w.b, v) }

func (w *buffer) u16(v uint16) { w.b = binary.LittleEndian.AppendUint16(w.b, v) }

func (w *buffer) u32(v uint32) { w.b = binary.LittleEndian.AppendUint32(w.b, v) }

func (w *buffer) write(p []byte) { w.b = append(w.b, p...) }

func (w *buffer) zeros(n int) {
	for range n {
		w.b = append(w.b, 0)
	}
}

func (w *buffer) len() int { return len(w.b) }

func (w *buffer) reset() { w.b = w.b[:0] }
