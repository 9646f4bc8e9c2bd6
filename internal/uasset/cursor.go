package uasset

import (
	"encoding/binary"
	"math"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Cursor is a forward-only read position over an in-memory buffer.
// The buffer is never modified. Pos only moves forward, except through Seek.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a cursor positioned at the start of buf.
func NewCursor(buf []byte) Cursor {
	return Cursor{buf: buf}
}

// LoadCursor reads the whole file into memory and returns a cursor at offset 0.
func LoadCursor(path string) (Cursor, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Cursor{}, err
	}
	return NewCursor(buf), nil
}

// Pos returns the current offset.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the buffer length.
func (c *Cursor) Len() int { return len(c.buf) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Seek moves to an absolute offset. Offsets outside [0, Len] are truncation errors.
func (c *Cursor) Seek(abs int) error {
	if abs < 0 || abs > len(c.buf) {
		return newError(KindTruncatedData, c.pos, "seek to %d outside buffer of %d bytes", abs, len(c.buf))
	}
	c.pos = abs
	return nil
}

// take returns the next n bytes and advances past them. It never returns a short slice.
func (c *Cursor) take(n int) ([]byte, error) {
	if n < 0 || n > len(c.buf)-c.pos {
		return nil, newError(KindTruncatedData, c.pos, "need %d bytes, %d left", n, len(c.buf)-c.pos)
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Bytes returns the next n bytes as a copy.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	b, err := c.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// Skip advances past n bytes without decoding them.
func (c *Cursor) Skip(n int) error {
	_, err := c.take(n)
	return err
}

func (c *Cursor) U8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Bool reads one byte; any nonzero value is true.
func (c *Cursor) Bool() (bool, error) {
	v, err := c.U8()
	return v != 0, err
}

func (c *Cursor) I16() (int16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

func (c *Cursor) U32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *Cursor) I32() (int32, error) {
	v, err := c.U32()
	return int32(v), err
}

func (c *Cursor) I64() (int64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Str reads a length-prefixed string.
//
// The int32 prefix counts characters including a trailing NUL. Zero is the empty
// string. A positive count is followed by that many single-byte characters; a
// negative count by -n UTF-16LE code units. One trailing NUL is dropped.
func (c *Cursor) Str() (string, error) {
	start := c.pos
	n, err := c.I32()
	if err != nil {
		return "", err
	}
	switch {
	case n == 0:
		return "", nil
	case n > 0:
		b, err := c.take(int(n))
		if err != nil {
			c.pos = start
			return "", err
		}
		return strings.TrimSuffix(string(b), "\x00"), nil
	default:
		if n == math.MinInt32 {
			c.pos = start
			return "", newError(KindTruncatedData, start, "wide string length %d out of range", n)
		}
		b, err := c.take(int(-n) * 2)
		if err != nil {
			c.pos = start
			return "", err
		}
		s, err := utf16le.NewDecoder().Bytes(b)
		if err != nil {
			return "", newError(KindInvalidFormat, start, "decode wide string: %v", err)
		}
		return strings.TrimSuffix(string(s), "\x00"), nil
	}
}
