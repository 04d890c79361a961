// SPDX-License-Identifier: Apache-2.0
// This file is part of the entity-bin project.

// Package bytecursor provides a positional reader/writer over a byte
// buffer with the mixed-endianness primitives the entity-scene wire
// format requires: big-endian for every in-payload integer and float,
// little-endian for the two size words in the outer FastLZ frame.
package bytecursor

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ErrTruncated is returned whenever a read would run past the end of
// the buffer.
var ErrTruncated = fmt.Errorf("truncated: read past end of buffer")

// ErrAssertion is returned by Expect when the literal bytes at the
// current position don't match what was expected.
type ErrAssertion struct {
	Want []byte
	Got  []byte
}

func (e *ErrAssertion) Error() string {
	return fmt.Sprintf("assertion failed: want % x, got % x", e.Want, e.Got)
}

// ErrMalformedBool is returned by ReadBool when the byte at the
// current position is neither 0 nor 1.
type ErrMalformedBool struct {
	Value byte
}

func (e *ErrMalformedBool) Error() string {
	return fmt.Sprintf("malformed bool byte: %d", e.Value)
}

// Cursor is a positional reader/writer over a single byte slice. One
// type serves both decode and encode, since the entity-scene format is
// fully symmetric and small enough that a split reader/writer pair
// would only add indirection.
type Cursor struct {
	buf []byte
	pos int
}

// NewReader wraps buf for reading starting at position 0.
func NewReader(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// NewWriter returns a Cursor whose Write* methods append to an
// internally growing buffer, starting empty.
func NewWriter() *Cursor {
	return &Cursor{buf: make([]byte, 0, 256)}
}

// Bytes returns the buffer written so far (writer mode) or the full
// backing buffer (reader mode).
func (c *Cursor) Bytes() []byte {
	return c.buf
}

// Position returns the current offset, used by UnknownTypeError to
// report where decoding failed.
func (c *Cursor) Position() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

func (c *Cursor) need(n int) error {
	if c.Remaining() < n {
		return ErrTruncated
	}
	return nil
}

// ReadBytes reads and returns the next n bytes verbatim.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	out := c.buf[c.pos : c.pos+n]
	c.pos += n
	return out, nil
}

// Expect reads len(lit) bytes and fails with ErrAssertion if they
// don't match lit exactly.
func (c *Cursor) Expect(lit []byte) error {
	got, err := c.ReadBytes(len(lit))
	if err != nil {
		return err
	}
	for i := range lit {
		if got[i] != lit[i] {
			return &ErrAssertion{Want: append([]byte(nil), lit...), Got: append([]byte(nil), got...)}
		}
	}
	return nil
}

// ReadBool reads a single byte and requires it to be 0 or 1.
func (c *Cursor) ReadBool() (bool, error) {
	b, err := c.ReadBytes(1)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, &ErrMalformedBool{Value: b[0]}
	}
}

// ReadU16BE reads a big-endian uint16.
func (c *Cursor) ReadU16BE() (uint16, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadU32BE reads a big-endian uint32.
func (c *Cursor) ReadU32BE() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// ReadU64BE reads a big-endian uint64.
func (c *Cursor) ReadU64BE() (uint64, error) {
	b, err := c.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// ReadI32BE reads a big-endian signed int32.
func (c *Cursor) ReadI32BE() (int32, error) {
	v, err := c.ReadU32BE()
	return int32(v), err
}

// ReadI64BE reads a big-endian signed int64.
func (c *Cursor) ReadI64BE() (int64, error) {
	v, err := c.ReadU64BE()
	return int64(v), err
}

// ReadF32BE reads a big-endian IEEE-754 float32.
func (c *Cursor) ReadF32BE() (float32, error) {
	v, err := c.ReadU32BE()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadF64BE reads a big-endian IEEE-754 float64.
func (c *Cursor) ReadF64BE() (float64, error) {
	v, err := c.ReadU64BE()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadString reads a u32-BE length prefix followed by that many bytes,
// treated as opaque 8-bit code units; no UTF-8 validation is performed,
// matching the source format which has no guaranteed text encoding.
func (c *Cursor) ReadString() (string, error) {
	n, err := c.ReadU32BE()
	if err != nil {
		return "", err
	}
	b, err := c.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadU32LE reads a little-endian uint32. Used only for the outer
// FastLZ frame's two size words — every other multi-byte value in the
// format is big-endian.
func (c *Cursor) ReadU32LE() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// --- write side ---

func (c *Cursor) write(b []byte) {
	c.buf = append(c.buf, b...)
	c.pos += len(b)
}

// WriteBytes appends b verbatim.
func (c *Cursor) WriteBytes(b []byte) {
	c.write(b)
}

// WriteBool writes a single 0/1 byte.
func (c *Cursor) WriteBool(v bool) {
	if v {
		c.write([]byte{1})
	} else {
		c.write([]byte{0})
	}
}

// WriteU16BE writes a big-endian uint16.
func (c *Cursor) WriteU16BE(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	c.write(b[:])
}

// WriteU32BE writes a big-endian uint32.
func (c *Cursor) WriteU32BE(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	c.write(b[:])
}

// WriteU64BE writes a big-endian uint64.
func (c *Cursor) WriteU64BE(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	c.write(b[:])
}

// WriteI32BE writes a big-endian signed int32.
func (c *Cursor) WriteI32BE(v int32) {
	c.WriteU32BE(uint32(v))
}

// WriteI64BE writes a big-endian signed int64.
func (c *Cursor) WriteI64BE(v int64) {
	c.WriteU64BE(uint64(v))
}

// WriteF32BE writes a big-endian IEEE-754 float32.
func (c *Cursor) WriteF32BE(v float32) {
	c.WriteU32BE(math.Float32bits(v))
}

// WriteF64BE writes a big-endian IEEE-754 float64.
func (c *Cursor) WriteF64BE(v float64) {
	c.WriteU64BE(math.Float64bits(v))
}

// WriteString writes a u32-BE length prefix followed by the opaque
// bytes of s.
func (c *Cursor) WriteString(s string) {
	c.WriteU32BE(uint32(len(s)))
	c.write([]byte(s))
}

// WriteU32LE writes a little-endian uint32. Used only for the outer
// FastLZ frame's two size words.
func (c *Cursor) WriteU32LE(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	c.write(b[:])
}
