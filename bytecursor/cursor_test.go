// SPDX-License-Identifier: Apache-2.0
// This file is part of the entity-bin project.

package bytecursor

import (
	"bytes"
	"testing"
)

func TestReadPrimitivesBE(t *testing.T) {
	buf := []byte{
		0x00, 0x00, 0x00, 0x2a, // u32 42
		0x01,       // bool true
		0x3F, 0x80, 0x00, 0x00, // float32 1.0
	}
	c := NewReader(buf)

	v, err := c.ReadU32BE()
	if err != nil || v != 42 {
		t.Fatalf("ReadU32BE = %d, %v", v, err)
	}
	b, err := c.ReadBool()
	if err != nil || !b {
		t.Fatalf("ReadBool = %v, %v", b, err)
	}
	f, err := c.ReadF32BE()
	if err != nil || f != 1.0 {
		t.Fatalf("ReadF32BE = %v, %v", f, err)
	}
}

func TestReadBoolStrict(t *testing.T) {
	c := NewReader([]byte{2})
	_, err := c.ReadBool()
	if err == nil {
		t.Fatal("expected malformed bool error for byte value 2")
	}
	var malformed *ErrMalformedBool
	if !isMalformedBool(err, &malformed) {
		t.Fatalf("expected ErrMalformedBool, got %T: %v", err, err)
	}
}

func isMalformedBool(err error, target **ErrMalformedBool) bool {
	m, ok := err.(*ErrMalformedBool)
	if ok {
		*target = m
	}
	return ok
}

func TestReadStringLengthPrefixed(t *testing.T) {
	c := NewWriter()
	c.WriteString("hello")
	r := NewReader(c.Bytes())
	s, err := r.ReadString()
	if err != nil || s != "hello" {
		t.Fatalf("ReadString = %q, %v", s, err)
	}
}

func TestLittleEndianFrameWords(t *testing.T) {
	w := NewWriter()
	w.WriteU32LE(0x01020304)
	r := NewReader(w.Bytes())
	v, err := r.ReadU32LE()
	if err != nil || v != 0x01020304 {
		t.Fatalf("ReadU32LE = %#x, %v", v, err)
	}
	if !bytes.Equal(w.Bytes(), []byte{0x04, 0x03, 0x02, 0x01}) {
		t.Fatalf("expected little-endian byte order, got % x", w.Bytes())
	}
}

func TestExpectMismatch(t *testing.T) {
	c := NewReader([]byte{0x00, 0x01})
	if err := c.Expect([]byte{0x00, 0x02}); err == nil {
		t.Fatal("expected assertion error")
	}
}

func TestTruncatedRead(t *testing.T) {
	c := NewReader([]byte{0x00, 0x01})
	if _, err := c.ReadU32BE(); err != ErrTruncated {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestRoundTripAllPrimitives(t *testing.T) {
	w := NewWriter()
	w.WriteBool(true)
	w.WriteU16BE(0xBEEF)
	w.WriteU32BE(0xDEADBEEF)
	w.WriteU64BE(0x0102030405060708)
	w.WriteI32BE(-5)
	w.WriteI64BE(-9)
	w.WriteF32BE(3.5)
	w.WriteF64BE(-2.25)
	w.WriteString("abc")

	r := NewReader(w.Bytes())
	if b, _ := r.ReadBool(); !b {
		t.Fatal("bool mismatch")
	}
	if v, _ := r.ReadU16BE(); v != 0xBEEF {
		t.Fatalf("u16 mismatch: %#x", v)
	}
	if v, _ := r.ReadU32BE(); v != 0xDEADBEEF {
		t.Fatalf("u32 mismatch: %#x", v)
	}
	if v, _ := r.ReadU64BE(); v != 0x0102030405060708 {
		t.Fatalf("u64 mismatch: %#x", v)
	}
	if v, _ := r.ReadI32BE(); v != -5 {
		t.Fatalf("i32 mismatch: %d", v)
	}
	if v, _ := r.ReadI64BE(); v != -9 {
		t.Fatalf("i64 mismatch: %d", v)
	}
	if v, _ := r.ReadF32BE(); v != 3.5 {
		t.Fatalf("f32 mismatch: %v", v)
	}
	if v, _ := r.ReadF64BE(); v != -2.25 {
		t.Fatalf("f64 mismatch: %v", v)
	}
	if s, _ := r.ReadString(); s != "abc" {
		t.Fatalf("string mismatch: %q", s)
	}
	if r.Remaining() != 0 {
		t.Fatalf("expected buffer fully consumed, %d bytes left", r.Remaining())
	}
}
