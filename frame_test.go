// SPDX-License-Identifier: Apache-2.0
// This file is part of the entity-bin project.

package entitybin

import (
	"bytes"
	"testing"

	"github.com/NathanSnail/entity-bin/fastlz"
)

// TestEmptyFileRoundTrip checks that an empty-sentinel file decodes
// with no hash/entities and re-encodes back to the canonical bytes.
func TestEmptyFileRoundTrip(t *testing.T) {
	payload := append([]byte{0x00, 0x02, 0x00, 0x20, 0x00, 0x00, 0x00, 0x00}, canonicalEmptyTail...)
	if len(payload) != 0x28 {
		t.Fatalf("canonical empty payload should be 0x28 bytes, got 0x%x", len(payload))
	}
	compressed := fastlz.Compress(payload)

	raw := bytecursorConcatLE(uint32(len(compressed)), uint32(len(payload)), compressed)

	frame, err := decodeFrame(raw)
	if err != nil {
		t.Fatalf("decodeFrame: %v", err)
	}
	if !frame.Empty {
		t.Fatal("expected empty frame")
	}
	if len(frame.Hash) != 0 {
		t.Fatalf("expected no hash, got % x", frame.Hash)
	}
	if !bytes.Equal(frame.Payload, canonicalEmptyTail) {
		t.Fatalf("unexpected tail: % x", frame.Payload)
	}

	reencoded := encodeFrame(frame)
	roundFrame, err := decodeFrame(reencoded)
	if err != nil {
		t.Fatalf("decodeFrame(reencoded): %v", err)
	}
	if !roundFrame.Empty || !bytes.Equal(roundFrame.Payload, canonicalEmptyTail) {
		t.Fatalf("round trip did not preserve empty tail")
	}
}

func TestMalformedSentinel(t *testing.T) {
	payload := []byte{0xAA, 0xBB, 0xCC, 0xDD, 0x00, 0x00, 0x00, 0x00}
	compressed := fastlz.Compress(payload)
	raw := bytecursorConcatLE(uint32(len(compressed)), uint32(len(payload)), compressed)

	_, err := decodeFrame(raw)
	if _, ok := err.(*MalformedError); !ok {
		t.Fatalf("expected *MalformedError, got %T (%v)", err, err)
	}
}

func TestDecompressionSizeMismatch(t *testing.T) {
	// claim a decompressed size larger than what FastLZ will actually
	// produce for this input.
	payload := []byte{0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x20}
	hash := bytes.Repeat([]byte{0x11}, 32)
	full := append(append([]byte{}, payload...), hash...)
	compressed := fastlz.Compress(full)

	raw := bytecursorConcatLE(uint32(len(compressed)), uint32(len(full)+10), compressed)
	_, err := decodeFrame(raw)
	if err == nil {
		t.Fatal("expected an error for a short decompression result")
	}
}

func bytecursorConcatLE(a, b uint32, rest []byte) []byte {
	out := make([]byte, 0, 8+len(rest))
	out = append(out, byte(a), byte(a>>8), byte(a>>16), byte(a>>24))
	out = append(out, byte(b), byte(b>>8), byte(b>>16), byte(b>>24))
	out = append(out, rest...)
	return out
}
