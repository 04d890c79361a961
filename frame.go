// SPDX-License-Identifier: Apache-2.0
// This file is part of the entity-bin project.

package entitybin

import (
	"github.com/NathanSnail/entity-bin/bytecursor"
	"github.com/NathanSnail/entity-bin/fastlz"
)

// emptySentinel and contentSentinel are the two legal values of the
// frame's 4-byte marker.
var (
	emptySentinel   = []byte{0x00, 0x02, 0x00, 0x20}
	contentSentinel = []byte{0x00, 0x00, 0x00, 0x02}
)

const schemaHashSize = 0x20

// canonicalEmptyTail is the all-zero padding a freshly constructed
// empty file carries after the sentinel: hash_size=0 (4 bytes, written
// separately by encodeFrame) plus this 0x20-byte pad total 0x28 bytes
// of uncompressed payload.
var canonicalEmptyTail = make([]byte, 0x20)

// Frame is the decoded outer container: the empty/content flag, the
// schema hash (nil when the file is empty), and the decompressed
// payload carrying the entity stream.
type Frame struct {
	Empty   bool
	Hash    []byte
	Payload []byte
}

// decodeFrame reads the FastLZ container: the two little-endian size
// words, the compressed payload, the empty sentinel, and the schema
// hash.
func decodeFrame(raw []byte) (*Frame, error) {
	c := bytecursor.NewReader(raw)

	compressedSize, err := c.ReadU32LE()
	if err != nil {
		return nil, err
	}
	decompressedSize, err := c.ReadU32LE()
	if err != nil {
		return nil, err
	}

	compressed, err := c.ReadBytes(int(compressedSize))
	if err != nil {
		return nil, err
	}

	decompressed, err := fastlz.Decompress(compressed, int(decompressedSize))
	if err == fastlz.ErrShortOutput {
		return nil, &DecompressionError{Want: int(decompressedSize), Got: len(decompressed)}
	}
	if err != nil {
		return nil, err
	}
	if len(decompressed) != int(decompressedSize) {
		return nil, &DecompressionError{Want: int(decompressedSize), Got: len(decompressed)}
	}

	body := bytecursor.NewReader(decompressed)

	sentinel, err := body.ReadBytes(4)
	if err != nil {
		return nil, err
	}

	var empty bool
	switch {
	case bytesEqual(sentinel, emptySentinel):
		empty = true
	case bytesEqual(sentinel, contentSentinel):
		empty = false
	default:
		return nil, &MalformedError{Context: "empty sentinel matched neither legal value"}
	}

	hashSize, err := body.ReadU32BE()
	if err != nil {
		return nil, err
	}
	if empty && hashSize != 0 {
		return nil, &MalformedError{Context: "empty file carries a nonzero hash_size"}
	}
	if !empty && hashSize != schemaHashSize {
		return nil, &MalformedError{Context: "nonempty file carries a hash_size other than 0x20"}
	}

	var hash []byte
	if hashSize > 0 {
		hash, err = body.ReadBytes(int(hashSize))
		if err != nil {
			return nil, err
		}
	}

	rest, err := body.ReadBytes(body.Remaining())
	if err != nil {
		return nil, err
	}

	return &Frame{Empty: empty, Hash: append([]byte(nil), hash...), Payload: rest}, nil
}

// encodeFrame writes the outer container: it assembles the
// decompressed body (sentinel + hash + payload), compresses it with
// FastLZ, then writes the two little-endian size words followed by
// the compressed bytes.
func encodeFrame(f *Frame) []byte {
	body := bytecursor.NewWriter()
	if f.Empty {
		body.WriteBytes(emptySentinel)
		body.WriteU32BE(0)
	} else {
		body.WriteBytes(contentSentinel)
		body.WriteU32BE(schemaHashSize)
		body.WriteBytes(f.Hash)
	}
	body.WriteBytes(f.Payload)

	decompressed := body.Bytes()
	compressed := fastlz.Compress(decompressed)

	out := bytecursor.NewWriter()
	out.WriteU32LE(uint32(len(compressed)))
	out.WriteU32LE(uint32(len(decompressed)))
	out.WriteBytes(compressed)
	return out.Bytes()
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
