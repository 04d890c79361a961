// SPDX-License-Identifier: Apache-2.0
// This file is part of the entity-bin project.

package entitybin

import (
	"fmt"

	"github.com/NathanSnail/entity-bin/bytecursor"
)

// MalformedError reports a frame-level structural expectation that
// failed: the empty sentinel was neither legal value, or hash_size
// disagreed with it. A bool byte other than 0 or 1 is not reported as
// MalformedError; it surfaces as *bytecursor.ErrMalformedBool.
type MalformedError struct {
	Context string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed stream: %s", e.Context)
}

// DecompressionError reports that FastLZ produced fewer bytes than the
// frame's declared decompressed_size.
type DecompressionError struct {
	Want int
	Got  int
}

func (e *DecompressionError) Error() string {
	return fmt.Sprintf("decompression: want %d bytes, got %d", e.Want, e.Got)
}

// SchemaError wraps a failure to load the schema keyed by a file's
// hash, or a component name the loaded schema does not declare. It is
// distinct from schema.ErrSchema so callers outside the schema package
// have a single error type to match on; Unwrap exposes the underlying
// error (a *schema.ErrSchema when the schema file failed to load).
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// UnknownTypeError reports a type string that matched none of the
// TypeCodec's dispatch rules and is absent from ObjectMap.
type UnknownTypeError struct {
	Offset     int
	TypeString string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type %q at offset %d", e.TypeString, e.Offset)
}

// TruncatedError reports a read that would run past the end of the
// buffer. It is a thin re-export of bytecursor.ErrTruncated so callers
// of this package never need to import bytecursor directly to match on
// it.
var TruncatedError = bytecursor.ErrTruncated

// AssertionError reports a literal-byte expectation that failed. It is
// a type alias for bytecursor's own assertion error, kept under this
// package's error-kind naming so callers can match on a consistent set
// of named error kinds.
type AssertionError = bytecursor.ErrAssertion
