// SPDX-License-Identifier: Apache-2.0
// This file is part of the entity-bin project.

// Package entitybin decodes and re-encodes persisted entity-scene
// files: a FastLZ-compressed, schema-dependent, big-endian binary blob
// describing a forest of game entities, their transforms, their
// attached components, and each component's typed fields.
package entitybin

import (
	"encoding/hex"
	"encoding/json"

	"github.com/NathanSnail/entity-bin/bytecursor"
	"github.com/NathanSnail/entity-bin/schema"
)

// Scene is the top-level decoded result: a schema hash and the
// entity forest it was decoded under, or the empty sentinel case.
type Scene struct {
	Empty     bool
	Hash      []byte
	Entities  []Entity
	EmptyTail []byte // raw bytes following the sentinel in an empty file; nil means "use the canonical tail"
}

type sceneJSON struct {
	Empty    bool     `json:"empty"`
	Hash     string   `json:"schema_hash,omitempty"`
	Entities []Entity `json:"entities,omitempty"`
}

// MarshalJSON renders the schema hash as lowercase hex, matching the
// <hash>.xml schema filename convention, instead of encoding/json's
// default base64-string-of-raw-bytes rendering.
func (s *Scene) MarshalJSON() ([]byte, error) {
	out := sceneJSON{Empty: s.Empty, Entities: s.Entities}
	if len(s.Hash) > 0 {
		out.Hash = hex.EncodeToString(s.Hash)
	}
	return json.Marshal(out)
}

// Codec orchestrates FrameCodec, SchemaRegistry, and EntityTree/
// TypeCodec to decode and encode whole files. A schema directory is
// supplied at construction, since the schema lives outside the file
// itself and is looked up by the frame's embedded content hash.
type Codec struct {
	SchemaDir string
	Options   Options
}

// NewCodec returns a Codec that resolves schema files under schemaDir.
func NewCodec(schemaDir string, opts Options) *Codec {
	return &Codec{SchemaDir: schemaDir, Options: opts}
}

// Decode parses a whole entity-scene file.
func (cd *Codec) Decode(raw []byte) (*Scene, error) {
	cd.Options.logf("decoding frame (%d bytes)", len(raw))
	frame, err := decodeFrame(raw)
	if err != nil {
		return nil, err
	}

	if frame.Empty {
		cd.Options.logf("frame is empty")
		return &Scene{Empty: true, EmptyTail: frame.Payload}, nil
	}

	cd.Options.logf("loading schema for hash % x", frame.Hash)
	reg, err := schema.LoadFromHash(cd.SchemaDir, frame.Hash)
	if err != nil {
		return nil, &SchemaError{Err: err}
	}

	tc := NewTypeCodec(reg)
	c := bytecursor.NewReader(frame.Payload)
	entities, err := decodeTree(c, reg, tc)
	if err != nil {
		return nil, err
	}

	cd.Options.logf("decoded %d top-level entities", len(entities))
	return &Scene{Hash: frame.Hash, Entities: entities}, nil
}

// Encode serializes a Scene back into a whole entity-scene file. For a
// non-empty scene it must be given the same schema hash the scene was
// decoded under (or intends to target); for an empty scene it ignores
// Entities and Hash entirely.
func (cd *Codec) Encode(scene *Scene) ([]byte, error) {
	if scene.Empty {
		tail := scene.EmptyTail
		if tail == nil {
			tail = canonicalEmptyTail
		}
		return encodeFrame(&Frame{Empty: true, Payload: tail}), nil
	}

	reg, err := schema.LoadFromHash(cd.SchemaDir, scene.Hash)
	if err != nil {
		return nil, &SchemaError{Err: err}
	}

	tc := NewTypeCodec(reg)
	c := bytecursor.NewWriter()
	if err := encodeTree(c, scene.Entities, tc); err != nil {
		return nil, err
	}

	cd.Options.logf("encoded %d top-level entities", len(scene.Entities))
	return encodeFrame(&Frame{Empty: false, Hash: scene.Hash, Payload: c.Bytes()}), nil
}
