// SPDX-License-Identifier: Apache-2.0
// This file is part of the entity-bin project.

package entitybin

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
)

func writeSchemaDir(t *testing.T, hash []byte, doc string) string {
	t.Helper()
	dir := t.TempDir()
	name := hex.EncodeToString(hash) + ".xml"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	return dir
}

func TestCodecEmptyFileRoundTrip(t *testing.T) {
	codec := NewCodec(t.TempDir(), Options{})
	scene := &Scene{Empty: true}

	raw, err := codec.Encode(scene)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := codec.Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !decoded.Empty {
		t.Fatal("expected empty scene")
	}

	reencoded, err := codec.Encode(decoded)
	if err != nil {
		t.Fatalf("re-Encode: %v", err)
	}
	if !bytes.Equal(raw, reencoded) {
		t.Fatalf("round trip mismatch:\n got % x\nwant % x", reencoded, raw)
	}
}

func TestCodecNonEmptyRoundTrip(t *testing.T) {
	hash := bytes.Repeat([]byte{0xAB}, 32)
	schemaDir := writeSchemaDir(t, hash, `<schema><component component_name="Health">
		<field name="hp" size="4" type="float"/>
	</component></schema>`)

	codec := NewCodec(schemaDir, Options{})
	scene := &Scene{
		Hash: hash,
		Entities: []Entity{{
			Name: "player", SizeX: 1, SizeY: 1,
			Components: []Component{{
				Name:       "Health",
				Enabled:    true,
				FieldOrder: []string{"hp"},
				FieldTypes: map[string]string{"hp": "float"},
				Fields:     map[string]TypedValue{"hp": f32Value(100)},
			}},
			Children: []Entity{
				{Name: "child", SizeX: 1, SizeY: 1},
			},
		}},
	}

	raw, err := codec.Encode(scene)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := codec.Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded.Entities) != 1 || decoded.Entities[0].Name != "player" {
		t.Fatalf("unexpected decode: %+v", decoded.Entities)
	}
	if len(decoded.Entities[0].Children) != 1 || decoded.Entities[0].Children[0].Name != "child" {
		t.Fatalf("unexpected children: %+v", decoded.Entities[0].Children)
	}

	reencoded, err := codec.Encode(decoded)
	if err != nil {
		t.Fatalf("re-Encode: %v", err)
	}
	if !bytes.Equal(raw, reencoded) {
		t.Fatalf("round trip mismatch:\n got % x\nwant % x", reencoded, raw)
	}
}

func TestCodecMissingSchemaIsSchemaError(t *testing.T) {
	codec := NewCodec(t.TempDir(), Options{})
	scene := &Scene{Hash: bytes.Repeat([]byte{0x01}, 32)}

	_, err := codec.Encode(scene)
	if _, ok := err.(*SchemaError); !ok {
		t.Fatalf("expected *SchemaError, got %T (%v)", err, err)
	}
}
