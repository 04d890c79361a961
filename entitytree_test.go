// SPDX-License-Identifier: Apache-2.0
// This file is part of the entity-bin project.

package entitybin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NathanSnail/entity-bin/bytecursor"
	"github.com/NathanSnail/entity-bin/schema"
)

func simpleRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "s.xml")
	doc := `<schema><component component_name="Health">
		<field name="hp" size="4" type="float"/>
	</component></schema>`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	reg, err := schema.Load(path)
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return reg
}

// TestSingleRootEntityRoundTrip round-trips a single childless entity.
func TestSingleRootEntityRoundTrip(t *testing.T) {
	reg := simpleRegistry(t)
	tc := NewTypeCodec(reg)

	entities := []Entity{{
		Name:     "e",
		FlagByte: 0,
		Path:     "",
		Tags:     nil,
		X:        0, Y: 0, SizeX: 1, SizeY: 1, Rotation: 0,
	}}

	c := bytecursor.NewWriter()
	if err := encodeTree(c, entities, tc); err != nil {
		t.Fatalf("encodeTree: %v", err)
	}

	reader := bytecursor.NewReader(c.Bytes())
	decoded, err := decodeTree(reader, reg, tc)
	if err != nil {
		t.Fatalf("decodeTree: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Name != "e" || len(decoded[0].Children) != 0 {
		t.Fatalf("unexpected decode result: %+v", decoded)
	}
}

// TestTreeConsistency checks that decoding recovers the same number
// of entities and the same parent/child shape that was encoded.
func TestTreeConsistency(t *testing.T) {
	reg := simpleRegistry(t)
	tc := NewTypeCodec(reg)

	leaf := func(name string) Entity {
		return Entity{Name: name, SizeX: 1, SizeY: 1}
	}
	tree := []Entity{
		{Name: "root-a", SizeX: 1, SizeY: 1, Children: []Entity{leaf("a1"), leaf("a2")}},
		{Name: "root-b", SizeX: 1, SizeY: 1, Children: []Entity{leaf("b1")}},
	}

	c := bytecursor.NewWriter()
	if err := encodeTree(c, tree, tc); err != nil {
		t.Fatalf("encodeTree: %v", err)
	}
	decoded, err := decodeTree(bytecursor.NewReader(c.Bytes()), reg, tc)
	if err != nil {
		t.Fatalf("decodeTree: %v", err)
	}

	var total int
	var countChildren func([]Entity)
	countChildren = func(es []Entity) {
		for _, e := range es {
			total++
			countChildren(e.Children)
		}
	}
	countChildren(decoded)
	if total != 5 {
		t.Fatalf("expected 5 entities total, counted %d", total)
	}
	if len(decoded) != 2 || len(decoded[0].Children) != 2 || len(decoded[1].Children) != 1 {
		t.Fatalf("unexpected tree shape: %+v", decoded)
	}
}

func TestDeepNestingRoundTrip(t *testing.T) {
	reg := simpleRegistry(t)
	tc := NewTypeCodec(reg)

	tree := []Entity{{Name: "grandparent", SizeX: 1, SizeY: 1, Children: []Entity{
		{Name: "parent", SizeX: 1, SizeY: 1, Children: []Entity{
			{Name: "child", SizeX: 1, SizeY: 1},
		}},
	}}}

	c := bytecursor.NewWriter()
	if err := encodeTree(c, tree, tc); err != nil {
		t.Fatalf("encodeTree: %v", err)
	}
	decoded, err := decodeTree(bytecursor.NewReader(c.Bytes()), reg, tc)
	if err != nil {
		t.Fatalf("decodeTree: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Name != "grandparent" {
		t.Fatal("unexpected top level")
	}
	if len(decoded[0].Children) != 1 || decoded[0].Children[0].Name != "parent" {
		t.Fatal("unexpected middle level")
	}
	if len(decoded[0].Children[0].Children) != 1 || decoded[0].Children[0].Children[0].Name != "child" {
		t.Fatal("unexpected leaf level")
	}
}

func TestComponentFieldRoundTrip(t *testing.T) {
	reg := simpleRegistry(t)
	tc := NewTypeCodec(reg)

	tree := []Entity{{
		Name: "e", SizeX: 1, SizeY: 1,
		Components: []Component{{
			Name:       "Health",
			Enabled:    true,
			FlagByte:   1,
			FieldOrder: []string{"hp"},
			FieldTypes: map[string]string{"hp": "float"},
			Fields:     map[string]TypedValue{"hp": f32Value(42.5)},
		}},
	}}

	c := bytecursor.NewWriter()
	if err := encodeTree(c, tree, tc); err != nil {
		t.Fatalf("encodeTree: %v", err)
	}
	decoded, err := decodeTree(bytecursor.NewReader(c.Bytes()), reg, tc)
	if err != nil {
		t.Fatalf("decodeTree: %v", err)
	}
	if len(decoded) != 1 || len(decoded[0].Components) != 1 {
		t.Fatalf("unexpected decode: %+v", decoded)
	}
	comp := decoded[0].Components[0]
	hp, ok := comp.Field("hp")
	if !ok || hp.F32 != 42.5 {
		t.Fatalf("unexpected hp field: %+v (ok=%v)", hp, ok)
	}
	if !comp.Enabled || comp.FlagByte != 1 {
		t.Fatalf("unexpected component flags: %+v", comp)
	}
}
