// SPDX-License-Identifier: Apache-2.0
// This file is part of the entity-bin project.

package entitybin

import (
	"fmt"
	"strings"

	"github.com/NathanSnail/entity-bin/bytecursor"
	"github.com/NathanSnail/entity-bin/schema"
)

type flatEntity struct {
	entity     Entity
	childCount int
}

// decodeTree reconstructs the entity forest in two phases: first
// flatten the stream into entity bodies plus their declared child
// counts (in on-disk pre-order), then recursively reassemble the tree
// by popping from the front of that flat list.
func decodeTree(c *bytecursor.Cursor, reg *schema.Registry, tc *TypeCodec) ([]Entity, error) {
	totalEntities, err := c.ReadU32BE()
	if err != nil {
		return nil, err
	}

	needed := int(totalEntities)
	var flat []flatEntity
	for len(flat) < needed {
		e, childCount, err := decodeEntityRecord(c, reg, tc)
		if err != nil {
			return nil, err
		}
		flat = append(flat, flatEntity{entity: e, childCount: childCount})
		needed += childCount
	}

	idx := 0
	var build func(count int) []Entity
	build = func(count int) []Entity {
		out := make([]Entity, 0, count)
		for i := 0; i < count; i++ {
			fe := flat[idx]
			idx++
			fe.entity.Children = build(fe.childCount)
			out = append(out, fe.entity)
		}
		return out
	}
	return build(int(totalEntities)), nil
}

// encodeTree performs a pre-order traversal, writing directly to the
// shared cursor so each entity's children are appended in place rather
// than built up as separate byte slices and concatenated afterward.
func encodeTree(c *bytecursor.Cursor, entities []Entity, tc *TypeCodec) error {
	c.WriteU32BE(uint32(len(entities)))
	return encodeEntityList(c, entities, tc)
}

func encodeEntityList(c *bytecursor.Cursor, entities []Entity, tc *TypeCodec) error {
	for _, e := range entities {
		if err := encodeEntityRecord(c, e, tc); err != nil {
			return err
		}
		c.WriteU32BE(uint32(len(e.Children)))
		if err := encodeEntityList(c, e.Children, tc); err != nil {
			return err
		}
	}
	return nil
}

func decodeEntityRecord(c *bytecursor.Cursor, reg *schema.Registry, tc *TypeCodec) (Entity, int, error) {
	name, err := c.ReadString()
	if err != nil {
		return Entity{}, 0, err
	}
	flagBytes, err := c.ReadBytes(1)
	if err != nil {
		return Entity{}, 0, err
	}
	path, err := c.ReadString()
	if err != nil {
		return Entity{}, 0, err
	}
	rawTags, err := c.ReadString()
	if err != nil {
		return Entity{}, 0, err
	}
	x, err := c.ReadF32BE()
	if err != nil {
		return Entity{}, 0, err
	}
	y, err := c.ReadF32BE()
	if err != nil {
		return Entity{}, 0, err
	}
	sizeX, err := c.ReadF32BE()
	if err != nil {
		return Entity{}, 0, err
	}
	sizeY, err := c.ReadF32BE()
	if err != nil {
		return Entity{}, 0, err
	}
	rotation, err := c.ReadF32BE()
	if err != nil {
		return Entity{}, 0, err
	}
	componentCount, err := c.ReadU32BE()
	if err != nil {
		return Entity{}, 0, err
	}

	components := make([]Component, componentCount)
	for i := range components {
		comp, err := decodeComponentRecord(c, reg, tc)
		if err != nil {
			return Entity{}, 0, err
		}
		components[i] = comp
	}

	childCount, err := c.ReadU32BE()
	if err != nil {
		return Entity{}, 0, err
	}

	e := Entity{
		Name:       name,
		Path:       path,
		Tags:       splitTags(rawTags),
		X:          x,
		Y:          y,
		SizeX:      sizeX,
		SizeY:      sizeY,
		Rotation:   rotation,
		FlagByte:   flagBytes[0],
		Components: components,
	}
	return e, int(childCount), nil
}

func encodeEntityRecord(c *bytecursor.Cursor, e Entity, tc *TypeCodec) error {
	c.WriteString(e.Name)
	c.WriteBytes([]byte{e.FlagByte})
	c.WriteString(e.Path)
	c.WriteString(joinTags(e.Tags))
	c.WriteF32BE(e.X)
	c.WriteF32BE(e.Y)
	c.WriteF32BE(e.SizeX)
	c.WriteF32BE(e.SizeY)
	c.WriteF32BE(e.Rotation)
	c.WriteU32BE(uint32(len(e.Components)))
	for _, comp := range e.Components {
		if err := encodeComponentRecord(c, comp, tc); err != nil {
			return err
		}
	}
	return nil
}

func decodeComponentRecord(c *bytecursor.Cursor, reg *schema.Registry, tc *TypeCodec) (Component, error) {
	name, err := c.ReadString()
	if err != nil {
		return Component{}, err
	}
	flagBytes, err := c.ReadBytes(1)
	if err != nil {
		return Component{}, err
	}
	enabled, err := c.ReadBool()
	if err != nil {
		return Component{}, err
	}
	rawTags, err := c.ReadString()
	if err != nil {
		return Component{}, err
	}

	fieldSpecs, ok := reg.Fields(name)
	if !ok {
		return Component{}, &SchemaError{Err: fmt.Errorf("component %q not declared in schema", name)}
	}

	order := make([]string, len(fieldSpecs))
	types := make(map[string]string, len(fieldSpecs))
	values := make(map[string]TypedValue, len(fieldSpecs))
	for i, spec := range fieldSpecs {
		order[i] = spec.Name
		types[spec.Name] = spec.TypeString
		v, err := tc.Decoder(spec.TypeString)(c)
		if err != nil {
			return Component{}, err
		}
		values[spec.Name] = v
	}

	return Component{
		Name:       name,
		Tags:       splitTags(rawTags),
		Enabled:    enabled,
		FlagByte:   flagBytes[0],
		FieldOrder: order,
		FieldTypes: types,
		Fields:     values,
	}, nil
}

func encodeComponentRecord(c *bytecursor.Cursor, comp Component, tc *TypeCodec) error {
	c.WriteString(comp.Name)
	c.WriteBytes([]byte{comp.FlagByte})
	c.WriteBool(comp.Enabled)
	c.WriteString(joinTags(comp.Tags))
	for _, name := range comp.FieldOrder {
		v := comp.Fields[name]
		if err := tc.Encoder(comp.FieldTypes[name])(c, v); err != nil {
			return err
		}
	}
	return nil
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}
