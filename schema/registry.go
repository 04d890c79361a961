// SPDX-License-Identifier: Apache-2.0
// This file is part of the entity-bin project.

// Package schema loads the XML schema descriptors that key component
// field layouts, and produces the two lookup tables the type codec
// needs: an ordered field list per component, and a byte width per
// enum type string. The lookup is built once at Load time and handed
// out as an immutable read-only view thereafter.
package schema

import (
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/casbin/govaluate"
)

// FieldSpec is a single (field_name, type_string) pair — the unit a
// component's decoding program is built from, in on-disk order.
type FieldSpec struct {
	Name       string
	TypeString string
}

// Registry is the immutable, build-once-use-many-times result of
// loading one schema XML file. A single Registry is safely shared by
// reference across concurrent decodes of distinct files, each owning
// its own ByteCursor.
type Registry struct {
	fieldsByComponent map[string][]FieldSpec
	sizeByType        map[string]uint32
	exprCache         map[string]uint32
}

// rawDoc mirrors the flat schema XML shape: one child element per
// component, each carrying component_name, its element children
// carrying name/size/type.
type rawDoc struct {
	Components []rawComponent `xml:",any"`
}

type rawComponent struct {
	Name   string     `xml:"component_name,attr"`
	Fields []rawField `xml:",any"`
}

type rawField struct {
	Name string `xml:"name,attr"`
	Size string `xml:"size,attr"`
	Type string `xml:"type,attr"`
}

// gtInQuotes/ltInQuotes escape a raw '<' or '>' found inside a
// double-quoted segment on a single line, which would otherwise break
// the XML parser. Only substrings bounded by a quote on one side of
// the offending character, on the same line, are rewritten.
var (
	gtInQuotes = regexp.MustCompile(`("[^\n]*)>([^\n]*")`)
	ltInQuotes = regexp.MustCompile(`("[^\n]*)<([^\n]*")`)
)

// sanitize applies the quoted-angle-bracket escaping rule to a fixed
// point: some malformed lines carry more than one offending character,
// and each pass only fixes the first match per regexp engine
// semantics, so the rule must be re-applied until it stops changing
// the text.
func sanitize(doc string) string {
	for {
		next := gtInQuotes.ReplaceAllString(doc, "$1&gt;$2")
		next = ltInQuotes.ReplaceAllString(next, "$1&lt;$2")
		if next == doc {
			return doc
		}
		doc = next
	}
}

// ErrSchema wraps any failure to load or parse a schema file: missing,
// unreadable, or unparseable even after sanitization.
type ErrSchema struct {
	Path string
	Err  error
}

func (e *ErrSchema) Error() string {
	return fmt.Sprintf("schema %s: %v", e.Path, e.Err)
}

func (e *ErrSchema) Unwrap() error { return e.Err }

// Load reads, sanitizes, and parses the schema XML file at path.
func Load(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ErrSchema{Path: path, Err: err}
	}

	clean := sanitize(string(raw))

	var doc rawDoc
	if err := xml.Unmarshal([]byte(clean), &doc); err != nil {
		return nil, &ErrSchema{Path: path, Err: err}
	}

	reg := &Registry{
		fieldsByComponent: make(map[string][]FieldSpec, len(doc.Components)),
		sizeByType:        make(map[string]uint32),
		exprCache:         make(map[string]uint32),
	}

	for _, comp := range doc.Components {
		if comp.Name == "" {
			continue
		}
		fields := make([]FieldSpec, 0, len(comp.Fields))
		for _, f := range comp.Fields {
			if f.Name == "" {
				continue
			}
			fields = append(fields, FieldSpec{Name: f.Name, TypeString: f.Type})
			if f.Size != "" {
				if width, err := evalSize(f.Size); err == nil {
					reg.sizeByType[f.Type] = width
				}
			}
		}
		reg.fieldsByComponent[comp.Name] = fields
	}

	return reg, nil
}

// LoadFromHash renders hash as lowercase hex and loads <dir>/<hex>.xml.
func LoadFromHash(dir string, hash []byte) (*Registry, error) {
	name := hex.EncodeToString(hash) + ".xml"
	return Load(filepath.Join(dir, name))
}

// Fields returns the ordered decoding program (field name + type
// string pairs) declared for a component, and whether the component is
// known to the schema at all.
func (r *Registry) Fields(component string) ([]FieldSpec, bool) {
	fields, ok := r.fieldsByComponent[component]
	return fields, ok
}

// EnumWidth returns the byte width declared for an enum type string,
// used by the TypeCodec's enum dispatch rule.
func (r *Registry) EnumWidth(typeString string) (uint32, bool) {
	w, ok := r.sizeByType[typeString]
	return w, ok
}

// evalSize parses a schema <field size="..."> attribute. Most schema
// files carry a bare integer, but some carry a small arithmetic
// fragment; govaluate absorbs both without a bespoke mini-parser.
func evalSize(raw string) (uint32, error) {
	expr, err := govaluate.NewEvaluableExpression(raw)
	if err != nil {
		return 0, err
	}
	result, err := expr.Evaluate(nil)
	if err != nil {
		return 0, err
	}
	switch v := result.(type) {
	case float64:
		return uint32(v), nil
	default:
		return 0, fmt.Errorf("size expression %q did not evaluate to a number", raw)
	}
}
