// SPDX-License-Identifier: Apache-2.0
// This file is part of the entity-bin project.

package entitybin

import "encoding/json"

// Kind discriminates the sum type a decoded field value holds.
// TypedValue is implemented as a tagged struct rather than an
// interface{} sum so each variant's fields stay directly addressable
// without a type assertion at every call site. The discriminant is
// resolved from the schema's type string at compile time, since the
// wire format itself carries no type tag.
type Kind uint8

const (
	KindBool Kind = iota
	KindF32
	KindF64
	KindI32
	KindI64
	KindU32
	KindU64
	KindU16
	KindString
	KindSequence
	KindPair
	KindTransform
	KindLens
	KindEnum
	KindUintArray
	KindNull
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindI32:
		return "i32"
	case KindI64:
		return "i64"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindU16:
		return "u16"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindPair:
		return "pair"
	case KindTransform:
		return "transform"
	case KindLens:
		return "lens"
	case KindEnum:
		return "enum"
	case KindUintArray:
		return "uint_array"
	case KindNull:
		return "null"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Transform is the on-disk shape of `struct ceng::math::CXForm<T>`:
// position and scale are CVector2<T> pairs, rotation is the bare T.
type Transform struct {
	Position Pair       `json:"position"`
	Scale    Pair       `json:"scale"`
	Rotation TypedValue `json:"rotation"`
}

// Pair is the on-disk shape of `class ceng::math::CVector2<T>`: two
// values of the same inner type, read/written in order.
type Pair struct {
	A TypedValue `json:"x"`
	B TypedValue `json:"y"`
}

// Lens is the on-disk shape of `struct LensValue<T>`: value and
// default share the inner type T, but Frame is always a plain `int`
// regardless of T.
type Lens struct {
	Value   TypedValue `json:"value"`
	Default TypedValue `json:"default"`
	Frame   int32      `json:"frame"`
}

// TypedValue holds one decoded field value. Exactly one field is
// meaningful for a given Kind; the rest are zero.
type TypedValue struct {
	Kind Kind

	Bool   bool
	F32    float32
	F64    float64
	I32    int32
	I64    int64
	U32    uint32
	U64    uint64
	U16    uint16
	String string

	Sequence []TypedValue
	Pair     *Pair
	Transform *Transform
	Lens      *Lens
	UintArray []uint32
	Object    *ObjectValue
}

// ObjectValue is the decoded form of an ObjectMap aggregate or a
// LensValue's transitive field: an ordered, named-field mapping that
// preserves the ObjectMap's declared field order.
type ObjectValue struct {
	Names  []string
	Fields map[string]TypedValue
}

// Get returns the decoded value for a named field of an ObjectValue,
// and whether the field is present.
func (o *ObjectValue) Get(name string) (TypedValue, bool) {
	v, ok := o.Fields[name]
	return v, ok
}

// MarshalJSON renders only the field meaningful for v's Kind, so a
// CLI JSON dump doesn't show every zero-valued sibling field.
func (v TypedValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindBool:
		return json.Marshal(v.Bool)
	case KindF32:
		return json.Marshal(v.F32)
	case KindF64:
		return json.Marshal(v.F64)
	case KindI32:
		return json.Marshal(v.I32)
	case KindI64:
		return json.Marshal(v.I64)
	case KindU32:
		return json.Marshal(v.U32)
	case KindU64:
		return json.Marshal(v.U64)
	case KindU16:
		return json.Marshal(v.U16)
	case KindString:
		return json.Marshal(v.String)
	case KindSequence:
		return json.Marshal(v.Sequence)
	case KindPair:
		return json.Marshal(v.Pair)
	case KindTransform:
		return json.Marshal(v.Transform)
	case KindLens:
		return json.Marshal(v.Lens)
	case KindEnum:
		return json.Marshal(v.U64)
	case KindUintArray:
		return json.Marshal(v.UintArray)
	case KindNull:
		return []byte("null"), nil
	case KindObject:
		return json.Marshal(v.Object)
	default:
		return []byte("null"), nil
	}
}

// MarshalJSON renders an ObjectValue as a JSON object keyed by field
// name. JSON objects carry no ordering guarantee, so Names (which does
// preserve the schema-declared order) is not otherwise consulted here.
func (o *ObjectValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Fields)
}

func boolValue(v bool) TypedValue    { return TypedValue{Kind: KindBool, Bool: v} }
func f32Value(v float32) TypedValue  { return TypedValue{Kind: KindF32, F32: v} }
func f64Value(v float64) TypedValue  { return TypedValue{Kind: KindF64, F64: v} }
func i32Value(v int32) TypedValue    { return TypedValue{Kind: KindI32, I32: v} }
func i64Value(v int64) TypedValue    { return TypedValue{Kind: KindI64, I64: v} }
func u32Value(v uint32) TypedValue   { return TypedValue{Kind: KindU32, U32: v} }
func u64Value(v uint64) TypedValue   { return TypedValue{Kind: KindU64, U64: v} }
func u16Value(v uint16) TypedValue   { return TypedValue{Kind: KindU16, U16: v} }
func stringValue(v string) TypedValue { return TypedValue{Kind: KindString, String: v} }
func nullValue() TypedValue          { return TypedValue{Kind: KindNull} }
