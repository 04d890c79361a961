// SPDX-License-Identifier: Apache-2.0
// This file is part of the entity-bin project.

package entitybin

import (
	"strings"
	"sync"

	"github.com/NathanSnail/entity-bin/bytecursor"
	"github.com/NathanSnail/entity-bin/objectmap"
	"github.com/NathanSnail/entity-bin/schema"
)

// Decoder reads one TypedValue from c. Encoder writes one back.
// Compiling a type string into a pair of closures once and caching
// them, instead of re-walking the prefix-dispatch table on every
// field, turns the schema into a closed decoding program keyed by the
// mangled type string itself, since there is no static Go type to key
// on.
type Decoder func(c *bytecursor.Cursor) (TypedValue, error)
type Encoder func(c *bytecursor.Cursor, v TypedValue) error

type compiledType struct {
	decode Decoder
	encode Encoder
}

// TypeCodec compiles C++-mangled type strings into Decoder/Encoder
// pairs, caching each distinct type string's program after first use.
type TypeCodec struct {
	reg *schema.Registry

	mu    sync.Mutex
	cache map[string]*compiledType
}

// NewTypeCodec builds a TypeCodec bound to a schema registry, used to
// resolve enum widths for the priority-5 dispatch rule.
func NewTypeCodec(reg *schema.Registry) *TypeCodec {
	return &TypeCodec{reg: reg, cache: make(map[string]*compiledType)}
}

// Decoder returns (compiling and caching if necessary) the Decoder for
// a type string.
func (tc *TypeCodec) Decoder(typeString string) Decoder {
	return tc.compile(typeString).decode
}

// Encoder returns (compiling and caching if necessary) the Encoder for
// a type string.
func (tc *TypeCodec) Encoder(typeString string) Encoder {
	return tc.compile(typeString).encode
}

func (tc *TypeCodec) compile(typeString string) *compiledType {
	tc.mu.Lock()
	if ct, ok := tc.cache[typeString]; ok {
		tc.mu.Unlock()
		return ct
	}
	tc.mu.Unlock()

	// build recurses into compile for nested type parameters (vector
	// element, pair/lens/transform inner types); type strings never
	// reference themselves, so this recursion always terminates and a
	// lock must not be held across it.
	decode, encode := tc.build(typeString)
	ct := &compiledType{decode: decode, encode: encode}

	tc.mu.Lock()
	if existing, ok := tc.cache[typeString]; ok {
		tc.mu.Unlock()
		return existing
	}
	tc.cache[typeString] = ct
	tc.mu.Unlock()
	return ct
}

func unknownType(typeString string) (Decoder, Encoder) {
	dec := func(c *bytecursor.Cursor) (TypedValue, error) {
		return TypedValue{}, &UnknownTypeError{Offset: c.Position(), TypeString: typeString}
	}
	enc := func(c *bytecursor.Cursor, v TypedValue) error {
		return &UnknownTypeError{Offset: c.Position(), TypeString: typeString}
	}
	return dec, enc
}

// build implements the priority-ordered prefix dispatch table,
// returning a closure pair for typeString.
func (tc *TypeCodec) build(typeString string) (Decoder, Encoder) {
	switch {
	case typeString == "bool":
		return boolCodec()
	case typeString == "float":
		return f32Codec()
	case typeString == "double":
		return f64Codec()
	case typeString == "int" || typeString == "int32":
		return i32Codec()
	case typeString == "__int64":
		return i64Codec()
	case typeString == "unsigned int" || typeString == "uint32":
		return u32Codec()
	case typeString == "unsigned __int64":
		return u64Codec()
	case typeString == "unsigned short":
		return u16Codec()
	case strings.HasPrefix(typeString, "class ceng::math::CVector2<"):
		inner := stripOuter(typeString, "class ceng::math::CVector2<")
		return tc.pairCodec(inner)
	case strings.HasPrefix(typeString, "struct LensValue<"):
		inner := stripOuter(typeString, "struct LensValue<")
		return tc.lensCodec(inner)
	case strings.HasPrefix(typeString, "struct ceng::math::CXForm<"):
		inner := stripOuter(typeString, "struct ceng::math::CXForm<")
		return tc.transformCodec(inner)
	case strings.HasPrefix(typeString, "class std::vector<"):
		elem := vectorElementType(typeString)
		return tc.sequenceCodec(elem)
	case typeString == "string" || isBasicString(typeString):
		return stringCodec()
	case typeString == "UintArrayInline" || typeString == "struct UintArrayInline":
		return uintArrayCodec()
	case strings.HasSuffix(typeString, "Enum"):
		return tc.enumCodec(typeString)
	case typeString == "struct SpriteStains *":
		return spriteStainsCodec()
	case objectmap.Has(typeString):
		return tc.objectCodec(typeString)
	default:
		return unknownType(typeString)
	}
}

func isBasicString(typeString string) bool {
	return strings.HasPrefix(typeString, "class std::basic_string<char")
}

func boolCodec() (Decoder, Encoder) {
	dec := func(c *bytecursor.Cursor) (TypedValue, error) {
		v, err := c.ReadBool()
		if err != nil {
			return TypedValue{}, err
		}
		return boolValue(v), nil
	}
	enc := func(c *bytecursor.Cursor, v TypedValue) error {
		c.WriteBool(v.Bool)
		return nil
	}
	return dec, enc
}

func f32Codec() (Decoder, Encoder) {
	dec := func(c *bytecursor.Cursor) (TypedValue, error) {
		v, err := c.ReadF32BE()
		if err != nil {
			return TypedValue{}, err
		}
		return f32Value(v), nil
	}
	enc := func(c *bytecursor.Cursor, v TypedValue) error {
		c.WriteF32BE(v.F32)
		return nil
	}
	return dec, enc
}

func f64Codec() (Decoder, Encoder) {
	dec := func(c *bytecursor.Cursor) (TypedValue, error) {
		v, err := c.ReadF64BE()
		if err != nil {
			return TypedValue{}, err
		}
		return f64Value(v), nil
	}
	enc := func(c *bytecursor.Cursor, v TypedValue) error {
		c.WriteF64BE(v.F64)
		return nil
	}
	return dec, enc
}

func i32Codec() (Decoder, Encoder) {
	dec := func(c *bytecursor.Cursor) (TypedValue, error) {
		v, err := c.ReadI32BE()
		if err != nil {
			return TypedValue{}, err
		}
		return i32Value(v), nil
	}
	enc := func(c *bytecursor.Cursor, v TypedValue) error {
		c.WriteI32BE(v.I32)
		return nil
	}
	return dec, enc
}

func i64Codec() (Decoder, Encoder) {
	dec := func(c *bytecursor.Cursor) (TypedValue, error) {
		v, err := c.ReadI64BE()
		if err != nil {
			return TypedValue{}, err
		}
		return i64Value(v), nil
	}
	enc := func(c *bytecursor.Cursor, v TypedValue) error {
		c.WriteI64BE(v.I64)
		return nil
	}
	return dec, enc
}

func u32Codec() (Decoder, Encoder) {
	dec := func(c *bytecursor.Cursor) (TypedValue, error) {
		v, err := c.ReadU32BE()
		if err != nil {
			return TypedValue{}, err
		}
		return u32Value(v), nil
	}
	enc := func(c *bytecursor.Cursor, v TypedValue) error {
		c.WriteU32BE(v.U32)
		return nil
	}
	return dec, enc
}

func u64Codec() (Decoder, Encoder) {
	dec := func(c *bytecursor.Cursor) (TypedValue, error) {
		v, err := c.ReadU64BE()
		if err != nil {
			return TypedValue{}, err
		}
		return u64Value(v), nil
	}
	enc := func(c *bytecursor.Cursor, v TypedValue) error {
		c.WriteU64BE(v.U64)
		return nil
	}
	return dec, enc
}

func u16Codec() (Decoder, Encoder) {
	dec := func(c *bytecursor.Cursor) (TypedValue, error) {
		v, err := c.ReadU16BE()
		if err != nil {
			return TypedValue{}, err
		}
		return u16Value(v), nil
	}
	enc := func(c *bytecursor.Cursor, v TypedValue) error {
		c.WriteU16BE(v.U16)
		return nil
	}
	return dec, enc
}

func stringCodec() (Decoder, Encoder) {
	dec := func(c *bytecursor.Cursor) (TypedValue, error) {
		s, err := c.ReadString()
		if err != nil {
			return TypedValue{}, err
		}
		return stringValue(s), nil
	}
	enc := func(c *bytecursor.Cursor, v TypedValue) error {
		c.WriteString(v.String)
		return nil
	}
	return dec, enc
}

func uintArrayCodec() (Decoder, Encoder) {
	dec := func(c *bytecursor.Cursor) (TypedValue, error) {
		n, err := c.ReadU32BE()
		if err != nil {
			return TypedValue{}, err
		}
		out := make([]uint32, n)
		for i := range out {
			v, err := c.ReadU32BE()
			if err != nil {
				return TypedValue{}, err
			}
			out[i] = v
		}
		return TypedValue{Kind: KindUintArray, UintArray: out}, nil
	}
	enc := func(c *bytecursor.Cursor, v TypedValue) error {
		c.WriteU32BE(uint32(len(v.UintArray)))
		for _, u := range v.UintArray {
			c.WriteU32BE(u)
		}
		return nil
	}
	return dec, enc
}

func spriteStainsCodec() (Decoder, Encoder) {
	dec := func(c *bytecursor.Cursor) (TypedValue, error) {
		return nullValue(), nil
	}
	enc := func(c *bytecursor.Cursor, v TypedValue) error {
		return nil
	}
	return dec, enc
}

func (tc *TypeCodec) enumCodec(typeString string) (Decoder, Encoder) {
	width, ok := tc.reg.EnumWidth(typeString)
	if !ok {
		width = 4
	}
	dec := func(c *bytecursor.Cursor) (TypedValue, error) {
		var v uint64
		var err error
		switch width {
		case 1:
			var b []byte
			b, err = c.ReadBytes(1)
			if err == nil {
				v = uint64(b[0])
			}
		case 2:
			var u uint16
			u, err = c.ReadU16BE()
			v = uint64(u)
		case 8:
			v, err = c.ReadU64BE()
		default:
			var u uint32
			u, err = c.ReadU32BE()
			v = uint64(u)
		}
		if err != nil {
			return TypedValue{}, err
		}
		return TypedValue{Kind: KindEnum, U64: v}, nil
	}
	enc := func(c *bytecursor.Cursor, v TypedValue) error {
		switch width {
		case 1:
			c.WriteBytes([]byte{byte(v.U64)})
		case 2:
			c.WriteU16BE(uint16(v.U64))
		case 8:
			c.WriteU64BE(v.U64)
		default:
			c.WriteU32BE(uint32(v.U64))
		}
		return nil
	}
	return dec, enc
}

func (tc *TypeCodec) pairCodec(inner string) (Decoder, Encoder) {
	innerDec := tc.Decoder(inner)
	innerEnc := tc.Encoder(inner)
	dec := func(c *bytecursor.Cursor) (TypedValue, error) {
		a, err := innerDec(c)
		if err != nil {
			return TypedValue{}, err
		}
		b, err := innerDec(c)
		if err != nil {
			return TypedValue{}, err
		}
		return TypedValue{Kind: KindPair, Pair: &Pair{A: a, B: b}}, nil
	}
	enc := func(c *bytecursor.Cursor, v TypedValue) error {
		if err := innerEnc(c, v.Pair.A); err != nil {
			return err
		}
		return innerEnc(c, v.Pair.B)
	}
	return dec, enc
}

func (tc *TypeCodec) lensCodec(inner string) (Decoder, Encoder) {
	innerDec := tc.Decoder(inner)
	innerEnc := tc.Encoder(inner)
	frameDec, frameEnc := i32Codec()
	dec := func(c *bytecursor.Cursor) (TypedValue, error) {
		value, err := innerDec(c)
		if err != nil {
			return TypedValue{}, err
		}
		def, err := innerDec(c)
		if err != nil {
			return TypedValue{}, err
		}
		frame, err := frameDec(c)
		if err != nil {
			return TypedValue{}, err
		}
		return TypedValue{Kind: KindLens, Lens: &Lens{Value: value, Default: def, Frame: frame.I32}}, nil
	}
	enc := func(c *bytecursor.Cursor, v TypedValue) error {
		if err := innerEnc(c, v.Lens.Value); err != nil {
			return err
		}
		if err := innerEnc(c, v.Lens.Default); err != nil {
			return err
		}
		return frameEnc(c, i32Value(v.Lens.Frame))
	}
	return dec, enc
}

func (tc *TypeCodec) transformCodec(inner string) (Decoder, Encoder) {
	pairDec, pairEnc := tc.pairCodec(inner)
	rotDec := tc.Decoder(inner)
	rotEnc := tc.Encoder(inner)
	dec := func(c *bytecursor.Cursor) (TypedValue, error) {
		position, err := pairDec(c)
		if err != nil {
			return TypedValue{}, err
		}
		scale, err := pairDec(c)
		if err != nil {
			return TypedValue{}, err
		}
		rotation, err := rotDec(c)
		if err != nil {
			return TypedValue{}, err
		}
		return TypedValue{Kind: KindTransform, Transform: &Transform{
			Position: *position.Pair,
			Scale:    *scale.Pair,
			Rotation: rotation,
		}}, nil
	}
	enc := func(c *bytecursor.Cursor, v TypedValue) error {
		t := v.Transform
		if err := pairEnc(c, TypedValue{Kind: KindPair, Pair: &t.Position}); err != nil {
			return err
		}
		if err := pairEnc(c, TypedValue{Kind: KindPair, Pair: &t.Scale}); err != nil {
			return err
		}
		return rotEnc(c, t.Rotation)
	}
	return dec, enc
}

func (tc *TypeCodec) sequenceCodec(elem string) (Decoder, Encoder) {
	elemDec := tc.Decoder(elem)
	elemEnc := tc.Encoder(elem)
	dec := func(c *bytecursor.Cursor) (TypedValue, error) {
		n, err := c.ReadU32BE()
		if err != nil {
			return TypedValue{}, err
		}
		out := make([]TypedValue, n)
		for i := range out {
			v, err := elemDec(c)
			if err != nil {
				return TypedValue{}, err
			}
			out[i] = v
		}
		return TypedValue{Kind: KindSequence, Sequence: out}, nil
	}
	enc := func(c *bytecursor.Cursor, v TypedValue) error {
		c.WriteU32BE(uint32(len(v.Sequence)))
		for _, item := range v.Sequence {
			if err := elemEnc(c, item); err != nil {
				return err
			}
		}
		return nil
	}
	return dec, enc
}

func (tc *TypeCodec) objectCodec(typeString string) (Decoder, Encoder) {
	fields, _ := objectmap.Fields(typeString)
	names := make([]string, len(fields))
	decoders := make([]Decoder, len(fields))
	encoders := make([]Encoder, len(fields))
	for i, f := range fields {
		names[i] = f.Name
		decoders[i] = tc.Decoder(f.TypeString)
		encoders[i] = tc.Encoder(f.TypeString)
	}
	dec := func(c *bytecursor.Cursor) (TypedValue, error) {
		obj := &ObjectValue{Names: names, Fields: make(map[string]TypedValue, len(names))}
		for i, name := range names {
			v, err := decoders[i](c)
			if err != nil {
				return TypedValue{}, err
			}
			obj.Fields[name] = v
		}
		return TypedValue{Kind: KindObject, Object: obj}, nil
	}
	enc := func(c *bytecursor.Cursor, v TypedValue) error {
		for i, name := range names {
			if err := encoders[i](c, v.Object.Fields[name]); err != nil {
				return err
			}
		}
		return nil
	}
	return dec, enc
}
