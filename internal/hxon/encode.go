package hxon

import (
	"fmt"
	"strconv"
	"strings"
)

// Encode renders values as canonical concatenated HXON text (spec.md §4.3):
// back-reference on first repeat, Array Null-run compression, `z` for
// Int(0), no gratuitous whitespace. decode(Encode(values)) recovers values
// of every variant except Exception, which Encode does not support and
// panics on; for text originally produced by this encoder, encode(decode(t))
// reproduces t byte-for-byte.
func Encode(values []Value) string {
	e := &encoder{}
	for _, v := range values {
		e.encodeValue(v)
	}
	return e.out.String()
}

type encoder struct {
	out         strings.Builder
	stringIndex map[string]int
	objectCache []Value
}

func (e *encoder) encodeValue(v Value) {
	switch v := v.(type) {
	case Null:
		e.out.WriteByte('n')
	case Bool:
		if v {
			e.out.WriteByte('t')
		} else {
			e.out.WriteByte('f')
		}
	case Int:
		if v == 0 {
			e.out.WriteByte('z')
		} else {
			fmt.Fprintf(&e.out, "i%d", int32(v))
		}
	case Float:
		e.encodeFloat(v)
	case String:
		e.encodeString(string(v))
	case Date:
		e.out.WriteByte('v')
		e.out.WriteString(string(v))
	default:
		e.encodeComposite(v)
	}
}

func (e *encoder) encodeFloat(f Float) {
	switch f.Class {
	case FloatNaN:
		e.out.WriteByte('k')
	case FloatPositiveInfinity:
		e.out.WriteByte('p')
	case FloatNegativeInfinity:
		e.out.WriteByte('m')
	default:
		e.out.WriteByte('d')
		e.out.WriteString(formatFloat(f.Normal))
	}
}

// encodeString emits a string literal, or a back-reference if this exact
// string has already been emitted in this document (spec.md §4.3: a Go
// string-keyed map is exact-equality by construction, so there is no
// hash-collision class to guard against).
func (e *encoder) encodeString(s string) {
	if e.stringIndex == nil {
		e.stringIndex = make(map[string]int)
	}
	if idx, ok := e.stringIndex[s]; ok {
		fmt.Fprintf(&e.out, "R%d", idx)
		return
	}
	e.stringIndex[s] = len(e.stringIndex)
	encoded := percentEncode(s)
	fmt.Fprintf(&e.out, "y%d:%s", len(encoded), encoded)
}

// encodeComposite emits a back-reference if an equal composite value has
// already been fully emitted, otherwise writes the literal form and caches
// it — caching only once all of its children have themselves been written
// (and, recursively, cached), exactly mirroring the point at which the
// decoder appends to its object cache.
func (e *encoder) encodeComposite(v Value) {
	for i, cached := range e.objectCache {
		if Equal(v, cached) {
			fmt.Fprintf(&e.out, "r%d", i)
			return
		}
	}

	switch v := v.(type) {
	case Bytes:
		e.writeBytes(v)
	case Array:
		e.writeArray(v)
	case List:
		e.writeList(v)
	case StringMap:
		e.writeStringMap(v)
	case IntMap:
		e.writeIntMap(v)
	case ObjectMap:
		e.writeObjectMap(v)
	case Struct:
		e.writeFields('o', v.Fields)
	case Class:
		e.out.WriteByte('c')
		e.encodeString(v.Name)
		e.writeFieldsBody(v.Fields)
		e.out.WriteByte('g')
	case Enum:
		e.writeEnum(v)
	case Custom:
		e.writeCustom(v)
	default:
		panic(fmt.Sprintf("hxon: unencodable value %T", v))
	}

	e.objectCache = append(e.objectCache, v)
}

func (e *encoder) writeBytes(b Bytes) {
	encoded := base64Encode(b)
	fmt.Fprintf(&e.out, "s%d:%s", len(encoded), encoded)
}

func (e *encoder) writeArray(items Array) {
	e.out.WriteByte('a')
	i := 0
	for i < len(items) {
		if _, ok := items[i].(Null); ok {
			n := 0
			for i < len(items) {
				if _, ok := items[i].(Null); !ok {
					break
				}
				n++
				i++
			}
			fmt.Fprintf(&e.out, "u%d", n)
			continue
		}
		e.encodeValue(items[i])
		i++
	}
	e.out.WriteByte('h')
}

func (e *encoder) writeList(items List) {
	e.out.WriteByte('l')
	for _, item := range items {
		e.encodeValue(item)
	}
	e.out.WriteByte('h')
}

func (e *encoder) writeStringMap(m StringMap) {
	e.out.WriteByte('b')
	for _, entry := range m.Entries {
		e.encodeString(entry.Key)
		e.encodeValue(entry.Value)
	}
	e.out.WriteByte('h')
}

func (e *encoder) writeIntMap(m IntMap) {
	e.out.WriteByte('q')
	for _, entry := range m.Entries {
		e.out.WriteByte(':')
		e.out.WriteString(strconv.FormatInt(int64(entry.Key), 10))
		e.encodeValue(entry.Value)
	}
	e.out.WriteByte('h')
}

func (e *encoder) writeObjectMap(m ObjectMap) {
	e.out.WriteByte('M')
	for _, entry := range m.Entries {
		e.encodeValue(entry.Key)
		e.encodeValue(entry.Value)
	}
	e.out.WriteByte('h')
}

func (e *encoder) writeFieldsBody(fields []StructField) {
	for _, f := range fields {
		e.encodeString(f.Key)
		e.encodeValue(f.Value)
	}
}

func (e *encoder) writeFields(tag byte, fields []StructField) {
	e.out.WriteByte(tag)
	e.writeFieldsBody(fields)
	e.out.WriteByte('g')
}

func (e *encoder) writeEnum(v Enum) {
	e.out.WriteByte('w')
	e.encodeString(v.Name)
	e.encodeString(v.Constructor)
	fmt.Fprintf(&e.out, ":%d", len(v.Fields))
	for _, f := range v.Fields {
		e.encodeValue(f)
	}
}

// writeCustom emits the class name, a standard array of field-name
// strings, and a standard array of field values, mirroring
// original_source's haxe/ser.rs: both inner arrays go through the same
// Array literal/cache path as any other Array value.
func (e *encoder) writeCustom(v Custom) {
	e.out.WriteByte('C')
	e.encodeString(v.Name)

	names := make(Array, len(v.FieldNames))
	for i, n := range v.FieldNames {
		names[i] = String(n)
	}
	e.encodeComposite(names)
	e.encodeComposite(Array(v.FieldValues))

	e.out.WriteByte('g')
}
