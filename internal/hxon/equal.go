package hxon

import "bytes"

// Equal reports structural equality of a and b: the same variant with
// recursively equal payloads, mapping order included (spec.md §3.1's
// invariant that round-trip equality is order-sensitive).
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	case Int:
		b, ok := b.(Int)
		return ok && a == b
	case Float:
		b, ok := b.(Float)
		return ok && floatEqual(a, b)
	case String:
		b, ok := b.(String)
		return ok && a == b
	case Date:
		b, ok := b.(Date)
		return ok && a == b
	case Bytes:
		b, ok := b.(Bytes)
		return ok && bytes.Equal(a, b)
	case Array:
		b, ok := b.(Array)
		return ok && valueSliceEqual(a, b)
	case List:
		b, ok := b.(List)
		return ok && valueSliceEqual(a, b)
	case StringMap:
		b, ok := b.(StringMap)
		return ok && stringMapEqual(a, b)
	case IntMap:
		b, ok := b.(IntMap)
		return ok && intMapEqual(a, b)
	case ObjectMap:
		b, ok := b.(ObjectMap)
		return ok && objectMapEqual(a, b)
	case Struct:
		b, ok := b.(Struct)
		return ok && fieldsEqual(a.Fields, b.Fields)
	case Class:
		b, ok := b.(Class)
		return ok && a.Name == b.Name && fieldsEqual(a.Fields, b.Fields)
	case Enum:
		b, ok := b.(Enum)
		return ok && a.Name == b.Name && a.Constructor == b.Constructor && valueSliceEqual(a.Fields, b.Fields)
	case Exception:
		b, ok := b.(Exception)
		return ok && Equal(a.Inner, b.Inner)
	case Custom:
		b, ok := b.(Custom)
		return ok && customEqual(a, b)
	default:
		return false
	}
}

func floatEqual(a, b Float) bool {
	if a.Class != b.Class {
		return false
	}
	if a.Class != FloatNormal {
		return true
	}
	return a.Normal == b.Normal
}

func valueSliceEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func fieldsEqual(a, b []StructField) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Key != b[i].Key || !Equal(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

func stringMapEqual(a, b StringMap) bool {
	if len(a.Entries) != len(b.Entries) {
		return false
	}
	for i := range a.Entries {
		if a.Entries[i].Key != b.Entries[i].Key || !Equal(a.Entries[i].Value, b.Entries[i].Value) {
			return false
		}
	}
	return true
}

func intMapEqual(a, b IntMap) bool {
	if len(a.Entries) != len(b.Entries) {
		return false
	}
	for i := range a.Entries {
		if a.Entries[i].Key != b.Entries[i].Key || !Equal(a.Entries[i].Value, b.Entries[i].Value) {
			return false
		}
	}
	return true
}

func objectMapEqual(a, b ObjectMap) bool {
	if len(a.Entries) != len(b.Entries) {
		return false
	}
	for i := range a.Entries {
		if !Equal(a.Entries[i].Key, b.Entries[i].Key) || !Equal(a.Entries[i].Value, b.Entries[i].Value) {
			return false
		}
	}
	return true
}

func customEqual(a, b Custom) bool {
	if a.Name != b.Name || len(a.FieldNames) != len(b.FieldNames) {
		return false
	}
	for i := range a.FieldNames {
		if a.FieldNames[i] != b.FieldNames[i] {
			return false
		}
	}
	return valueSliceEqual(a.FieldValues, b.FieldValues)
}
