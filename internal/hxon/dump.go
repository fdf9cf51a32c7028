package hxon

import (
	"fmt"
	"io"
	"strings"
)

// Dump renders values as an indented, human-readable tree (SPEC_FULL.md
// §10.2's "debug dump" format). It is not meant to round-trip; it exists so
// a save file can be eyeballed without going through JSON.
func Dump(w io.Writer, values []Value) error {
	for i, v := range values {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, dumpValue(v, 0)); err != nil {
			return err
		}
	}
	if len(values) > 0 {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func dumpValue(v Value, depth int) string {
	switch v := v.(type) {
	case Null:
		return "null"
	case Bool:
		return fmt.Sprintf("%v", bool(v))
	case Int:
		return fmt.Sprintf("%d", int32(v))
	case Float:
		switch v.Class {
		case FloatNaN:
			return "NaN"
		case FloatPositiveInfinity:
			return "inf"
		case FloatNegativeInfinity:
			return "-inf"
		default:
			return formatFloat(v.Normal)
		}
	case String:
		return fmt.Sprintf("%q", string(v))
	case Date:
		return fmt.Sprintf("Date(%s)", string(v))
	case Bytes:
		return fmt.Sprintf("Bytes(%d bytes)", len(v))
	case Array:
		return dumpList("Array", []Value(v), depth)
	case List:
		return dumpList("List", []Value(v), depth)
	case StringMap:
		return dumpStringMap(v, depth)
	case IntMap:
		return dumpIntMap(v, depth)
	case ObjectMap:
		return dumpObjectMap(v, depth)
	case Struct:
		return dumpFields("struct", v.Fields, depth)
	case Class:
		return dumpFields("class "+v.Name, v.Fields, depth)
	case Enum:
		return dumpEnum(v, depth)
	case Exception:
		return "Exception(" + dumpValue(v.Inner, depth) + ")"
	case Custom:
		return dumpCustom(v, depth)
	default:
		return fmt.Sprintf("<unknown %T>", v)
	}
}

func indent(depth int) string { return strings.Repeat("    ", depth) }

func dumpList(label string, items []Value, depth int) string {
	if len(items) == 0 {
		return label + " []"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s [\n", label)
	for _, item := range items {
		fmt.Fprintf(&b, "%s%s,\n", indent(depth+1), dumpValue(item, depth+1))
	}
	fmt.Fprintf(&b, "%s]", indent(depth))
	return b.String()
}

func dumpFields(label string, fields []StructField, depth int) string {
	if len(fields) == 0 {
		return label + " {}"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s {\n", label)
	for _, f := range fields {
		fmt.Fprintf(&b, "%s%s: %s,\n", indent(depth+1), f.Key, dumpValue(f.Value, depth+1))
	}
	fmt.Fprintf(&b, "%s}", indent(depth))
	return b.String()
}

func dumpStringMap(m StringMap, depth int) string {
	if len(m.Entries) == 0 {
		return "StringMap {}"
	}
	var b strings.Builder
	b.WriteString("StringMap {\n")
	for _, e := range m.Entries {
		fmt.Fprintf(&b, "%s%q: %s,\n", indent(depth+1), e.Key, dumpValue(e.Value, depth+1))
	}
	fmt.Fprintf(&b, "%s}", indent(depth))
	return b.String()
}

func dumpIntMap(m IntMap, depth int) string {
	if len(m.Entries) == 0 {
		return "IntMap {}"
	}
	var b strings.Builder
	b.WriteString("IntMap {\n")
	for _, e := range m.Entries {
		fmt.Fprintf(&b, "%s%d: %s,\n", indent(depth+1), e.Key, dumpValue(e.Value, depth+1))
	}
	fmt.Fprintf(&b, "%s}", indent(depth))
	return b.String()
}

func dumpObjectMap(m ObjectMap, depth int) string {
	if len(m.Entries) == 0 {
		return "ObjectMap {}"
	}
	var b strings.Builder
	b.WriteString("ObjectMap {\n")
	for _, e := range m.Entries {
		fmt.Fprintf(&b, "%s%s: %s,\n", indent(depth+1), dumpValue(e.Key, depth+1), dumpValue(e.Value, depth+1))
	}
	fmt.Fprintf(&b, "%s}", indent(depth))
	return b.String()
}

func dumpEnum(v Enum, depth int) string {
	if len(v.Fields) == 0 {
		return fmt.Sprintf("%s.%s", v.Name, v.Constructor)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s.%s(\n", v.Name, v.Constructor)
	for _, f := range v.Fields {
		fmt.Fprintf(&b, "%s%s,\n", indent(depth+1), dumpValue(f, depth+1))
	}
	fmt.Fprintf(&b, "%s)", indent(depth))
	return b.String()
}

func dumpCustom(v Custom, depth int) string {
	if len(v.FieldNames) == 0 {
		return "class " + v.Name + " {}"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "class %s {\n", v.Name)
	for i, name := range v.FieldNames {
		fmt.Fprintf(&b, "%s%s: %s,\n", indent(depth+1), name, dumpValue(v.FieldValues[i], depth+1))
	}
	fmt.Fprintf(&b, "%s}", indent(depth))
	return b.String()
}
