// Package hxonjson is the optional JSON sink/source for hxon.Value
// (spec.md §6): a 1:1 dual of the HXON textual form, built on the standard
// library's encoding/json, matching the teacher's own wire-protocol choice
// of plain stdlib JSON (protocol.go) over a third-party codec. Every
// variant serializes as a single-key tagged object; map-like variants
// serialize as arrays of [key, value] pairs so insertion order survives a
// round trip; Float serializes as the four-variant sum.
package hxonjson

import (
	"encoding/json"
	"fmt"

	"github.com/0xAdk/mm2-tool/internal/hxon"
)

// Marshal renders values as a JSON array of tagged Value objects.
func Marshal(values []hxon.Value) ([]byte, error) {
	return json.Marshal(valuesToJSON(values))
}

// MarshalIndent is Marshal with two-space indentation, for `--format json`
// output meant to be read by a person as well as re-ingested.
func MarshalIndent(values []hxon.Value) ([]byte, error) {
	return json.MarshalIndent(valuesToJSON(values), "", "  ")
}

// Unmarshal parses a JSON array of tagged Value objects produced by
// Marshal/MarshalIndent.
func Unmarshal(data []byte) ([]hxon.Value, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	values := make([]hxon.Value, len(raw))
	for i, r := range raw {
		v, err := valueFromJSON(r)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func valuesToJSON(values []hxon.Value) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = valueToJSON(v)
	}
	return out
}

type pair [2]interface{}

func (p pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{p[0], p[1]})
}

func tagged(name string, payload interface{}) map[string]interface{} {
	return map[string]interface{}{name: payload}
}

func valueToJSON(v hxon.Value) interface{} {
	switch v := v.(type) {
	case hxon.Null:
		return tagged("Null", nil)
	case hxon.Bool:
		return tagged("Bool", bool(v))
	case hxon.Int:
		return tagged("Int", int32(v))
	case hxon.Float:
		return tagged("Float", floatToJSON(v))
	case hxon.String:
		return tagged("String", string(v))
	case hxon.Date:
		return tagged("Date", string(v))
	case hxon.Bytes:
		return tagged("Bytes", []byte(v))
	case hxon.Array:
		return tagged("Array", valuesToJSON([]hxon.Value(v)))
	case hxon.List:
		return tagged("List", valuesToJSON([]hxon.Value(v)))
	case hxon.StringMap:
		entries := make([]pair, len(v.Entries))
		for i, e := range v.Entries {
			entries[i] = pair{e.Key, valueToJSON(e.Value)}
		}
		return tagged("StringMap", entries)
	case hxon.IntMap:
		entries := make([]pair, len(v.Entries))
		for i, e := range v.Entries {
			entries[i] = pair{e.Key, valueToJSON(e.Value)}
		}
		return tagged("IntMap", entries)
	case hxon.ObjectMap:
		entries := make([]pair, len(v.Entries))
		for i, e := range v.Entries {
			entries[i] = pair{valueToJSON(e.Key), valueToJSON(e.Value)}
		}
		return tagged("ObjectMap", entries)
	case hxon.Struct:
		return tagged("Struct", fieldsToJSON(v.Fields))
	case hxon.Class:
		return tagged("Class", map[string]interface{}{
			"name":   v.Name,
			"fields": fieldsToJSON(v.Fields),
		})
	case hxon.Enum:
		return tagged("Enum", map[string]interface{}{
			"name":        v.Name,
			"constructor": v.Constructor,
			"fields":      valuesToJSON(v.Fields),
		})
	case hxon.Exception:
		return tagged("Exception", valueToJSON(v.Inner))
	case hxon.Custom:
		return tagged("Custom", map[string]interface{}{
			"name":        v.Name,
			"fieldNames":  v.FieldNames,
			"fieldValues": valuesToJSON(v.FieldValues),
		})
	default:
		panic(fmt.Sprintf("hxonjson: unencodable value %T", v))
	}
}

func fieldsToJSON(fields []hxon.StructField) []pair {
	out := make([]pair, len(fields))
	for i, f := range fields {
		out[i] = pair{f.Key, valueToJSON(f.Value)}
	}
	return out
}

// floatJSON is the four-variant sum spec.md §6 requires for Float.
type floatJSON struct {
	NaN             *struct{} `json:"Nan,omitempty"`
	PositiveInfinity *struct{} `json:"PositiveInfinity,omitempty"`
	NegativeInfinity *struct{} `json:"NegativeInfinity,omitempty"`
	Normal          *float64  `json:"Normal,omitempty"`
}

func floatToJSON(f hxon.Float) floatJSON {
	switch f.Class {
	case hxon.FloatNaN:
		return floatJSON{NaN: &struct{}{}}
	case hxon.FloatPositiveInfinity:
		return floatJSON{PositiveInfinity: &struct{}{}}
	case hxon.FloatNegativeInfinity:
		return floatJSON{NegativeInfinity: &struct{}{}}
	default:
		n := f.Normal
		return floatJSON{Normal: &n}
	}
}
