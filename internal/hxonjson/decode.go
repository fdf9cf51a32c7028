package hxonjson

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/0xAdk/mm2-tool/internal/hxon"
)

func valueFromJSON(data json.RawMessage) (hxon.Value, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	if len(obj) != 1 {
		return nil, fmt.Errorf("hxonjson: expected a single-key tagged object, got %d keys", len(obj))
	}
	for tag, payload := range obj {
		return decodeTagged(tag, payload)
	}
	panic("unreachable")
}

func decodeTagged(tag string, payload json.RawMessage) (hxon.Value, error) {
	switch tag {
	case "Null":
		return hxon.Null{}, nil
	case "Bool":
		var b bool
		if err := json.Unmarshal(payload, &b); err != nil {
			return nil, err
		}
		return hxon.Bool(b), nil
	case "Int":
		var n int32
		if err := json.Unmarshal(payload, &n); err != nil {
			return nil, err
		}
		return hxon.Int(n), nil
	case "Float":
		return decodeFloat(payload)
	case "String":
		var s string
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, err
		}
		return hxon.String(s), nil
	case "Date":
		var s string
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, err
		}
		return hxon.Date(s), nil
	case "Bytes":
		var b []byte
		if err := json.Unmarshal(payload, &b); err != nil {
			return nil, err
		}
		return hxon.Bytes(b), nil
	case "Array":
		items, err := valuesFromJSON(payload)
		if err != nil {
			return nil, err
		}
		return hxon.Array(items), nil
	case "List":
		items, err := valuesFromJSON(payload)
		if err != nil {
			return nil, err
		}
		return hxon.List(items), nil
	case "StringMap":
		entries, err := decodeStringMapEntries(payload)
		if err != nil {
			return nil, err
		}
		return hxon.StringMap{Entries: entries}, nil
	case "IntMap":
		entries, err := decodeIntMapEntries(payload)
		if err != nil {
			return nil, err
		}
		return hxon.IntMap{Entries: entries}, nil
	case "ObjectMap":
		entries, err := decodeObjectMapEntries(payload)
		if err != nil {
			return nil, err
		}
		return hxon.ObjectMap{Entries: entries}, nil
	case "Struct":
		fields, err := decodeFields(payload)
		if err != nil {
			return nil, err
		}
		return hxon.Struct{Fields: fields}, nil
	case "Class":
		var raw struct {
			Name   string          `json:"name"`
			Fields json.RawMessage `json:"fields"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, err
		}
		fields, err := decodeFields(raw.Fields)
		if err != nil {
			return nil, err
		}
		return hxon.Class{Name: raw.Name, Fields: fields}, nil
	case "Enum":
		var raw struct {
			Name        string            `json:"name"`
			Constructor string            `json:"constructor"`
			Fields      []json.RawMessage `json:"fields"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, err
		}
		fields, err := rawValuesFromJSON(raw.Fields)
		if err != nil {
			return nil, err
		}
		return hxon.Enum{Name: raw.Name, Constructor: raw.Constructor, Fields: fields}, nil
	case "Exception":
		inner, err := valueFromJSON(payload)
		if err != nil {
			return nil, err
		}
		return hxon.Exception{Inner: inner}, nil
	case "Custom":
		var raw struct {
			Name        string            `json:"name"`
			FieldNames  []string          `json:"fieldNames"`
			FieldValues []json.RawMessage `json:"fieldValues"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, err
		}
		values, err := rawValuesFromJSON(raw.FieldValues)
		if err != nil {
			return nil, err
		}
		return hxon.Custom{Name: raw.Name, FieldNames: raw.FieldNames, FieldValues: values}, nil
	default:
		return nil, fmt.Errorf("hxonjson: unrecognized tag %q", tag)
	}
}

func valuesFromJSON(data json.RawMessage) ([]hxon.Value, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return rawValuesFromJSON(raw)
}

func rawValuesFromJSON(raw []json.RawMessage) ([]hxon.Value, error) {
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

func decodeFields(data json.RawMessage) ([]hxon.StructField, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	fields := make([]hxon.StructField, len(raw))
	for i, r := range raw {
		var p [2]json.RawMessage
		if err := json.Unmarshal(r, &p); err != nil {
			return nil, err
		}
		var key string
		if err := json.Unmarshal(p[0], &key); err != nil {
			return nil, err
		}
		value, err := valueFromJSON(p[1])
		if err != nil {
			return nil, err
		}
		fields[i] = hxon.StructField{Key: key, Value: value}
	}
	return fields, nil
}

func decodeStringMapEntries(data json.RawMessage) ([]hxon.StringMapEntry, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	entries := make([]hxon.StringMapEntry, len(raw))
	for i, r := range raw {
		var p [2]json.RawMessage
		if err := json.Unmarshal(r, &p); err != nil {
			return nil, err
		}
		var key string
		if err := json.Unmarshal(p[0], &key); err != nil {
			return nil, err
		}
		value, err := valueFromJSON(p[1])
		if err != nil {
			return nil, err
		}
		entries[i] = hxon.StringMapEntry{Key: key, Value: value}
	}
	return entries, nil
}

func decodeIntMapEntries(data json.RawMessage) ([]hxon.IntMapEntry, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	entries := make([]hxon.IntMapEntry, len(raw))
	for i, r := range raw {
		var p [2]json.RawMessage
		if err := json.Unmarshal(r, &p); err != nil {
			return nil, err
		}
		var key int32
		if err := json.Unmarshal(p[0], &key); err != nil {
			return nil, err
		}
		value, err := valueFromJSON(p[1])
		if err != nil {
			return nil, err
		}
		entries[i] = hxon.IntMapEntry{Key: key, Value: value}
	}
	return entries, nil
}

func decodeObjectMapEntries(data json.RawMessage) ([]hxon.ObjectMapEntry, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	entries := make([]hxon.ObjectMapEntry, len(raw))
	for i, r := range raw {
		var p [2]json.RawMessage
		if err := json.Unmarshal(r, &p); err != nil {
			return nil, err
		}
		key, err := valueFromJSON(p[0])
		if err != nil {
			return nil, err
		}
		value, err := valueFromJSON(p[1])
		if err != nil {
			return nil, err
		}
		entries[i] = hxon.ObjectMapEntry{Key: key, Value: value}
	}
	return entries, nil
}

func decodeFloat(data json.RawMessage) (hxon.Value, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if _, ok := raw["Nan"]; ok {
		return hxon.NewFloat(math.NaN()), nil
	}
	if _, ok := raw["PositiveInfinity"]; ok {
		return hxon.NewFloat(math.Inf(1)), nil
	}
	if _, ok := raw["NegativeInfinity"]; ok {
		return hxon.NewFloat(math.Inf(-1)), nil
	}
	if n, ok := raw["Normal"]; ok {
		var f float64
		if err := json.Unmarshal(n, &f); err != nil {
			return nil, err
		}
		return hxon.NewFloat(f), nil
	}
	return nil, fmt.Errorf("hxonjson: Float payload has none of Nan/PositiveInfinity/NegativeInfinity/Normal")
}
