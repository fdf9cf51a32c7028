package hxon

import (
	"encoding/base64"
	"math"
	"unicode/utf8"
)

// Decode parses a complete in-memory UTF-8 buffer containing zero or more
// concatenated top-level HXON values (spec.md §4.2) and returns them in
// order. The two back-reference caches (spec.md §3.2) live only for the
// duration of this call.
func Decode(data []byte) ([]Value, error) {
	d := &decoder{data: data}

	var values []Value
	for d.pos < len(d.data) {
		v, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

type decoder struct {
	data    []byte
	pos     int
	strings []string
	objects []Value
}

func (d *decoder) eof() bool { return d.pos >= len(d.data) }

func (d *decoder) peek() (byte, bool) {
	if d.eof() {
		return 0, false
	}
	return d.data[d.pos], true
}

func (d *decoder) take(n int) ([]byte, error) {
	if d.pos+n > len(d.data) {
		return nil, wrapErr(ErrTruncated, d.pos, "")
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) expect(c byte) error {
	b, ok := d.peek()
	if !ok {
		return wrapErr(ErrTruncated, d.pos, "")
	}
	if b != c {
		return wrapErr(ErrBadTag, d.pos, "unexpected byte")
	}
	d.pos++
	return nil
}

// decUint parses a maximal run of ASCII digits as an unsigned decimal.
func (d *decoder) decUint() (int, error) {
	start := d.pos
	for d.pos < len(d.data) && isDigit(d.data[d.pos]) {
		d.pos++
	}
	if d.pos == start {
		return 0, wrapErr(ErrBadLength, d.pos, "expected digits")
	}
	n := 0
	for _, c := range d.data[start:d.pos] {
		n = n*10 + int(c-'0')
	}
	return n, nil
}

// decInt parses an optionally '-'-prefixed maximal run of digits.
func (d *decoder) decInt() (int32, error) {
	neg := false
	if b, ok := d.peek(); ok && b == '-' {
		neg = true
		d.pos++
	}
	start := d.pos
	for d.pos < len(d.data) && isDigit(d.data[d.pos]) {
		d.pos++
	}
	if d.pos == start {
		return 0, wrapErr(ErrBadLength, d.pos, "expected digits")
	}
	var n int64
	for _, c := range d.data[start:d.pos] {
		n = n*10 + int64(c-'0')
	}
	if neg {
		n = -n
	}
	return int32(n), nil
}

// decFloat parses a maximal run of digits/sign/decimal-point/exponent
// characters and interprets them as a base-10 float literal.
func (d *decoder) decFloat() (float64, error) {
	start := d.pos
	if b, ok := d.peek(); ok && (b == '-' || b == '+') {
		d.pos++
	}
	for d.pos < len(d.data) {
		c := d.data[d.pos]
		if isDigit(c) || c == '.' || c == 'e' || c == 'E' ||
			((c == '+' || c == '-') && d.pos > start && (d.data[d.pos-1] == 'e' || d.data[d.pos-1] == 'E')) {
			d.pos++
			continue
		}
		break
	}
	if d.pos == start {
		return 0, wrapErr(ErrBadLength, d.pos, "expected float literal")
	}
	f, err := parseFloat(string(d.data[start:d.pos]))
	if de, ok := err.(*decodeError); ok {
		de.offset = start
	}
	return f, err
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (d *decoder) decodeValue() (Value, error) {
	tag, ok := d.peek()
	if !ok {
		return nil, wrapErr(ErrTruncated, d.pos, "")
	}

	switch tag {
	case 'n':
		d.pos++
		return Null{}, nil
	case 't':
		d.pos++
		return Bool(true), nil
	case 'f':
		d.pos++
		return Bool(false), nil
	case 'z':
		d.pos++
		return Int(0), nil
	case 'i':
		d.pos++
		n, err := d.decInt()
		if err != nil {
			return nil, err
		}
		return Int(n), nil
	case 'd':
		d.pos++
		f, err := d.decFloat()
		if err != nil {
			return nil, err
		}
		return NewFloat(f), nil
	case 'k':
		d.pos++
		return NewFloat(math.NaN()), nil
	case 'p':
		d.pos++
		return NewFloat(math.Inf(1)), nil
	case 'm':
		d.pos++
		return NewFloat(math.Inf(-1)), nil
	case 'y':
		return d.decodeStringLiteral()
	case 'R':
		return d.decodeStringRef()
	case 'r':
		return d.decodeObjectRef()
	case 'v':
		return d.decodeDate()
	case 's':
		return d.decodeBytes()
	case 'a':
		return d.decodeArray()
	case 'l':
		return d.decodeList()
	case 'b':
		return d.decodeStringMap()
	case 'q':
		return d.decodeIntMap()
	case 'M':
		return d.decodeObjectMap()
	case 'o':
		return d.decodeStruct()
	case 'c':
		return d.decodeClass()
	case 'w':
		return d.decodeEnum()
	case 'C':
		return d.decodeCustom()
	case 'x':
		return nil, wrapErr(ErrUnsupported, d.pos, "Exception (tag 'x') decoding is not implemented")
	case 'j':
		return nil, wrapErr(ErrUnsupported, d.pos, "enum-by-index (tag 'j') decoding is not implemented")
	default:
		return nil, wrapErr(ErrBadTag, d.pos, "")
	}
}

// decodeString parses either a string literal or a string back-reference,
// without caching it again if it was a reference.
func (d *decoder) decodeString() (string, error) {
	tag, ok := d.peek()
	if !ok {
		return "", wrapErr(ErrTruncated, d.pos, "")
	}
	switch tag {
	case 'y':
		v, err := d.decodeStringLiteral()
		if err != nil {
			return "", err
		}
		return string(v.(String)), nil
	case 'R':
		v, err := d.decodeStringRef()
		if err != nil {
			return "", err
		}
		return string(v.(String)), nil
	default:
		return "", wrapErr(ErrBadTag, d.pos, "expected string")
	}
}

func (d *decoder) decodeStringLiteral() (Value, error) {
	if err := d.expect('y'); err != nil {
		return nil, err
	}
	length, err := d.decUint()
	if err != nil {
		return nil, err
	}
	if err := d.expect(':'); err != nil {
		return nil, err
	}
	raw, err := d.take(length)
	if err != nil {
		return nil, wrapErr(ErrBadLength, d.pos, "string literal shorter than declared length")
	}
	decoded, err := percentDecode(string(raw))
	if err != nil {
		return nil, wrapErr(ErrBadUTF8, d.pos, "")
	}
	if !utf8.Valid(decoded) {
		return nil, wrapErr(ErrBadUTF8, d.pos, "")
	}
	s := string(decoded)
	d.strings = append(d.strings, s)
	return String(s), nil
}

func (d *decoder) decodeStringRef() (Value, error) {
	if err := d.expect('R'); err != nil {
		return nil, err
	}
	idx, err := d.decUint()
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(d.strings) {
		return nil, wrapErr(ErrBadRef, d.pos, "string cache index out of range")
	}
	return String(d.strings[idx]), nil
}

func (d *decoder) decodeObjectRef() (Value, error) {
	if err := d.expect('r'); err != nil {
		return nil, err
	}
	idx, err := d.decUint()
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(d.objects) {
		return nil, wrapErr(ErrBadRef, d.pos, "object cache index out of range")
	}
	return d.objects[idx], nil
}

func (d *decoder) decodeDate() (Value, error) {
	if err := d.expect('v'); err != nil {
		return nil, err
	}
	raw, err := d.take(19)
	if err != nil {
		return nil, wrapErr(ErrTruncated, d.pos, "date literal must be 19 characters")
	}
	return Date(raw), nil
}

func (d *decoder) decodeBytes() (Value, error) {
	if err := d.expect('s'); err != nil {
		return nil, err
	}
	length, err := d.decUint()
	if err != nil {
		return nil, err
	}
	if err := d.expect(':'); err != nil {
		return nil, err
	}
	raw, err := d.take(length)
	if err != nil {
		return nil, wrapErr(ErrBadLength, d.pos, "bytes literal shorter than declared length")
	}
	decoded, err := base64.StdEncoding.DecodeString(string(raw))
	if err != nil {
		return nil, wrapErr(ErrBadBase64, d.pos, err.Error())
	}
	obj := Bytes(decoded)
	d.objects = append(d.objects, obj)
	return obj, nil
}

func (d *decoder) decodeArray() (Value, error) {
	if err := d.expect('a'); err != nil {
		return nil, err
	}
	var items []Value
	for {
		b, ok := d.peek()
		if !ok {
			return nil, wrapErr(ErrTruncated, d.pos, "unterminated array")
		}
		if b == 'h' {
			d.pos++
			break
		}
		if b == 'u' {
			d.pos++
			n, err := d.decUint()
			if err != nil {
				return nil, err
			}
			for i := 0; i < n; i++ {
				items = append(items, Null{})
			}
			continue
		}
		item, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	obj := Array(items)
	d.objects = append(d.objects, obj)
	return obj, nil
}

func (d *decoder) decodeList() (Value, error) {
	if err := d.expect('l'); err != nil {
		return nil, err
	}
	var items []Value
	for {
		b, ok := d.peek()
		if !ok {
			return nil, wrapErr(ErrTruncated, d.pos, "unterminated list")
		}
		if b == 'h' {
			d.pos++
			break
		}
		item, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	obj := List(items)
	d.objects = append(d.objects, obj)
	return obj, nil
}

func (d *decoder) decodeStringMap() (Value, error) {
	if err := d.expect('b'); err != nil {
		return nil, err
	}
	var entries []StringMapEntry
	for {
		b, ok := d.peek()
		if !ok {
			return nil, wrapErr(ErrTruncated, d.pos, "unterminated string map")
		}
		if b == 'h' {
			d.pos++
			break
		}
		key, err := d.decodeString()
		if err != nil {
			return nil, err
		}
		value, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		entries = append(entries, StringMapEntry{Key: key, Value: value})
	}
	obj := StringMap{Entries: entries}
	d.objects = append(d.objects, obj)
	return obj, nil
}

func (d *decoder) decodeIntMap() (Value, error) {
	if err := d.expect('q'); err != nil {
		return nil, err
	}
	var entries []IntMapEntry
	for {
		b, ok := d.peek()
		if !ok {
			return nil, wrapErr(ErrTruncated, d.pos, "unterminated int map")
		}
		if b == 'h' {
			d.pos++
			break
		}
		if err := d.expect(':'); err != nil {
			return nil, err
		}
		key, err := d.decInt()
		if err != nil {
			return nil, err
		}
		value, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		entries = append(entries, IntMapEntry{Key: key, Value: value})
	}
	obj := IntMap{Entries: entries}
	d.objects = append(d.objects, obj)
	return obj, nil
}

func (d *decoder) decodeObjectMap() (Value, error) {
	if err := d.expect('M'); err != nil {
		return nil, err
	}
	var entries []ObjectMapEntry
	for {
		b, ok := d.peek()
		if !ok {
			return nil, wrapErr(ErrTruncated, d.pos, "unterminated object map")
		}
		if b == 'h' {
			d.pos++
			break
		}
		key, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		value, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ObjectMapEntry{Key: key, Value: value})
	}
	obj := ObjectMap{Entries: entries}
	d.objects = append(d.objects, obj)
	return obj, nil
}

func (d *decoder) decodeFields(terminator byte) ([]StructField, error) {
	var fields []StructField
	for {
		b, ok := d.peek()
		if !ok {
			return nil, wrapErr(ErrTruncated, d.pos, "unterminated field list")
		}
		if b == terminator {
			d.pos++
			break
		}
		key, err := d.decodeString()
		if err != nil {
			return nil, err
		}
		value, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		fields = append(fields, StructField{Key: key, Value: value})
	}
	return fields, nil
}

func (d *decoder) decodeStruct() (Value, error) {
	if err := d.expect('o'); err != nil {
		return nil, err
	}
	fields, err := d.decodeFields('g')
	if err != nil {
		return nil, err
	}
	obj := Struct{Fields: fields}
	d.objects = append(d.objects, obj)
	return obj, nil
}

func (d *decoder) decodeClass() (Value, error) {
	if err := d.expect('c'); err != nil {
		return nil, err
	}
	name, err := d.decodeString()
	if err != nil {
		return nil, err
	}
	fields, err := d.decodeFields('g')
	if err != nil {
		return nil, err
	}
	obj := Class{Name: name, Fields: fields}
	d.objects = append(d.objects, obj)
	return obj, nil
}

func (d *decoder) decodeEnum() (Value, error) {
	if err := d.expect('w'); err != nil {
		return nil, err
	}
	name, err := d.decodeString()
	if err != nil {
		return nil, err
	}
	constructor, err := d.decodeString()
	if err != nil {
		return nil, err
	}
	if err := d.expect(':'); err != nil {
		return nil, err
	}
	arity, err := d.decUint()
	if err != nil {
		return nil, err
	}
	fields := make([]Value, 0, arity)
	for i := 0; i < arity; i++ {
		v, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		fields = append(fields, v)
	}
	obj := Enum{Name: name, Constructor: constructor, Fields: fields}
	d.objects = append(d.objects, obj)
	return obj, nil
}

func (d *decoder) decodeCustom() (Value, error) {
	if err := d.expect('C'); err != nil {
		return nil, err
	}
	name, err := d.decodeString()
	if err != nil {
		return nil, err
	}

	fieldNamesVal, err := d.decodeValue()
	if err != nil {
		return nil, err
	}
	fieldNameValues, ok := fieldNamesVal.(Array)
	if !ok {
		return nil, wrapErr(ErrBadTag, d.pos, "custom field-name slot must be an array")
	}
	fieldNames := make([]string, len(fieldNameValues))
	for i, v := range fieldNameValues {
		s, ok := v.(String)
		if !ok {
			return nil, wrapErr(ErrBadTag, d.pos, "custom field-name array must contain strings")
		}
		fieldNames[i] = string(s)
	}

	fieldValuesVal, err := d.decodeValue()
	if err != nil {
		return nil, err
	}
	fieldValuesArr, ok := fieldValuesVal.(Array)
	if !ok {
		return nil, wrapErr(ErrBadTag, d.pos, "custom field-value slot must be an array")
	}
	fieldValues := []Value(fieldValuesArr)

	if len(fieldNames) != len(fieldValues) {
		return nil, wrapErr(ErrBadLength, d.pos, "custom field-name/value arrays differ in length")
	}

	if err := d.expect('g'); err != nil {
		return nil, err
	}

	obj := Custom{Name: name, FieldNames: fieldNames, FieldValues: fieldValues}
	d.objects = append(d.objects, obj)
	return obj, nil
}
