package hxon

import (
	"errors"
	"math"
	"testing"
)

func TestEncodeConcreteScenarios(t *testing.T) {
	cases := []struct {
		name string
		in   []Value
		want string
	}{
		{"zero", []Value{Int(0)}, "z"},
		{"positive int", []Value{Int(42)}, "i42"},
		{"negative int", []Value{Int(-1)}, "i-1"},
		{"nan", []Value{NewFloat(math.NaN())}, "k"},
		{"pos inf", []Value{NewFloat(math.Inf(1))}, "p"},
		{"neg inf", []Value{NewFloat(math.Inf(-1))}, "m"},
		{"normal float", []Value{NewFloat(0.5)}, "d0.5"},
		{"percent-encoded string", []Value{String(`!"#`)}, "y9:%21%22%23"},
		{
			"repeated empty string is a back-reference",
			[]Value{String(""), String("")},
			"y0:R0",
		},
		{
			"array null-run compression",
			[]Value{Array{Int(0), Null{}, Null{}, Null{}, Null{}, Null{}, Int(0)}},
			"azu5zh",
		},
		{
			"list has no null-run compression",
			[]Value{List{Int(0), Null{}, Null{}, Null{}, Null{}, Null{}, Int(0)}},
			"lznnnnnzh",
		},
		{
			"int map",
			[]Value{IntMap{Entries: []IntMapEntry{
				{Key: 1, Value: Int(12)},
				{Key: 2, Value: NewFloat(2.71)},
				{Key: 3, Value: Bool(false)},
			}}},
			"q:1i12:2d2.71:3fh",
		},
		{
			"class",
			[]Value{Class{
				Name: "person",
				Fields: []StructField{
					{Key: "name", Value: String("john")},
					{Key: "age", Value: Int(28)},
					{Key: "occupation", Value: String("smith")},
				},
			}},
			"cy6:persony4:namey4:johny3:agei28y10:occupationy5:smithg",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Encode(c.in)
			if got != c.want {
				t.Fatalf("Encode() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestDecodeConcreteScenarios(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []Value
	}{
		{"zero", "z", []Value{Int(0)}},
		{"positive int", "i42", []Value{Int(42)}},
		{"negative int", "i-1", []Value{Int(-1)}},
		{"percent-encoded string", "y9:%21%22%23", []Value{String(`!"#`)}},
		{
			"array null-run compression",
			"azu5zh",
			[]Value{Array{Int(0), Null{}, Null{}, Null{}, Null{}, Null{}, Int(0)}},
		},
		{
			"list has no null-run compression",
			"lznnnnnzh",
			[]Value{List{Int(0), Null{}, Null{}, Null{}, Null{}, Null{}, Int(0)}},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Decode([]byte(c.in))
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(c.want) {
				t.Fatalf("Decode() = %v, want %v", got, c.want)
			}
			for i := range got {
				if !Equal(got[i], c.want[i]) {
					t.Fatalf("Decode()[%d] = %#v, want %#v", i, got[i], c.want[i])
				}
			}
		})
	}
}

func TestDecodeThenEncodeFixedPoint(t *testing.T) {
	texts := []string{
		"z",
		"i42",
		"i-1",
		"k",
		"p",
		"m",
		"d0.5",
		"y9:%21%22%23",
		"y0:R0",
		"azu5zh",
		"lznnnnnzh",
		"q:1i12:2d2.71:3fh",
		"cy6:persony4:namey4:johny3:agei28y10:occupationy5:smithg",
		"oy1:ai1g",
		"wy3:Fooy3:Bar:2i1i2",
		"s4:AAAA",
		"v2024-01-02 03:04:05",
		"Cy4:Nameay1:xhai1hg",
	}

	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			values, err := Decode([]byte(text))
			if err != nil {
				t.Fatalf("Decode(%q): %v", text, err)
			}
			got := Encode(values)
			if got != text {
				t.Fatalf("Encode(Decode(%q)) = %q, want %q", text, got, text)
			}
		})
	}
}

func TestEncodeThenDecodeRoundTrip(t *testing.T) {
	values := []Value{
		Null{},
		Bool(true),
		Bool(false),
		Int(0),
		Int(42),
		Int(-7),
		NewFloat(math.NaN()),
		NewFloat(math.Inf(1)),
		NewFloat(math.Inf(-1)),
		NewFloat(3.14159),
		String("hello world"),
		String(""),
		Date("2024-01-02 03:04:05"),
		Bytes{1, 2, 3, 0, 255},
		Array{Int(1), Null{}, Null{}, Int(2)},
		List{Int(1), Null{}, Null{}, Int(2)},
		StringMap{Entries: []StringMapEntry{{Key: "a", Value: Int(1)}, {Key: "b", Value: Int(2)}}},
		IntMap{Entries: []IntMapEntry{{Key: 1, Value: String("x")}}},
		ObjectMap{Entries: []ObjectMapEntry{{Key: Int(1), Value: String("one")}}},
		Struct{Fields: []StructField{{Key: "x", Value: Int(1)}}},
		Class{Name: "Foo", Fields: []StructField{{Key: "x", Value: Int(1)}}},
		Enum{Name: "Option", Constructor: "Some", Fields: []Value{Int(5)}},
		Enum{Name: "Option", Constructor: "None"},
		Custom{Name: "Widget", FieldNames: []string{"a", "b"}, FieldValues: []Value{Int(1), String("two")}},
	}

	text := Encode(values)
	got, err := Decode([]byte(text))
	if err != nil {
		t.Fatalf("Decode: %v\ntext: %s", err, text)
	}
	if len(got) != len(values) {
		t.Fatalf("got %d values, want %d", len(got), len(values))
	}
	for i := range values {
		if !Equal(got[i], values[i]) {
			t.Fatalf("value %d mismatch: got %#v, want %#v", i, got[i], values[i])
		}
	}
}

func TestStringBackReferenceFidelity(t *testing.T) {
	values := []Value{String("repeat"), Array{String("repeat"), String("repeat")}}
	text := Encode(values)

	// "repeat" should only be spelled out once.
	count := 0
	for i := 0; i+7 <= len(text); i++ {
		if text[i:i+7] == "y6:repe" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one literal spelling of \"repeat\" in %q", text)
	}

	got, err := Decode([]byte(text))
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(got[0], values[0]) || !Equal(got[1], values[1]) {
		t.Fatalf("round trip mismatch: got %#v", got)
	}
}

func TestObjectBackReferenceFidelity(t *testing.T) {
	shared := Struct{Fields: []StructField{{Key: "x", Value: Int(1)}}}
	values := []Value{shared, List{shared, shared}}
	text := Encode(values)

	got, err := Decode([]byte(text))
	if err != nil {
		t.Fatalf("Decode(%q): %v", text, err)
	}
	if !Equal(got[0], shared) {
		t.Fatal("first occurrence mismatch")
	}
	list := got[1].(List)
	if !Equal(list[0], shared) || !Equal(list[1], shared) {
		t.Fatal("back-referenced occurrences mismatch")
	}
}

func TestCustomBackReferencedFieldArrays(t *testing.T) {
	// Two instances of the same Custom class share an identical field-name
	// array; the encoder's object cache emits the second as a back-reference
	// rather than a fresh literal, so the decoder must accept either form
	// when reading a Custom value's two inner arrays.
	values := []Value{
		Custom{Name: "Widget", FieldNames: []string{"a", "b"}, FieldValues: []Value{Int(1), String("one")}},
		Custom{Name: "Widget", FieldNames: []string{"a", "b"}, FieldValues: []Value{Int(2), String("two")}},
	}
	text := Encode(values)

	got, err := Decode([]byte(text))
	if err != nil {
		t.Fatalf("Decode(%q): %v", text, err)
	}
	if len(got) != len(values) {
		t.Fatalf("got %d values, want %d", len(got), len(values))
	}
	for i := range values {
		if !Equal(got[i], values[i]) {
			t.Fatalf("value %d mismatch: got %#v, want %#v", i, got[i], values[i])
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"bad tag", "Q", ErrBadTag},
		{"truncated", "a", ErrTruncated},
		{"truncated string", "y5:ab", ErrBadLength},
		{"bad string ref", "R0", ErrBadRef},
		{"bad object ref", "r0", ErrBadRef},
		{"bad base64", "s4:!!!!", ErrBadBase64},
		{"exception unsupported", "xn", ErrUnsupported},
		{"enum-by-index unsupported", "j", ErrUnsupported},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Decode([]byte(c.in))
			if err == nil {
				t.Fatalf("Decode(%q): expected error", c.in)
			}
			if !errors.Is(err, c.want) {
				t.Fatalf("Decode(%q): got %v, want wrapping %v", c.in, err, c.want)
			}
		})
	}
}

func TestCompareTotalOrder(t *testing.T) {
	nan1 := NewFloat(math.NaN())
	nan2 := NewFloat(math.NaN())
	if Compare(nan1, nan2) != 0 {
		t.Fatal("NaN must compare equal to NaN")
	}

	ordered := []Value{
		Null{},
		Bool(false),
		Bool(true),
		Int(-5),
		Int(5),
		NewFloat(math.NaN()),
		NewFloat(math.Inf(-1)),
		NewFloat(-1.5),
		NewFloat(1.5),
		NewFloat(math.Inf(1)),
		String("a"),
		String("b"),
	}
	for i := 0; i < len(ordered)-1; i++ {
		if Compare(ordered[i], ordered[i+1]) >= 0 {
			t.Fatalf("expected %#v < %#v", ordered[i], ordered[i+1])
		}
	}
}

func TestMultipleTopLevelValues(t *testing.T) {
	got, err := Decode([]byte("i1i2i3"))
	if err != nil {
		t.Fatal(err)
	}
	want := []Value{Int(1), Int(2), Int(3)}
	if len(got) != len(want) {
		t.Fatalf("got %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if !Equal(got[i], want[i]) {
			t.Fatalf("value %d: got %#v, want %#v", i, got[i], want[i])
		}
	}
}
