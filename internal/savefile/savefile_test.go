package savefile

import (
	"testing"

	"github.com/0xAdk/mm2-tool/internal/hxon"
)

func TestDecodeSpecFixture(t *testing.T) {
	sf, err := Decode([]byte("[4.0.104]n"))
	if err != nil {
		t.Fatal(err)
	}
	if sf.Version != "4.0.104" {
		t.Fatalf("Version = %q, want %q", sf.Version, "4.0.104")
	}
	if !sf.HasSemver {
		t.Fatal("expected 4.0.104 to parse as semver")
	}
	if len(sf.Values) != 1 {
		t.Fatalf("got %d values, want 1", len(sf.Values))
	}
	if !hxon.Equal(sf.Values[0], hxon.Null{}) {
		t.Fatalf("Values[0] = %#v, want Null", sf.Values[0])
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	sf := &SaveFile{
		Version: "4.0.104",
		Values:  []hxon.Value{hxon.Int(1), hxon.String("hi")},
	}
	text := Encode(sf)

	got, err := Decode([]byte(text))
	if err != nil {
		t.Fatal(err)
	}
	if got.Version != sf.Version {
		t.Fatalf("Version = %q, want %q", got.Version, sf.Version)
	}
	if len(got.Values) != len(sf.Values) {
		t.Fatalf("got %d values, want %d", len(got.Values), len(sf.Values))
	}
	for i := range sf.Values {
		if !hxon.Equal(got.Values[i], sf.Values[i]) {
			t.Fatalf("value %d mismatch: got %#v, want %#v", i, got.Values[i], sf.Values[i])
		}
	}
}

func TestVersionNotStrictSemverIsNotAnError(t *testing.T) {
	sf, err := Decode([]byte("[4.0]z"))
	if err != nil {
		t.Fatal(err)
	}
	if sf.Version != "4.0" {
		t.Fatalf("Version = %q, want %q", sf.Version, "4.0")
	}
	if sf.HasSemver {
		t.Fatal("expected \"4.0\" to fail strict semver parsing")
	}
}

func TestMissingVersionTag(t *testing.T) {
	cases := []string{"n", "[1.0n", "4.0]n"}
	for _, c := range cases {
		if _, err := Decode([]byte(c)); err != ErrMissingVersionTag {
			t.Fatalf("Decode(%q) = %v, want ErrMissingVersionTag", c, err)
		}
	}
}

func TestBadVersionCharacters(t *testing.T) {
	if _, err := Decode([]byte("[4.0.0-beta]n")); err != ErrBadVersion {
		t.Fatalf("got %v, want ErrBadVersion", err)
	}
}
