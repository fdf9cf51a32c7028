package xxtea

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := []byte("aj3fk29dl309f845")
	k, err := KeyFromBytes(key)
	if err != nil {
		t.Fatal(err)
	}

	v := []uint32{0xDEADBEEF, 0x12345678, 0, 1}
	orig := append([]uint32(nil), v...)

	if err := Encrypt(v, k); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(bytesFromWords(v), bytesFromWords(orig)) {
		t.Fatal("encryption did not change the input")
	}

	if err := Decrypt(v, k); err != nil {
		t.Fatal(err)
	}
	for i := range v {
		if v[i] != orig[i] {
			t.Fatalf("word %d did not round-trip, got %#x want %#x", i, v[i], orig[i])
		}
	}
}

func TestVectorFromSpec(t *testing.T) {
	key := []byte("aj3fk29dl309f845")
	k, err := KeyFromBytes(key)
	if err != nil {
		t.Fatal(err)
	}

	v := []uint32{0xDEAD, 0xBEEF}
	if err := Encrypt(v, k); err != nil {
		t.Fatal(err)
	}
	if err := Decrypt(v, k); err != nil {
		t.Fatal(err)
	}
	if v[0] != 0xDEAD || v[1] != 0xBEEF {
		t.Fatalf("got %#x %#x, want 0xDEAD 0xBEEF", v[0], v[1])
	}
}

func TestTooShort(t *testing.T) {
	k, _ := KeyFromBytes([]byte("aj3fk29dl309f845"))

	for _, v := range [][]uint32{nil, {1}} {
		if err := Encrypt(v, k); err != ErrTooShort {
			t.Errorf("Encrypt(%v): got %v, want ErrTooShort", v, err)
		}
		if err := Decrypt(v, k); err != ErrTooShort {
			t.Errorf("Decrypt(%v): got %v, want ErrTooShort", v, err)
		}
	}
}

func TestPaddedRoundTrip(t *testing.T) {
	key := []byte("HXl;kjsaf4982097")

	cases := [][]byte{
		[]byte(""),
		[]byte("a"),
		[]byte("ab"),
		[]byte("abc"),
		[]byte("abcd"),
		[]byte("[4.0.104]n"),
		bytes.Repeat([]byte("mm2"), 100),
	}

	for _, b := range cases {
		ct, err := EncryptPadded(b, key)
		if err != nil {
			t.Fatalf("EncryptPadded(%q): %v", b, err)
		}
		if len(ct)%4 != 0 {
			t.Fatalf("ciphertext length %d is not a multiple of 4", len(ct))
		}

		pt, err := DecryptPadded(ct, key)
		if err != nil {
			t.Fatalf("DecryptPadded: %v", err)
		}
		if !bytes.Equal(pt, b) {
			t.Fatalf("round trip mismatch: got %q, want %q", pt, b)
		}
	}
}

func TestPaddedPreservesEmbeddedNuls(t *testing.T) {
	key := []byte("HXl;kjsaf4982097")

	// embedded NULs that aren't the plaintext's trailing bytes are legitimate
	// and must survive the round trip; only the padding NULs EncryptPadded
	// appends after the real data are stripped.
	b := append([]byte("hello\x00\x00\x00"), 'x')

	ct, err := EncryptPadded(b, key)
	if err != nil {
		t.Fatal(err)
	}
	pt, err := DecryptPadded(ct, key)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pt, b) {
		t.Fatalf("got %q, want %q", pt, b)
	}
}

func TestDecryptPaddedBadLength(t *testing.T) {
	key := []byte("HXl;kjsaf4982097")
	_, err := DecryptPadded([]byte{1, 2, 3}, key)
	if err != ErrBadPaddedLength {
		t.Fatalf("got %v, want ErrBadPaddedLength", err)
	}
}

func TestKeyFromBytesRejectsBadLength(t *testing.T) {
	if _, err := KeyFromBytes([]byte("short")); err == nil {
		t.Fatal("expected error for short key")
	}
}
