package hxon

import "strings"

// isUnreserved reports whether b can appear literally in an HXON string
// literal without percent-encoding: ASCII letters, digits, '-', '.', '_'
// (spec.md §4.1).
func isUnreserved(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '.' || b == '_':
		return true
	default:
		return false
	}
}

const upperHex = "0123456789ABCDEF"

// percentEncode percent-encodes every byte of s outside the unreserved set,
// using upper-case hex digits as required by spec.md §4.1. '\'' and '*' are
// outside the unreserved set, so the encoder always emits them as %27 and
// %2A.
func percentEncode(s string) string {
	var needsEscape bool
	for i := 0; i < len(s); i++ {
		if !isUnreserved(s[i]) {
			needsEscape = true
			break
		}
	}
	if !needsEscape {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0xf])
	}
	return b.String()
}

// percentDecode reverses percentEncode. It accepts '\'' and '*' both
// literally and percent-encoded (spec.md §9's open question): any byte other
// than '%' is kept as is, and any "%HH" triplet is decoded regardless of
// what the corresponding literal byte would have been.
func percentDecode(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			out = append(out, s[i])
			continue
		}
		if i+2 >= len(s) {
			return nil, ErrBadUTF8
		}
		hi, ok1 := hexVal(s[i+1])
		lo, ok2 := hexVal(s[i+2])
		if !ok1 || !ok2 {
			return nil, ErrBadUTF8
		}
		out = append(out, hi<<4|lo)
		i += 2
	}
	return out, nil
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
