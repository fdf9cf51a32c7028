// Package savefile implements the MM2 save-file pipeline: the padded
// XXTEA cipher wraps a `[version]` tag prepended to HXON text encoding a
// list of top-level values (spec.md §4.6).
package savefile

import (
	"fmt"
	"strings"

	"github.com/blang/semver"

	"github.com/0xAdk/mm2-tool/internal/hxon"
)

// Sentinel errors for the version-tag framing around the HXON payload.
var (
	ErrMissingVersionTag = fmt.Errorf("savefile: missing or unterminated [version] tag")
	ErrBadVersion        = fmt.Errorf("savefile: version tag must be a non-empty run of 0-9 and '.'")
)

// SaveFile is a decoded save: the raw version string (the source of truth)
// plus its HXON values. Semver is only ever a best-effort semver.Version;
// a tag that matches the character class but fails strict semver parsing
// (e.g. "4.0") is not an error, it just leaves Semver unset.
type SaveFile struct {
	Version string
	Semver  semver.Version
	HasSemver bool
	Values  []hxon.Value
}

// Decode parses the padded-cipher-decrypted plaintext of a save file.
func Decode(data []byte) (*SaveFile, error) {
	text := string(data)

	version, rest, err := parseVersionTag(text)
	if err != nil {
		return nil, err
	}

	values, err := hxon.Decode([]byte(rest))
	if err != nil {
		return nil, err
	}

	sf := &SaveFile{Version: version, Values: values}
	if v, err := semver.Parse(version); err == nil {
		sf.Semver = v
		sf.HasSemver = true
	}
	return sf, nil
}

// Encode renders a SaveFile back to `[version]hxon` plaintext, ready for
// the padded cipher.
func Encode(sf *SaveFile) string {
	return "[" + sf.Version + "]" + hxon.Encode(sf.Values)
}

// parseVersionTag consumes a leading "[...]" whose interior is a non-empty
// run of ASCII digits and '.', returning the interior and the remainder.
func parseVersionTag(text string) (version string, rest string, err error) {
	if !strings.HasPrefix(text, "[") {
		return "", "", ErrMissingVersionTag
	}
	end := strings.IndexByte(text, ']')
	if end < 0 {
		return "", "", ErrMissingVersionTag
	}
	version = text[1:end]
	if version == "" {
		return "", "", ErrBadVersion
	}
	for i := 0; i < len(version); i++ {
		c := version[i]
		if !(c >= '0' && c <= '9') && c != '.' {
			return "", "", ErrBadVersion
		}
	}
	return version, text[end+1:], nil
}
