package hxon

import (
	"errors"
	"fmt"
)

// Sentinel decode errors (spec.md §4.2, §7). Use errors.Is against these;
// the error returned from Decode wraps one of them with a byte offset.
var (
	ErrTruncated   = errors.New("hxon: truncated input")
	ErrBadTag      = errors.New("hxon: unrecognized tag")
	ErrBadLength   = errors.New("hxon: length prefix disagrees with payload")
	ErrBadRef      = errors.New("hxon: back-reference index out of range")
	ErrBadUTF8     = errors.New("hxon: percent-decoded bytes are not valid UTF-8")
	ErrBadBase64   = errors.New("hxon: invalid base64 payload")
	ErrUnsupported = errors.New("hxon: unsupported tag")
)

// decodeError wraps one of the sentinels above with the byte offset at
// which it was detected, so CLI error output can point at the input.
type decodeError struct {
	offset int
	detail string
	err    error
}

func (e *decodeError) Error() string {
	if e.detail == "" {
		return fmt.Sprintf("%s at offset %d", e.err, e.offset)
	}
	return fmt.Sprintf("%s at offset %d: %s", e.err, e.offset, e.detail)
}

func (e *decodeError) Unwrap() error { return e.err }

func wrapErr(err error, offset int, detail string) error {
	return &decodeError{offset: offset, detail: detail, err: err}
}
