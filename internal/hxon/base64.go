package hxon

import "encoding/base64"

// base64Encode renders b using the standard alphabet with padding, matching
// the decoder's base64.StdEncoding and spec.md §4.1's "base64 standard
// alphabet with padding".
func base64Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
