package mm2cli

import "fmt"

// Sentinel CLI-layer errors (not produced by internal/xxtea, internal/hxon,
// or internal/savefile, which define their own).
var (
	ErrBadKeyLength   = fmt.Errorf("key needs to be 16 bytes long")
	ErrFormatRequired = fmt.Errorf("a format is required when serializing")
)
