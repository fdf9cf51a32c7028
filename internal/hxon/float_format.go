package hxon

import "strconv"

// parseFloat parses the base-10 decimal representation HXON uses for the
// `d` tag's payload.
func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, wrapErr(ErrBadLength, 0, "invalid float literal "+strconv.Quote(s))
	}
	return f, nil
}

// formatFloat renders f using the shortest decimal representation that
// round-trips to the same float64, matching the spec's concrete scenario
// Float(0.5) => "d0.5".
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
