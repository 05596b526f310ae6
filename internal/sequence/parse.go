package sequence

import (
	"strconv"
)

// ParseCount converts the caller's text into a term count.
//
// The whole string must be an optionally signed decimal integer that fits in
// 32 bits; surrounding whitespace or trailing garbage is rejected. Negative
// values parse but are rejected as well. Zero is valid.
func ParseCount(raw string) (int, error) {
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, invalidCount(strconv.Quote(raw) + " is not an integer term count")
	}
	if n < 0 {
		return 0, invalidCount("term count must be non-negative, got " + raw)
	}
	return int(n), nil
}
