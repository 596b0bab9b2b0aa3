// Package common holds helpers shared by the CLI actions.
package common

import "strings"

// NormalizeLetter maps the --letter flag value to a bucket name.
// "a".."z" map to their uppercase letter, any digit maps to "0-9",
// any other single character maps to "_". Longer values are invalid
// and return ok=false so the caller can warn and process everything.
func NormalizeLetter(raw string) (bucket string, ok bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return "", false
	}
	if s == "0-9" || s == "_" {
		return s, true
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return "", false
	}
	r := runes[0]
	switch {
	case r >= '0' && r <= '9':
		return "0-9", true
	case r >= 'A' && r <= 'Z':
		return string(r), true
	default:
		// Any other single character, multi-byte included, is the
		// symbol bucket.
		return "_", true
	}
}
