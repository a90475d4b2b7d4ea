package core

import "strings"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// StringIn reports whether s is present in opts.
func StringIn(s string, opts []string) bool {
	for _, opt := range opts {
		if s == opt {
			return true
		}
	}
	return false
}
