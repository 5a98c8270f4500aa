// Package strings provides small string-list helpers shared by config parsing
// and payload building.
package strings

import (
	"strings"
)

// Compact trims each value and drops empties and repeats, preserving order.
//
//	Compact("  logo.png ", "", "cover.png", "logo.png")
//	// []string{"logo.png", "cover.png"}
func Compact(values ...string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}

// SplitCSV splits a comma-separated environment value into compacted items.
// An empty input yields nil.
func SplitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return Compact(strings.Split(raw, ",")...)
}

// FirstNonEmpty returns the first value that is not blank after trimming.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
