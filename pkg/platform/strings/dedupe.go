// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// DedupeAndTrimFold trims each element, drops empty ones and removes
// duplicates that differ only in letter case. The first spelling seen is
// kept and order is preserved. The result is never nil.
//
// Example:
//
//	DedupeAndTrimFold([]string{" Nairobi ", "Mombasa", "NAIROBI", ""})
//	// Returns: []string{"Nairobi", "Mombasa"}
func DedupeAndTrimFold(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}
