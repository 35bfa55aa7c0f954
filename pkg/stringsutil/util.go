package stringsutil

import "strings"

// RemoveEmptyStrings returns the slice without empty entries.
func RemoveEmptyStrings(slice []string) []string {
	var result []string
	for _, s := range slice {
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

// SplitAndTrim splits s on sep, trims whitespace from every part, and drops
// parts that end up empty. An empty input yields nil.
func SplitAndTrim(s, sep string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return RemoveEmptyStrings(parts)
}
