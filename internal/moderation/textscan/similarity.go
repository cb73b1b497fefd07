package textscan

import "github.com/pmezard/go-difflib/difflib"

// Similarity computes a normalized similarity ratio between two strings using
// the longest-matching-blocks technique. Returns a value between 0.0
// (completely different) and 1.0 (identical), weighted by how much of the two
// strings aligns.
func Similarity(a, b string) float64 {
	return difflib.NewMatcher(splitRunes(a), splitRunes(b)).Ratio()
}

// splitRunes breaks a string into per-rune elements so the matcher compares
// characters rather than lines.
func splitRunes(s string) []string {
	parts := make([]string, 0, len(s))
	for _, r := range s {
		parts = append(parts, string(r))
	}

	return parts
}
