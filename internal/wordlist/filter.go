// Package wordlist provides word list filtering helpers.
package wordlist

import "strings"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForPool keeps words built only from pool characters and no longer
// than maxLen runes. A non-positive maxLen disables the length check.
func FilterForPool(pool string, maxLen int) FilterFunc {
	return func(word string) bool {
		if word == "" {
			return false
		}
		n := 0
		for _, r := range word {
			if !strings.ContainsRune(pool, r) {
				return false
			}
			n++
		}
		return maxLen <= 0 || n <= maxLen
	}
}

// Filter returns the words accepted by keep, preserving order.
func Filter(words []string, keep FilterFunc) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}
