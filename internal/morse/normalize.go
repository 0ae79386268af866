package morse

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNotClean reports text containing characters outside [A-Z0-9 ].
var ErrNotClean = errors.New("text contains non-encodable characters")

func encodable(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == ' '
}

// Normalize uppercases text with full Unicode case mapping (ß becomes SS) and
// replaces every rune outside [A-Z0-9 ] with a space.
func Normalize(text string) string {
	upper := cases.Upper(language.Und).String(text)
	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		if !encodable(r) {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsClean reports whether text is already in the encodable alphabet.
func IsClean(text string) bool {
	for _, r := range text {
		if !encodable(r) {
			return false
		}
	}
	return true
}

// ValidateClean returns ErrNotClean naming the first offending rune.
func ValidateClean(text string) error {
	for i, r := range text {
		if !encodable(r) {
			return fmt.Errorf("%w: %q at byte %d", ErrNotClean, r, i)
		}
	}
	return nil
}
