package morse

import "strings"

// Encode converts clean text to a signal string.
//
// A three-dit gap separates two adjacent characters. A space contributes the
// seven-dit word gap on its own, so no character gap is placed next to it.
// Encode panics on text that is not clean.
func Encode(clean string) string {
	var b strings.Builder
	prevChar := false
	for _, r := range clean {
		if r == ' ' {
			b.WriteString(WordGap)
			prevChar = false
			continue
		}
		if prevChar {
			b.WriteString(CharGap)
		}
		b.WriteString(Pattern(r))
		prevChar = true
	}
	return b.String()
}

// EncodeText normalizes arbitrary text and encodes it.
func EncodeText(text string) string {
	return Encode(Normalize(text))
}

// DotDash renders clean text in dot/dash notation, characters separated by
// a space and words by " / ".
func DotDash(clean string) string {
	words := strings.Fields(clean)
	out := make([]string, 0, len(words))
	for _, w := range words {
		codes := make([]string, 0, len(w))
		for _, r := range w {
			codes = append(codes, Notation(r))
		}
		out = append(out, strings.Join(codes, " "))
	}
	return strings.Join(out, " / ")
}
