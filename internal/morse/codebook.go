// Package morse maps clean text to CW key-down/key-up signal strings.
package morse

import (
	"fmt"
	"strings"
)

// Signal symbols and gaps, in dit units.
const (
	On       = '1'
	Off      = '0'
	CharGap  = "000"
	WordGap  = "0000000"
	elemGap  = "0"
	dotUnits = "1"
	dahUnits = "111"
)

// KochOrder is the order in which characters are added to a learner's pool.
const KochOrder = "KMURESNAPTLWIJZFOYVG5Q92H38B47C1D60X"

var notation = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".", 'F': "..-.",
	'G': "--.", 'H': "....", 'I': "..", 'J': ".---", 'K': "-.-", 'L': ".-..",
	'M': "--", 'N': "-.", 'O': "---", 'P': ".--.", 'Q': "--.-", 'R': ".-.",
	'S': "...", 'T': "-", 'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-",
	'Y': "-.--", 'Z': "--..",
	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
}

// codebook holds the signal pattern for every encodable character.
// Letter patterns carry no trailing gap; space is the full word gap.
var codebook = buildCodebook()

func buildCodebook() map[rune]string {
	table := make(map[rune]string, len(notation)+1)
	for r, code := range notation {
		elems := make([]string, 0, len(code))
		for _, e := range code {
			if e == '-' {
				elems = append(elems, dahUnits)
			} else {
				elems = append(elems, dotUnits)
			}
		}
		table[r] = strings.Join(elems, elemGap)
	}
	table[' '] = WordGap
	return table
}

// Lookup returns the signal pattern for r.
func Lookup(r rune) (string, bool) {
	p, ok := codebook[r]
	return p, ok
}

// Pattern returns the signal pattern for r and panics when r is not encodable.
func Pattern(r rune) string {
	p, ok := codebook[r]
	if !ok {
		panic(fmt.Sprintf("morse: no pattern for %q", r))
	}
	return p
}

// Notation returns the dot/dash form of r, or "" for space and unknown runes.
func Notation(r rune) string {
	return notation[r]
}

// Pool returns the first n characters of the Koch order, clamped to 1..len(KochOrder).
func Pool(n int) string {
	if n < 1 {
		n = 1
	}
	if n > len(KochOrder) {
		n = len(KochOrder)
	}
	return KochOrder[:n]
}
