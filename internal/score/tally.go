package score

// Tally counts positional hits and misses for one expected character.
type Tally struct {
	Correct   int
	Incorrect int
}

// CharTally credits each expected character whose position in actual holds
// the same character. Positions past the end of actual count as misses.
func CharTally(expected, actual string) map[rune]Tally {
	e := []rune(expected)
	a := []rune(actual)
	out := make(map[rune]Tally, len(e))
	for i, r := range e {
		if r == ' ' {
			continue
		}
		t := out[r]
		if i < len(a) && a[i] == r {
			t.Correct++
		} else {
			t.Incorrect++
		}
		out[r] = t
	}
	return out
}

// Merge adds the counts of src into dst.
func Merge(dst, src map[rune]Tally) {
	for r, t := range src {
		cur := dst[r]
		cur.Correct += t.Correct
		cur.Incorrect += t.Incorrect
		dst[r] = cur
	}
}
