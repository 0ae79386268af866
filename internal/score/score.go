// Package score grades transcribed CW responses against challenge words.
package score

import (
	"errors"
	"math"
)

// AdvanceThreshold is the exercise score at which the pool may grow.
const AdvanceThreshold = 90

var (
	// ErrEmptyPair reports a comparison where both strings are empty.
	ErrEmptyPair = errors.New("expected and actual are both empty")
	// ErrNoPairs reports a session with no expected/actual pairs to grade.
	ErrNoPairs = errors.New("no words to score")
)

// MatchScore returns a 0..100 similarity score.
//
// The distance is the length difference plus one per differing position over
// the shorter string. This is a positional count, not an edit distance: a
// dropped character shifts every later position and is penalized for each.
// Halves round to even, so 62.5 scores 62 and 87.5 scores 88.
func MatchScore(expected, actual string) (int, error) {
	e := []rune(expected)
	a := []rune(actual)
	maxLen := len(e)
	if len(a) > maxLen {
		maxLen = len(a)
	}
	if maxLen == 0 {
		return 0, ErrEmptyPair
	}
	dist := len(e) - len(a)
	if dist < 0 {
		dist = -dist
	}
	for i := 0; i < len(e) && i < len(a); i++ {
		if e[i] != a[i] {
			dist++
		}
	}
	return int(math.RoundToEven(float64(maxLen-dist) / float64(maxLen) * 100)), nil
}

// SessionScore zips expected and actual, truncating to the shorter, and
// returns the mean match score along with the per-word scores.
func SessionScore(expected, actual []string) (float64, []int, error) {
	n := len(expected)
	if len(actual) < n {
		n = len(actual)
	}
	if n == 0 {
		return 0, nil, ErrNoPairs
	}
	scores := make([]int, n)
	total := 0
	for i := 0; i < n; i++ {
		s, err := MatchScore(expected[i], actual[i])
		if err != nil {
			return 0, nil, err
		}
		scores[i] = s
		total += s
	}
	return float64(total) / float64(n), scores, nil
}

// Advances reports whether an exercise score earns another pool character.
func Advances(overall float64) bool {
	return overall >= AdvanceThreshold
}
