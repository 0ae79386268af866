// Package generator builds randomized CW challenge words.
package generator

import (
	"math/rand"
	"time"
)

// Generator produces challenge words from an injected random source.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator drawing from src.
func New(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// NewSeeded returns a deterministic Generator for the given seed.
func NewSeeded(seed int64) *Generator {
	return New(rand.NewSource(seed))
}

// NewTimeSeeded returns a Generator seeded with the current time.
func NewTimeSeeded() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// Generate draws wordCount words of wordLength characters, each picked
// uniformly with replacement from pool. It returns nil for an empty pool or
// non-positive counts.
func (g *Generator) Generate(pool string, wordLength, wordCount int) []string {
	chars := []rune(pool)
	if len(chars) == 0 || wordLength <= 0 || wordCount <= 0 {
		return nil
	}
	result := make([]string, 0, wordCount)
	word := make([]rune, wordLength)
	for i := 0; i < wordCount; i++ {
		for j := range word {
			word[j] = chars[g.rnd.Intn(len(chars))]
		}
		result = append(result, string(word))
	}
	return result
}

// GenerateFromWords selects count words uniformly from words.
func (g *Generator) GenerateFromWords(words []string, count int) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, words[g.rnd.Intn(len(words))])
	}
	return result
}
