package generator

import (
	"strings"
	"testing"
)

func TestGenerateShapeAndSupport(t *testing.T) {
	g := NewSeeded(7)
	pool := "KMURE"
	words := g.Generate(pool, 4, 6)
	if len(words) != 6 {
		t.Fatalf("expected 6 words, got %d", len(words))
	}
	for _, w := range words {
		if len(w) != 4 {
			t.Fatalf("expected word length 4, got %q", w)
		}
		for _, r := range w {
			if !strings.ContainsRune(pool, r) {
				t.Fatalf("rune %q not in pool %q", r, pool)
			}
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	a := NewSeeded(42).Generate("AB", 3, 2)
	b := NewSeeded(42).Generate("AB", 3, 2)
	if strings.Join(a, ",") != strings.Join(b, ",") {
		t.Fatalf("expected identical output for same seed: %v vs %v", a, b)
	}
}

func TestGenerateSingleCharPool(t *testing.T) {
	words := NewSeeded(1).Generate("K", 5, 3)
	for _, w := range words {
		if w != "KKKKK" {
			t.Fatalf("expected KKKKK, got %q", w)
		}
	}
}

func TestGenerateDegenerateInputs(t *testing.T) {
	g := NewSeeded(1)
	if got := g.Generate("", 3, 3); got != nil {
		t.Fatalf("expected nil for empty pool, got %v", got)
	}
	if got := g.Generate("AB", 0, 3); got != nil {
		t.Fatalf("expected nil for zero length, got %v", got)
	}
	if got := g.Generate("AB", 3, 0); got != nil {
		t.Fatalf("expected nil for zero count, got %v", got)
	}
}

func TestGenerateCoversPool(t *testing.T) {
	seen := map[rune]bool{}
	for _, w := range NewSeeded(3).Generate("KMUR", 10, 20) {
		for _, r := range w {
			seen[r] = true
		}
	}
	if len(seen) != 4 {
		t.Fatalf("expected all pool characters to appear, saw %v", seen)
	}
}

func TestGenerateFromWords(t *testing.T) {
	words := []string{"KUM", "MURK"}
	got := NewSeeded(9).GenerateFromWords(words, 5)
	if len(got) != 5 {
		t.Fatalf("expected 5 words, got %d", len(got))
	}
	for _, w := range got {
		if w != "KUM" && w != "MURK" {
			t.Fatalf("unexpected word %q", w)
		}
	}
	if NewSeeded(9).GenerateFromWords(nil, 3) != nil {
		t.Fatalf("expected nil for empty word list")
	}
}
