package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilterForPool(t *testing.T) {
	keep := FilterForPool("KMURES", 4)
	if !keep("MUSE") {
		t.Fatalf("expected MUSE to pass pool filter")
	}
	for _, word := range []string{"", "MUSES", "TEST", "SUM "} {
		if keep(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
	if !FilterForPool("KMURES", 0)("MUSESMUSES") {
		t.Fatalf("expected no length limit for maxLen 0")
	}
}

func TestLoadWordsNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("sure\n\n# comment\n  ok \nrock'n roll\nSURE\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("load words: %v", err)
	}
	want := []string{"SURE", "OK"}
	if len(words) != len(want) {
		t.Fatalf("expected %v, got %v", want, words)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, words)
		}
	}
	if got := Filter(words, FilterForPool("SURE", 0)); len(got) != 1 || got[0] != "SURE" {
		t.Fatalf("unexpected filtered words %v", got)
	}
}

func TestLoadWordsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("!!!\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	if _, err := LoadWords(path); err == nil {
		t.Fatalf("expected error for list without usable words")
	}
}
