package tui

import (
	"strings"
	"testing"
)

func TestBuildStyledRunesMatch(t *testing.T) {
	runes := buildStyledRunes([]rune("KM"), []rune("KX"))
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("K") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != incorrectStyle.Render("X") {
		t.Fatalf("expected incorrect style for second rune")
	}
}

func TestBuildStyledRunesMissing(t *testing.T) {
	runes := buildStyledRunes([]rune("KMU"), []rune("K"))
	if len(runes) != 3 {
		t.Fatalf("expected 3 runes, got %d", len(runes))
	}
	if runes[2].s != pendingStyle.Render(string(missingRune)) {
		t.Fatalf("expected placeholder for missing rune")
	}
}

func TestBuildStyledRunesExtra(t *testing.T) {
	runes := buildStyledRunes([]rune("K"), []rune("KM"))
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[1].s != incorrectStyle.Render("M") {
		t.Fatalf("expected extra rune marked incorrect")
	}
}

func TestPadStyled(t *testing.T) {
	runes := buildStyledRunes([]rune("KM"), []rune("KM"))
	out := padStyled(runes, 5)
	if !strings.HasSuffix(out, "   ") {
		t.Fatalf("expected 3 padding spaces, got %q", out)
	}
	if lineWidthOf(runes) != 2 {
		t.Fatalf("expected width 2")
	}
}
