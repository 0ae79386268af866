package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuicw/internal/model"
)

const missingRune = '·'

type styledRune struct {
	s     string
	width int
}

// buildStyledRunes colors the response position by position against the
// expected word. Missing positions show a placeholder; extra input is marked
// incorrect.
func buildStyledRunes(expected, actual []rune) []styledRune {
	n := len(expected)
	if len(actual) > n {
		n = len(actual)
	}
	out := make([]styledRune, 0, n)
	for i := 0; i < n; i++ {
		var displayed rune
		style := incorrectStyle
		switch {
		case i >= len(actual):
			displayed = missingRune
			style = pendingStyle
		case i >= len(expected):
			displayed = actual[i]
		case actual[i] == expected[i]:
			displayed = actual[i]
			style = correctStyle
		default:
			displayed = actual[i]
		}
		out = append(out, styledRune{
			s:     style.Render(string(displayed)),
			width: runewidth.RuneWidth(displayed),
		})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

// padStyled renders runes right-padded with spaces to width cells.
func padStyled(runes []styledRune, width int) string {
	out := renderStyledRunes(runes)
	if pad := width - lineWidthOf(runes); pad > 0 {
		out += strings.Repeat(" ", pad)
	}
	return out
}

func columnWidth(words []model.WordResult) int {
	width := 0
	for _, w := range words {
		for _, s := range []string{w.Expected, w.Actual} {
			if cw := runewidth.StringWidth(s); cw > width {
				width = cw
			}
		}
	}
	return width
}
