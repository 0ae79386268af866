// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/tuicw/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Accuracy returns the share of correctly copied characters.
func Accuracy(correct, incorrect int) float64 {
	den := correct + incorrect
	if den <= 0 {
		return 0
	}
	return float64(correct) / float64(den)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := seriesMinMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[clamp(idx, 0, len(sparkChars)-1)])
	}
	return b.String()
}

// RenderSummary prints a summary block for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalScore, totalAcc, totalWPM float64
	best := 0.0
	for _, s := range sessions {
		totalScore += s.Score
		totalAcc += Accuracy(s.Correct, s.Incorrect)
		totalWPM += float64(s.WPM)
		if s.Score > best {
			best = s.Score
		}
	}
	count := float64(len(sessions))
	last := sessions[len(sessions)-1]
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(sessions)),
		fmt.Sprintf("Avg Score: %.1f", totalScore/count),
		fmt.Sprintf("Best Score: %.1f", best),
		fmt.Sprintf("Avg Accuracy: %.2f%%", totalAcc/count*100),
		fmt.Sprintf("Avg Speed: %.1f WPM", totalWPM/count),
		fmt.Sprintf("Current Pool: %d characters", last.PoolSize),
		fmt.Sprintf("Trend: %s", Sparkline(scoreSeries(sessions))),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves plots smoothed score and accuracy curves.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window, totalWidth, height int) error {
	if len(sessions) == 0 {
		return nil
	}
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		accs[i] = Accuracy(s.Correct, s.Incorrect) * 100
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeries(w, "Learning Curves", []Series{
		{Name: "Score", Values: MovingAverage(scoreSeries(sessions), window)},
		{Name: "Accuracy", Values: MovingAverage(accs, window)},
	}, width, height)
}

// RenderCharTable prints per-character aggregates, weakest first.
func RenderCharTable(w io.Writer, aggs []model.CharAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No character stats found.")
		return err
	}
	rows := SortedByAccuracy(aggs)

	if _, err := fmt.Fprintln(w, "Per-Character"); err != nil {
		return err
	}
	cols := []column{
		{title: "Char"},
		{title: "Code"},
		{title: "Accuracy", right: true},
		{title: "Correct", right: true},
		{title: "Incorrect", right: true},
	}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, CharRow(r))
	}
	if err := writeTable(w, cols, tableRows); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// CharRow formats one aggregate as table cells.
func CharRow(agg model.CharAggregate) []string {
	runes := []rune(agg.Char)
	code := ""
	if len(runes) > 0 {
		code = notationFor(runes[0])
	}
	return []string{
		agg.Char,
		code,
		fmt.Sprintf("%.2f%%", accuracyOf(agg)*100),
		fmt.Sprintf("%d", agg.Correct),
		fmt.Sprintf("%d", agg.Incorrect),
	}
}

// SortedByAccuracy returns a copy of aggs ordered weakest first.
func SortedByAccuracy(aggs []model.CharAggregate) []model.CharAggregate {
	rows := make([]model.CharAggregate, len(aggs))
	copy(rows, aggs)
	sortByAccuracy(rows)
	return rows
}

func scoreSeries(sessions []model.SessionAggregate) []float64 {
	out := make([]float64, len(sessions))
	for i, s := range sessions {
		out[i] = s.Score
	}
	return out
}

func sortByAccuracy(aggs []model.CharAggregate) {
	sort.Slice(aggs, func(i, j int) bool {
		ai := accuracyOf(aggs[i])
		aj := accuracyOf(aggs[j])
		if ai == aj {
			return aggs[i].Char < aggs[j].Char
		}
		return ai < aj
	})
}

func accuracyOf(agg model.CharAggregate) float64 {
	if agg.Correct+agg.Incorrect == 0 {
		return 1.0
	}
	return Accuracy(agg.Correct, agg.Incorrect)
}

func seriesMinMax(values []float64) (float64, float64) {
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
