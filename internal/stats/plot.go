package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// Series represents a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisLabelTop        = "max"
	axisLabelMid        = "mid"
	axisLabelBottom     = "min"
	axisSeparator       = " | "
	scaleNote           = "Scaled per series; see min/max below."
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var (
	markers = []rune{'*', 'o', '+', 'x'}
	colors  = []string{"\x1b[36m", "\x1b[35m", "\x1b[33m", "\x1b[32m"}
)

// PlotSeries renders a text plot with one marker per series, each series
// scaled to its own min/max.
func PlotSeries(w io.Writer, title string, series []Series, width, height int) error {
	series = filterSeries(series)
	if len(series) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}
	useColor := shouldUseColor(w)

	grid := make([][]int, height)
	for y := range grid {
		grid[y] = make([]int, width)
		for x := range grid[y] {
			grid[y][x] = -1
		}
	}
	for si, s := range series {
		values := resampleSeries(s.Values, width)
		lo, hi := seriesMinMax(values)
		if math.Abs(hi-lo) < 1e-9 {
			lo--
			hi++
		}
		for x, v := range values {
			grid[valueToRow(v, lo, hi, height)][x] = si
		}
	}

	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, scaleNote); err != nil {
		return err
	}
	labels := makeAxisLabels(height)
	for y, cells := range grid {
		var row strings.Builder
		row.WriteString(labels[y])
		row.WriteString(axisSeparator)
		for _, si := range cells {
			if si < 0 {
				row.WriteByte(' ')
				continue
			}
			row.WriteString(markerFor(si, useColor))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(row.String(), " ")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, renderLegend(series, useColor)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	axisWidth := utf8.RuneCountInString(axisLabelTop) + utf8.RuneCountInString(axisSeparator)
	plotWidth := totalWidth - axisWidth
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

func filterSeries(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		out = append(out, s)
	}
	return out
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func makeAxisLabels(height int) []string {
	pad := utf8.RuneCountInString(axisLabelTop)
	labels := make([]string, height)
	for i := range labels {
		labels[i] = strings.Repeat(" ", pad)
	}
	labels[0] = axisLabelTop
	if height > 2 {
		labels[height/2] = axisLabelMid
	}
	if height > 1 {
		labels[height-1] = axisLabelBottom
	}
	return labels
}

// resampleSeries averages values into width buckets, stretching short series.
func resampleSeries(values []float64, width int) []float64 {
	n := len(values)
	out := make([]float64, width)
	for x := range out {
		start := x * n / width
		end := (x + 1) * n / width
		if end <= start {
			end = start + 1
		}
		sum := 0.0
		for _, v := range values[start:end] {
			sum += v
		}
		out[x] = sum / float64(end-start)
	}
	return out
}

func valueToRow(v, lo, hi float64, height int) int {
	pos := (v - lo) / (hi - lo)
	row := height - 1 - int(math.Round(pos*float64(height-1)))
	return clamp(row, 0, height-1)
}

func markerFor(idx int, useColor bool) string {
	m := string(markers[idx%len(markers)])
	if !useColor {
		return m
	}
	return colors[idx%len(colors)] + m + colorReset
}

func renderLegend(series []Series, useColor bool) string {
	parts := make([]string, 0, len(series))
	for i, s := range series {
		lo, hi := seriesMinMax(s.Values)
		parts = append(parts, fmt.Sprintf("%s %s [%.1f-%.1f]", markerFor(i, useColor), s.Name, lo, hi))
	}
	return "Legend: " + strings.Join(parts, "  ")
}
