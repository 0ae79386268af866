package audio

import (
	"errors"
	"fmt"
)

// ErrBadSymbol reports a signal symbol other than '1' or '0'.
var ErrBadSymbol = errors.New("invalid signal symbol")

// Options controls how a signal string is rendered.
type Options struct {
	ToneHz     float64
	WPM        int
	Volume     float64
	SampleRate int
}

// DefaultOptions returns the stock 1800 Hz, 20 WPM, 0.25 volume settings.
func DefaultOptions() Options {
	return Options{ToneHz: 1800, WPM: 20, Volume: 0.25, SampleRate: SampleRate}
}

// DitDuration returns the dit length in seconds for the PARIS standard.
func DitDuration(wpm int) float64 {
	if wpm <= 0 {
		return 0
	}
	return 1.2 / float64(wpm)
}

// SegmentLen returns the number of samples rendered per signal symbol.
func SegmentLen(wpm, rate int) int {
	return SampleCount(DitDuration(wpm), rate)
}

// Render turns a signal string into samples. Each '1' becomes one dit of tone
// and each '0' one dit of silence; the whole buffer is then scaled by volume.
func Render(signal string, opts Options) ([]float32, error) {
	rate := opts.SampleRate
	if rate <= 0 {
		rate = SampleRate
	}
	dit := DitDuration(opts.WPM)
	out := make([]float32, 0, len(signal)*SampleCount(dit, rate))
	for i := 0; i < len(signal); i++ {
		var seg []float32
		switch signal[i] {
		case '1':
			seg = Sine(opts.ToneHz, dit, rate)
		case '0':
			seg = Silence(dit, rate)
		default:
			return nil, fmt.Errorf("%w %q at %d", ErrBadSymbol, signal[i], i)
		}
		out = append(out, seg...)
	}
	vol := float32(opts.Volume)
	for i := range out {
		out[i] *= vol
	}
	return out, nil
}
