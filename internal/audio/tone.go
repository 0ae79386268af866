// Package audio synthesizes CW tones and hands sample buffers to outputs.
package audio

import (
	"math"
	"time"
)

// SampleRate is the output rate used for all rendered audio.
const SampleRate = 44100

// SampleCount returns round(duration*rate), or 0 for non-positive durations.
func SampleCount(duration float64, rate int) int {
	if duration <= 0 || rate <= 0 {
		return 0
	}
	return int(math.Round(duration * float64(rate)))
}

// Sine returns an unscaled sine tone of the given frequency and duration in seconds.
func Sine(freq, duration float64, rate int) []float32 {
	n := SampleCount(duration, rate)
	out := make([]float32, n)
	factor := 2 * math.Pi * freq / float64(rate)
	for i := range out {
		out[i] = float32(math.Sin(float64(i) * factor))
	}
	return out
}

// Silence returns an all-zero buffer the same length Sine would produce.
func Silence(duration float64, rate int) []float32 {
	return make([]float32, SampleCount(duration, rate))
}

// Duration converts a sample count at rate to wall time.
func Duration(samples, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(float64(samples) / float64(rate) * float64(time.Second))
}
