package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSineLengthAndRange(t *testing.T) {
	cases := []struct {
		freq     float64
		duration float64
		rate     int
	}{
		{1800, 0.06, 44100},
		{440, 1.0 / 3.0, 8000},
		{600, 0.0001, 44100},
		{1000, 0, 44100},
		{1000, -0.5, 44100},
		{15000, 0.02, 22050},
	}
	for _, tc := range cases {
		buf := Sine(tc.freq, tc.duration, tc.rate)
		want := 0
		if tc.duration > 0 {
			want = int(math.Round(tc.duration * float64(tc.rate)))
		}
		require.Len(t, buf, want)
		for _, v := range buf {
			assert.True(t, v >= -1 && v <= 1, "sample %f out of range", v)
		}
	}
}

func TestSineFollowsFormula(t *testing.T) {
	buf := Sine(1000, 0.01, 8000)
	require.Len(t, buf, 80)
	assert.Equal(t, float32(0), buf[0])
	assert.InDelta(t, math.Sin(2*math.Pi*1000*2/8000), float64(buf[2]), 1e-6)
}

func TestSilence(t *testing.T) {
	buf := Silence(0.06, SampleRate)
	require.Len(t, buf, 2646)
	for _, v := range buf {
		require.Zero(t, v)
	}
	assert.Empty(t, Silence(-1, SampleRate))
}

func TestRenderLengthLaw(t *testing.T) {
	for _, wpm := range []int{5, 13, 20, 35} {
		seg := int(math.Round(1.2 / float64(wpm) * SampleRate))
		assert.Equal(t, seg, SegmentLen(wpm, SampleRate))
		for _, signal := range []string{strings.Repeat("1", 7), strings.Repeat("0", 11)} {
			opts := Options{ToneHz: 1800, WPM: wpm, Volume: 0.25, SampleRate: SampleRate}
			out, err := Render(signal, opts)
			require.NoError(t, err)
			assert.Len(t, out, len(signal)*seg)
		}
	}
}

func TestRenderOrderingAndVolume(t *testing.T) {
	opts := Options{ToneHz: 1000, WPM: 20, Volume: 0.5, SampleRate: 8000}
	seg := SegmentLen(opts.WPM, opts.SampleRate)
	out, err := Render("101", opts)
	require.NoError(t, err)
	require.Len(t, out, 3*seg)

	tone := Sine(opts.ToneHz, DitDuration(opts.WPM), opts.SampleRate)
	for i := 0; i < seg; i++ {
		assert.InDelta(t, tone[i]*0.5, out[i], 1e-6)
		assert.Zero(t, out[seg+i])
		assert.InDelta(t, tone[i]*0.5, out[2*seg+i], 1e-6)
	}
}

func TestRenderVolumeNotClamped(t *testing.T) {
	out, err := Render("1", Options{ToneHz: 1000, WPM: 20, Volume: 3, SampleRate: 8000})
	require.NoError(t, err)
	peak := float32(0)
	for _, v := range out {
		if v > peak {
			peak = v
		}
	}
	assert.Greater(t, peak, float32(1))
}

func TestRenderRejectsBadSymbol(t *testing.T) {
	_, err := Render("10x", DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadSymbol))

	out, err := Render("", DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestEncodeFloat32LE(t *testing.T) {
	buf := EncodeFloat32LE([]float32{0.25, -1})
	require.Len(t, buf, 8)
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])))
	assert.Equal(t, float32(-1), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])))
}

func TestWAVRoundTrip(t *testing.T) {
	samples, err := Render("1110101", Options{ToneHz: 700, WPM: 25, Volume: 0.8, SampleRate: SampleRate})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cw.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteWAV(f, samples, SampleRate))
	require.NoError(t, f.Close())

	in, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = in.Close() })

	decoded, rate, err := ReadWAV(in)
	require.NoError(t, err)
	assert.Equal(t, SampleRate, rate)
	require.Len(t, decoded, len(samples))
	for i := range samples {
		assert.InDelta(t, samples[i], decoded[i], 1e-3)
	}
}

func TestWavSinkHonorsContext(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "x.wav"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	sink := NewWavSink(f, SampleRate)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sink.Play(ctx, []float32{0.1}), context.Canceled)
}

type fakePlayer struct {
	polls    int
	paused   bool
	closed   bool
	playErr  error
	closeErr error
}

func (p *fakePlayer) Play()  {}
func (p *fakePlayer) Pause() { p.paused = true }

func (p *fakePlayer) IsPlaying() bool {
	p.polls++
	return p.polls < 3
}

func (p *fakePlayer) Err() error { return p.playErr }

func (p *fakePlayer) Close() error {
	p.closed = true
	return p.closeErr
}

func TestPlayUntilDoneReportsCloseError(t *testing.T) {
	closeErr := errors.New("device gone")
	p := &fakePlayer{closeErr: closeErr}
	err := playUntilDone(context.Background(), p, time.Millisecond)
	assert.ErrorIs(t, err, closeErr)
	assert.True(t, p.closed)
}

func TestPlayUntilDoneKeepsPlaybackError(t *testing.T) {
	playErr := errors.New("underrun")
	p := &fakePlayer{playErr: playErr, closeErr: errors.New("device gone")}
	err := playUntilDone(context.Background(), p, time.Millisecond)
	assert.ErrorIs(t, err, playErr)
}

func TestPlayUntilDoneHonorsContext(t *testing.T) {
	p := &fakePlayer{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := playUntilDone(ctx, p, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, p.paused)
	assert.True(t, p.closed)
}

func TestPlayUntilDoneSucceeds(t *testing.T) {
	p := &fakePlayer{}
	require.NoError(t, playUntilDone(context.Background(), p, time.Millisecond))
	assert.True(t, p.closed)
}
