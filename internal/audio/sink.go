package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Sink accepts a rendered buffer for playback.
type Sink interface {
	Play(ctx context.Context, samples []float32) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, samples []float32) error

// Play implements Sink.
func (f SinkFunc) Play(ctx context.Context, samples []float32) error {
	return f(ctx, samples)
}

// OpenOto opens the process-wide oto context for mono float32 output.
// oto allows a single context per process; the caller owns it.
func OpenOto(rate int) (*oto.Context, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   50 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open audio output: %w", err)
	}
	<-ready
	return ctx, nil
}

// OtoSink plays buffers through an already-open oto context.
type OtoSink struct {
	ctx  *oto.Context
	poll time.Duration
}

// NewOtoSink wraps ctx. The sink never closes or reconfigures it.
func NewOtoSink(ctx *oto.Context) *OtoSink {
	return &OtoSink{ctx: ctx, poll: 10 * time.Millisecond}
}

// Play blocks until the buffer has been played or ctx is done.
func (s *OtoSink) Play(ctx context.Context, samples []float32) error {
	if len(samples) == 0 {
		return nil
	}
	return playUntilDone(ctx, s.ctx.NewPlayer(bytes.NewReader(EncodeFloat32LE(samples))), s.poll)
}

// player is the subset of *oto.Player that playback drives.
type player interface {
	Play()
	Pause()
	IsPlaying() bool
	Err() error
	Close() error
}

func playUntilDone(ctx context.Context, p player, poll time.Duration) (err error) {
	defer func() {
		if cerr := p.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close player: %w", cerr)
		}
	}()
	p.Play()

	ticker := time.NewTicker(poll)
	defer ticker.Stop()
	for p.IsPlaying() {
		select {
		case <-ctx.Done():
			p.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return p.Err()
}

// EncodeFloat32LE packs samples as little-endian 32-bit float PCM.
func EncodeFloat32LE(samples []float32) []byte {
	buf := make([]byte, 4*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}
