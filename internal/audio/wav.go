package audio

import (
	"context"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavBitDepth  = 16
	wavPCMFormat = 1
	wavMaxInt16  = 32767
)

// WriteWAV encodes samples as a 16-bit mono PCM WAV stream.
func WriteWAV(w io.WriteSeeker, samples []float32, rate int) error {
	sink := NewWavSink(w, rate)
	if err := sink.Play(context.Background(), samples); err != nil {
		return err
	}
	return sink.Close()
}

// ReadWAV decodes a WAV stream into float samples in [-1, 1] and its sample rate.
func ReadWAV(r io.ReadSeeker) ([]float32, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("not a valid WAV file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode WAV: %w", err)
	}
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	scale := float32(int(1) << (dec.BitDepth - 1))
	out := make([]float32, len(buf.Data)/channels)
	for i := range out {
		out[i] = float32(buf.Data[i*channels]) / scale
	}
	return out, buf.Format.SampleRate, nil
}

// WavSink writes every played buffer to a WAV stream. Close finalizes the header.
type WavSink struct {
	enc  *wav.Encoder
	rate int
}

// NewWavSink prepares a mono 16-bit encoder on w.
func NewWavSink(w io.WriteSeeker, rate int) *WavSink {
	if rate <= 0 {
		rate = SampleRate
	}
	return &WavSink{
		enc:  wav.NewEncoder(w, rate, wavBitDepth, 1, wavPCMFormat),
		rate: rate,
	}
}

// Play implements Sink by appending samples to the file.
func (s *WavSink) Play(ctx context.Context, samples []float32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(samples) == 0 {
		return nil
	}
	data := make([]int, len(samples))
	for i, v := range samples {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		data[i] = int(v * wavMaxInt16)
	}
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: s.rate},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	}
	if err := s.enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write WAV samples: %w", err)
	}
	return nil
}

// Close flushes the WAV header. The underlying writer stays open.
func (s *WavSink) Close() error {
	if err := s.enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return nil
}
