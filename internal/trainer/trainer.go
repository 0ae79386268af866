// Package trainer wires the CW pipeline: normalize, encode, render, play and grade.
package trainer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/verte-zerg/tuicw/internal/audio"
	"github.com/verte-zerg/tuicw/internal/model"
	"github.com/verte-zerg/tuicw/internal/morse"
	"github.com/verte-zerg/tuicw/internal/score"
)

// Trainer renders text to audio and hands it to a sink.
type Trainer struct {
	sink audio.Sink
	opts audio.Options
}

// New returns a Trainer playing through sink with opts.
func New(sink audio.Sink, opts audio.Options) *Trainer {
	if opts.SampleRate <= 0 {
		opts.SampleRate = audio.SampleRate
	}
	return &Trainer{sink: sink, opts: opts}
}

// Options returns the render options in use.
func (t *Trainer) Options() audio.Options {
	return t.opts
}

// Render normalizes text, encodes it and renders the samples.
func (t *Trainer) Render(text string) ([]float32, error) {
	return audio.Render(morse.EncodeText(text), t.opts)
}

// PlayText plays arbitrary text after normalizing it.
func (t *Trainer) PlayText(ctx context.Context, text string) error {
	samples, err := t.Render(text)
	if err != nil {
		return err
	}
	return t.sink.Play(ctx, samples)
}

// PlayStrict plays text only if it is already clean.
func (t *Trainer) PlayStrict(ctx context.Context, text string) error {
	if err := morse.ValidateClean(text); err != nil {
		return err
	}
	samples, err := audio.Render(morse.Encode(text), t.opts)
	if err != nil {
		return err
	}
	return t.sink.Play(ctx, samples)
}

// PlayWords plays each word followed by a word gap. Each word is rendered and
// played to completion before the next one starts.
func (t *Trainer) PlayWords(ctx context.Context, words []string) error {
	for i, w := range words {
		if err := t.PlayText(ctx, w+" "); err != nil {
			return fmt.Errorf("failed to play word %d: %w", i+1, err)
		}
	}
	return nil
}

// Result is the graded outcome of one exercise.
type Result struct {
	Words   []model.WordResult
	Overall float64
	Chars   map[rune]score.Tally
	Advance bool
}

// Grade normalizes responses and scores them against the challenge words.
// Challenge words without a response are dropped.
func Grade(challenge, responses []string) (Result, error) {
	cleaned := make([]string, len(responses))
	for i, r := range responses {
		cleaned[i] = morse.Normalize(strings.TrimSpace(r))
	}
	overall, scores, err := score.SessionScore(challenge, cleaned)
	if err != nil {
		return Result{}, err
	}
	res := Result{
		Words:   make([]model.WordResult, len(scores)),
		Overall: overall,
		Chars:   map[rune]score.Tally{},
		Advance: score.Advances(overall),
	}
	for i, s := range scores {
		res.Words[i] = model.WordResult{Expected: challenge[i], Actual: cleaned[i], Score: s}
		score.Merge(res.Chars, score.CharTally(challenge[i], cleaned[i]))
	}
	return res, nil
}

// CharStats flattens per-character tallies, sorted by character.
func (r Result) CharStats() []model.CharStats {
	out := make([]model.CharStats, 0, len(r.Chars))
	for ch, t := range r.Chars {
		out = append(out, model.CharStats{Char: string(ch), Correct: t.Correct, Incorrect: t.Incorrect})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Char < out[j].Char })
	return out
}

// Totals sums correct and incorrect characters.
func (r Result) Totals() (correct, incorrect int) {
	for _, t := range r.Chars {
		correct += t.Correct
		incorrect += t.Incorrect
	}
	return correct, incorrect
}
