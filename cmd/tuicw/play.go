package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuicw/internal/audio"
	"github.com/verte-zerg/tuicw/internal/morse"
	"github.com/verte-zerg/tuicw/internal/trainer"
)

var (
	playOut    string
	playWav    string
	playStrict bool
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [text]",
		Short: "Play text as CW (reads stdin when no text is given)",
		RunE:  runPlayCmd,
	}
	addToneFlags(cmd)
	cmd.Flags().StringVar(&playOut, "out", "", "write a WAV file instead of playing")
	cmd.Flags().StringVar(&playWav, "wav", "", "play an existing WAV file")
	cmd.Flags().BoolVar(&playStrict, "strict", false, "reject text outside A-Z, 0-9 and space")
	return cmd
}

func runPlayCmd(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	if playWav != "" {
		return playWavFile(ctx, playWav)
	}

	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	text, err := readText(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	opts := audio.Options{ToneHz: practiceTone, WPM: practiceWPM, Volume: practiceVolume, SampleRate: audio.SampleRate}
	if opts.ToneHz <= 0 || opts.WPM <= 0 || opts.Volume < 0 {
		return fmt.Errorf("--tone and --wpm must be > 0, --volume must be >= 0")
	}

	if playOut != "" {
		return interrupted(writeWavFile(ctx, playOut, text, opts))
	}

	otoCtx, err := audio.OpenOto(opts.SampleRate)
	if err != nil {
		return err
	}
	return playWith(ctx, trainer.New(audio.NewOtoSink(otoCtx), opts), text)
}

func playWith(ctx context.Context, tr *trainer.Trainer, text string) error {
	return interrupted(sendText(ctx, tr, text))
}

func sendText(ctx context.Context, tr *trainer.Trainer, text string) error {
	if playStrict {
		return tr.PlayStrict(ctx, text)
	}
	return tr.PlayText(ctx, text)
}

// interrupted turns a cancelled playback into a logged, clean exit.
func interrupted(err error) error {
	if errors.Is(err, context.Canceled) {
		logErrln("playback interrupted")
		return nil
	}
	return err
}

// writeWavFile renders text into a WAV file at path. A failed or interrupted
// render leaves no file behind.
func writeWavFile(ctx context.Context, path, text string, opts audio.Options) (err error) {
	if playStrict {
		if err := morse.ValidateClean(text); err != nil {
			return err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
		if err != nil {
			if rerr := os.Remove(path); rerr != nil {
				logErrf("failed to remove %s: %v\n", path, rerr)
			}
		}
	}()
	sink := audio.NewWavSink(file, opts.SampleRate)
	if err := sendText(ctx, trainer.New(sink, opts), text); err != nil {
		return err
	}
	if err := sink.Close(); err != nil {
		return err
	}
	logErrf("Wrote %s\n", path)
	return nil
}

func playWavFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logErrf("failed to close %s: %v\n", path, cerr)
		}
	}()
	samples, rate, err := audio.ReadWAV(file)
	if err != nil {
		return err
	}
	otoCtx, err := audio.OpenOto(rate)
	if err != nil {
		return err
	}
	if err := audio.NewOtoSink(otoCtx).Play(ctx, samples); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode [text]",
		Short: "Print the CW notation and signal for text",
		RunE:  runEncodeCmd,
	}
}

func runEncodeCmd(cmd *cobra.Command, args []string) error {
	text, err := readText(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	return writeEncoding(cmd.OutOrStdout(), text)
}

func writeEncoding(w io.Writer, text string) error {
	clean := morse.Normalize(text)
	lines := []string{clean, morse.DotDash(clean), morse.Encode(clean)}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// readText joins args, or reads all of r when there are none.
func readText(args []string, r io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	text := strings.TrimRight(string(data), "\r\n")
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text to play")
	}
	return text, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
