// Package main provides the CLI entrypoint for tuicw.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuicw/internal/audio"
	"github.com/verte-zerg/tuicw/internal/config"
	"github.com/verte-zerg/tuicw/internal/generator"
	"github.com/verte-zerg/tuicw/internal/model"
	"github.com/verte-zerg/tuicw/internal/morse"
	"github.com/verte-zerg/tuicw/internal/stats"
	"github.com/verte-zerg/tuicw/internal/statsui"
	"github.com/verte-zerg/tuicw/internal/store"
	"github.com/verte-zerg/tuicw/internal/trainer"
	"github.com/verte-zerg/tuicw/internal/tui"
	"github.com/verte-zerg/tuicw/internal/wordlist"
)

const (
	defaultTone        = 1800.0
	defaultWPM         = 20
	defaultVolume      = 0.25
	defaultPool        = 2
	defaultWordLength  = 5
	defaultWords       = 5
	defaultCurveWindow = 10
)

var (
	practiceTone       float64
	practiceWPM        int
	practiceVolume     float64
	practicePool       int
	practiceWordLength int
	practiceWords      int
	practiceWordList   string
	practiceSeed       int64

	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuicw",
		Short:         "TUI Morse code (CW) trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	addToneFlags(rootCmd)
	rootCmd.Flags().IntVar(&practicePool, "pool", defaultPool, "number of Koch characters to practice (1-36)")
	rootCmd.Flags().IntVar(&practiceWordLength, "word-length", defaultWordLength, "characters per generated word")
	rootCmd.Flags().IntVar(&practiceWords, "words", defaultWords, "words per exercise")
	rootCmd.Flags().StringVar(&practiceWordList, "wordlist", "", "word list file (one word per line)")
	rootCmd.Flags().Int64Var(&practiceSeed, "seed", 0, "random seed (0 = time based)")

	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPoolCmd())

	return rootCmd
}

func addToneFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&practiceTone, "tone", defaultTone, "tone frequency in Hz")
	cmd.Flags().IntVar(&practiceWPM, "wpm", defaultWPM, "character speed in words per minute")
	cmd.Flags().Float64Var(&practiceVolume, "volume", defaultVolume, "output volume multiplier")
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "pool", &practicePool, fileCfg.Practice.PoolSize)
	applyIntConfig(cmd, "word-length", &practiceWordLength, fileCfg.Practice.WordLength)
	applyIntConfig(cmd, "words", &practiceWords, fileCfg.Practice.Words)
	applyStringConfig(cmd, "wordlist", &practiceWordList, fileCfg.Practice.WordList)

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	poolSize, err := resolvePoolSize(commandContext(cmd), cmd, st, practicePool)
	if err != nil {
		return err
	}

	cfg := model.Config{
		ToneHz:     practiceTone,
		WPM:        practiceWPM,
		Volume:     practiceVolume,
		PoolSize:   poolSize,
		WordLength: practiceWordLength,
		Words:      practiceWords,
		WordList:   practiceWordList,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	var words []string
	if cfg.WordList != "" {
		words, err = wordlist.LoadWords(cfg.WordList)
		if err != nil {
			return fmt.Errorf("failed to load word list %s: %w", cfg.WordList, err)
		}
	}

	otoCtx, err := audio.OpenOto(audio.SampleRate)
	if err != nil {
		return err
	}
	tr := trainer.New(audio.NewOtoSink(otoCtx), renderOptions(cfg))

	gen := generator.NewTimeSeeded()
	if practiceSeed != 0 {
		gen = generator.NewSeeded(practiceSeed)
	}

	m := tui.NewModel(cfg, st, gen, tr, words)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolvePoolSize prefers an explicit --pool, then the persisted pool size,
// then the config/default value.
func resolvePoolSize(ctx context.Context, cmd *cobra.Command, st *store.Store, fallback int) (int, error) {
	if cmd.Flags().Changed("pool") {
		return fallback, nil
	}
	size, ok, err := st.PoolSize(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load pool size: %w", err)
	}
	if !ok {
		return fallback, nil
	}
	return size, nil
}

// configPoolSize returns the config file's pool size, or the default.
func configPoolSize(fileCfg config.FileConfig) int {
	if fileCfg.Practice.PoolSize != nil {
		return *fileCfg.Practice.PoolSize
	}
	return defaultPool
}

func loadFileConfig(cmd *cobra.Command) (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyFloatConfig(cmd, "tone", &practiceTone, fileCfg.Practice.ToneHz)
	applyIntConfig(cmd, "wpm", &practiceWPM, fileCfg.Practice.WPM)
	applyFloatConfig(cmd, "volume", &practiceVolume, fileCfg.Practice.Volume)
	return fileCfg, nil
}

func renderOptions(cfg model.Config) audio.Options {
	return audio.Options{
		ToneHz:     cfg.ToneHz,
		WPM:        cfg.WPM,
		Volume:     cfg.Volume,
		SampleRate: audio.SampleRate,
	}
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := statsConfig(statsSince, statsLast, statsCurveWindow)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain {
		report, err := stats.BuildReport(commandContext(cmd), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return writePlainReport(cmd.OutOrStdout(), report, cfg.CurveWindow)
	}

	m := statsui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func writePlainReport(w io.Writer, report stats.Report, window int) error {
	if err := stats.RenderSummary(w, report.Sessions); err != nil {
		return err
	}
	if len(report.Sessions) == 0 {
		return nil
	}
	if err := stats.RenderCurves(w, report.Sessions, window, 0, 0); err != nil {
		return err
	}
	if err := stats.RenderCharTable(w, report.CharAggsAll); err != nil {
		return err
	}
	if len(report.Weakest) > 0 {
		if _, err := fmt.Fprintf(w, "Weakest (last %d sessions): %s\n", len(report.WindowSessionIDs), strings.Join(report.Weakest, " ")); err != nil {
			return err
		}
	}
	return nil
}

func statsConfig(since string, last, window int) (model.StatsConfig, error) {
	var sinceTime *time.Time
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if last < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if window < 1 {
		return model.StatsConfig{}, fmt.Errorf("--curve-window must be >= 1")
	}
	return model.StatsConfig{Since: sinceTime, Last: last, CurveWindow: window}, nil
}

func newPoolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pool [size]",
		Short: "Show or set the practiced character pool size",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPoolCmd,
	}
}

func runPoolCmd(cmd *cobra.Command, args []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := commandContext(cmd)
	size := defaultPool
	if len(args) == 1 {
		size, err = strconv.Atoi(args[0])
		if err != nil || size < 1 || size > len(morse.KochOrder) {
			return fmt.Errorf("pool size must be between 1 and %d", len(morse.KochOrder))
		}
		if err := st.SetPoolSize(ctx, size); err != nil {
			return fmt.Errorf("failed to save pool size: %w", err)
		}
	} else {
		fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		size, err = resolvePoolSize(ctx, cmd, st, configPoolSize(fileCfg))
		if err != nil {
			return err
		}
	}
	pool := morse.Pool(size)
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", len(pool), pool); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuicw configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# tone = %.0f             # Tone frequency in Hz
# wpm = %d                # Character speed in words per minute
# volume = %.2f           # Output volume multiplier
# pool = %d               # Starting pool size (the stored pool wins once it grows)
# word-length = %d        # Characters per generated word
# words = %d              # Words per exercise
# wordlist = ""           # Optional word list file
`,
		defaultTone,
		defaultWPM,
		defaultVolume,
		defaultPool,
		defaultWordLength,
		defaultWords,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.ToneHz <= 0 {
		return fmt.Errorf("--tone must be > 0")
	}
	if cfg.WPM <= 0 {
		return fmt.Errorf("--wpm must be > 0")
	}
	if cfg.Volume < 0 {
		return fmt.Errorf("--volume must be >= 0")
	}
	if cfg.PoolSize < 1 || cfg.PoolSize > len(morse.KochOrder) {
		return fmt.Errorf("--pool must be between 1 and %d", len(morse.KochOrder))
	}
	if cfg.WordLength <= 0 {
		return fmt.Errorf("--word-length must be > 0")
	}
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
