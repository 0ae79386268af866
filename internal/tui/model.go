// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuicw/internal/generator"
	"github.com/verte-zerg/tuicw/internal/model"
	"github.com/verte-zerg/tuicw/internal/morse"
	"github.com/verte-zerg/tuicw/internal/store"
	"github.com/verte-zerg/tuicw/internal/trainer"
	"github.com/verte-zerg/tuicw/internal/wordlist"
)

type phase int

const (
	phaseReady phase = iota
	phasePlaying
	phaseInput
	phaseResult
)

const leadIn = 1500 * time.Millisecond

type playedMsg struct {
	id  int
	err error
}

// Model implements the Bubble Tea practice UI.
type Model struct {
	config  model.Config
	store   *store.Store
	gen     *generator.Generator
	trainer *trainer.Trainer
	words   []string
	leadIn  time.Duration

	width  int
	height int

	phase     phase
	challenge []string
	responses []string
	input     textinput.Model
	startedAt time.Time
	cancel    context.CancelFunc
	playID    int

	result       trainer.Result
	offerAdvance bool
	errMsg       string
	notice       string

	lastScore float64
	hasLast   bool
	allScore  float64
	sessions  int
}

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	accentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	titleStyle     = accentStyle.Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a practice TUI model. words may be nil, in which case
// challenge words are drawn character by character from the pool.
func NewModel(cfg model.Config, st *store.Store, gen *generator.Generator, tr *trainer.Trainer, words []string) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "copied word"
	input.CharLimit = 64
	m := &Model{
		config:  cfg,
		store:   st,
		gen:     gen,
		trainer: tr,
		words:   words,
		leadIn:  leadIn,
		input:   input,
	}
	m.loadFooterStats()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case playedMsg:
		return m.handlePlayed(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.stopPlayback()
			return m, tea.Quit
		}
		switch m.phase {
		case phaseReady:
			return m.updateReady(msg)
		case phasePlaying:
			if msg.Type == tea.KeyEsc {
				m.stopPlayback()
			}
			return m, nil
		case phaseInput:
			return m.updateInput(msg)
		case phaseResult:
			return m.updateResult(msg)
		}
	}
	return m, nil
}

func (m *Model) updateReady(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter", " ":
		return m, m.startExercise()
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.responses = append(m.responses, m.input.Value())
		m.input.Reset()
		if len(m.responses) >= len(m.challenge) {
			m.finishExercise()
		}
		return m, nil
	case "ctrl+r":
		m.input.Blur()
		return m, m.play(0)
	case "esc":
		if len(m.responses) == 0 {
			m.input.Blur()
			m.phase = phaseReady
			m.notice = "Exercise abandoned."
			return m, nil
		}
		m.finishExercise()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.offerAdvance {
		switch key {
		case "y":
			m.offerAdvance = false
			m.growPool()
		case "n":
			m.offerAdvance = false
		}
		return m, nil
	}
	switch key {
	case "q":
		return m, tea.Quit
	case "enter", " ":
		return m, m.startExercise()
	}
	return m, nil
}

func (m *Model) handlePlayed(msg playedMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.playID {
		return m, nil
	}
	m.cancel = nil
	if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
		m.errMsg = fmt.Sprintf("playback failed: %v", msg.err)
		logErrf("playback failed: %v\n", msg.err)
	}
	if m.phase != phasePlaying {
		return m, nil
	}
	m.phase = phaseInput
	return m, m.input.Focus()
}

// Pool returns the characters currently being practiced.
func (m *Model) Pool() string {
	return morse.Pool(m.config.PoolSize)
}

func (m *Model) startExercise() tea.Cmd {
	m.challenge = m.generateChallenge()
	m.responses = nil
	m.errMsg = ""
	m.notice = ""
	m.input.Reset()
	m.startedAt = time.Now()
	return m.play(m.leadIn)
}

func (m *Model) generateChallenge() []string {
	pool := m.Pool()
	if len(m.words) > 0 {
		candidates := wordlist.Filter(m.words, wordlist.FilterForPool(pool, m.config.WordLength))
		if len(candidates) > 0 {
			return m.gen.GenerateFromWords(candidates, m.config.Words)
		}
	}
	return m.gen.Generate(pool, m.config.WordLength, m.config.Words)
}

func (m *Model) play(delay time.Duration) tea.Cmd {
	m.stopPlayback()
	m.phase = phasePlaying
	m.playID++
	id := m.playID
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	tr := m.trainer
	words := append([]string(nil), m.challenge...)
	return func() tea.Msg {
		defer cancel()
		if delay > 0 {
			select {
			case <-ctx.Done():
				return playedMsg{id: id, err: ctx.Err()}
			case <-time.After(delay):
			}
		}
		return playedMsg{id: id, err: tr.PlayWords(ctx, words)}
	}
}

func (m *Model) stopPlayback() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m *Model) finishExercise() {
	m.input.Blur()
	res, err := trainer.Grade(m.challenge, m.responses)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to score exercise: %v", err)
		m.phase = phaseReady
		return
	}
	m.result = res
	m.phase = phaseResult
	m.offerAdvance = res.Advance && m.config.PoolSize < len(morse.KochOrder)

	endedAt := time.Now()
	correct, incorrect := res.Totals()
	stats := model.SessionStats{
		StartedAt:  m.startedAt,
		EndedAt:    endedAt,
		Pool:       m.Pool(),
		WordLength: m.config.WordLength,
		Words:      len(m.challenge),
		WPM:        m.config.WPM,
		ToneHz:     m.config.ToneHz,
		Score:      res.Overall,
		Correct:    correct,
		Incorrect:  incorrect,
		DurationMs: endedAt.Sub(m.startedAt).Milliseconds(),
	}
	if _, err := m.store.InsertSession(context.Background(), stats, res.Words, res.CharStats()); err != nil {
		logErrf("failed to save session: %v\n", err)
	}
	m.allScore = (m.allScore*float64(m.sessions) + res.Overall) / float64(m.sessions+1)
	m.sessions++
	m.lastScore = res.Overall
	m.hasLast = true
}

func (m *Model) growPool() {
	if m.config.PoolSize >= len(morse.KochOrder) {
		return
	}
	m.config.PoolSize++
	added := morse.KochOrder[m.config.PoolSize-1]
	m.notice = fmt.Sprintf("Added %c (%s) to the pool.", added, morse.Notation(rune(added)))
	if err := m.store.SetPoolSize(context.Background(), m.config.PoolSize); err != nil {
		logErrf("failed to save pool size: %v\n", err)
	}
}

func (m *Model) loadFooterStats() {
	sessions, err := m.store.ListSessions(context.Background(), model.StatsConfig{})
	if err != nil {
		logErrf("failed to load session stats: %v\n", err)
		return
	}
	if len(sessions) == 0 {
		return
	}
	total := 0.0
	for _, s := range sessions {
		total += s.Score
	}
	m.sessions = len(sessions)
	m.allScore = total / float64(len(sessions))
	m.lastScore = sessions[len(sessions)-1].Score
	m.hasLast = true
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderBody()
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderBody() string {
	lines := []string{titleStyle.Render("tuicw"), m.renderSettings(), ""}
	switch m.phase {
	case phaseReady:
		lines = append(lines, "Press Enter to start, q to quit.")
	case phasePlaying:
		lines = append(lines, accentStyle.Render(fmt.Sprintf("Listen: %d words", len(m.challenge))), pendingStyle.Render("esc to skip playback"))
	case phaseInput:
		for i, r := range m.responses {
			lines = append(lines, pendingStyle.Render(fmt.Sprintf("%d. %s", i+1, r)))
		}
		lines = append(lines,
			fmt.Sprintf("Word %d/%d", len(m.responses)+1, len(m.challenge)),
			m.input.View(),
			pendingStyle.Render("enter submit · ctrl+r replay · esc finish"),
		)
	case phaseResult:
		lines = append(lines, m.renderResult()...)
	}
	if m.notice != "" {
		lines = append(lines, "", accentStyle.Render(m.notice))
	}
	if m.errMsg != "" {
		lines = append(lines, "", incorrectStyle.Render(m.errMsg))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderSettings() string {
	return pendingStyle.Render(fmt.Sprintf("Pool %s (%d) · %d WPM · %.0f Hz · %d×%d",
		m.Pool(), len(m.Pool()), m.config.WPM, m.config.ToneHz, m.config.Words, m.config.WordLength))
}

func (m *Model) renderResult() []string {
	width := columnWidth(m.result.Words)
	lines := make([]string, 0, len(m.result.Words)+4)
	for _, w := range m.result.Words {
		lines = append(lines, fmt.Sprintf("%s  %s  %3d%%",
			padStyled(buildStyledRunes([]rune(w.Expected), []rune(w.Expected)), width),
			padStyled(buildStyledRunes([]rune(w.Expected), []rune(w.Actual)), width),
			w.Score))
	}
	lines = append(lines, "", fmt.Sprintf("Match score: %.1f%%", m.result.Overall))
	if m.offerAdvance {
		next := morse.KochOrder[m.config.PoolSize]
		lines = append(lines, accentStyle.Render(fmt.Sprintf("Good score! Add %c to the pool? (y/n)", next)))
	} else {
		lines = append(lines, pendingStyle.Render("Enter for next exercise, q to quit."))
	}
	return lines
}

func (m *Model) renderFooter() string {
	segments := []string{fmt.Sprintf("Sessions %d", m.sessions)}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f%%", m.lastScore))
	}
	segments = append(segments, fmt.Sprintf("All-time %.1f%%", m.allScore))
	return footerStyle.Render(strings.Join(segments, "  "))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
