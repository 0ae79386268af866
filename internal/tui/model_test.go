package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuicw/internal/audio"
	"github.com/verte-zerg/tuicw/internal/generator"
	"github.com/verte-zerg/tuicw/internal/model"
	"github.com/verte-zerg/tuicw/internal/store"
	"github.com/verte-zerg/tuicw/internal/trainer"
)

func newTestModel(t *testing.T, cfg model.Config) (*Model, *store.Store, *int) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "tuicw.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	played := 0
	sink := audio.SinkFunc(func(_ context.Context, samples []float32) error {
		if len(samples) == 0 {
			t.Fatalf("expected rendered samples")
		}
		played++
		return nil
	})
	tr := trainer.New(sink, audio.DefaultOptions())
	m := NewModel(cfg, st, generator.NewSeeded(1), tr, nil)
	m.leadIn = 0
	return m, st, &played
}

func send(t *testing.T, m *Model, msg tea.Msg) tea.Cmd {
	t.Helper()
	_, cmd := m.Update(msg)
	return cmd
}

func typeWord(t *testing.T, m *Model, word string) {
	t.Helper()
	send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(word)})
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestPracticeFlowPerfectScoreOffersAdvance(t *testing.T) {
	cfg := model.Config{ToneHz: 1800, WPM: 20, Volume: 0.25, PoolSize: 2, WordLength: 3, Words: 2}
	m, st, played := newTestModel(t, cfg)

	cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.phase != phasePlaying || cmd == nil {
		t.Fatalf("expected playback to start")
	}
	send(t, m, cmd())
	if *played != 2 {
		t.Fatalf("expected 2 played words, got %d", *played)
	}
	if m.phase != phaseInput {
		t.Fatalf("expected input phase, got %v", m.phase)
	}
	for _, w := range m.challenge {
		typeWord(t, m, w)
	}
	if m.phase != phaseResult {
		t.Fatalf("expected result phase, got %v", m.phase)
	}
	if m.result.Overall != 100 || !m.offerAdvance {
		t.Fatalf("expected perfect score with advance offer, got %+v", m.result)
	}

	send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if m.config.PoolSize != 3 || m.Pool() != "KMU" {
		t.Fatalf("expected pool to grow to KMU, got %q", m.Pool())
	}
	size, ok, err := st.PoolSize(context.Background())
	if err != nil || !ok || size != 3 {
		t.Fatalf("expected stored pool size 3, got %d ok=%v err=%v", size, ok, err)
	}
	sessions, err := st.ListSessions(context.Background(), model.StatsConfig{})
	if err != nil || len(sessions) != 1 {
		t.Fatalf("expected 1 stored session, got %d err=%v", len(sessions), err)
	}
}

func TestPracticeFlowEarlyFinishTruncates(t *testing.T) {
	cfg := model.Config{ToneHz: 1800, WPM: 20, Volume: 0.25, PoolSize: 2, WordLength: 2, Words: 3}
	m, _, _ := newTestModel(t, cfg)

	cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	send(t, m, cmd())
	typeWord(t, m, "")
	send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.phase != phaseResult {
		t.Fatalf("expected result phase, got %v", m.phase)
	}
	if len(m.result.Words) != 1 || m.result.Overall != 0 || m.offerAdvance {
		t.Fatalf("unexpected result %+v", m.result)
	}
}

func TestStalePlaybackIgnored(t *testing.T) {
	cfg := model.Config{ToneHz: 1800, WPM: 20, Volume: 0.25, PoolSize: 2, WordLength: 2, Words: 1}
	m, _, _ := newTestModel(t, cfg)
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	send(t, m, playedMsg{id: m.playID - 1})
	if m.phase != phasePlaying {
		t.Fatalf("expected stale playback message to be ignored")
	}
}
