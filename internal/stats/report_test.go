package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tuicw/internal/model"
	"github.com/verte-zerg/tuicw/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tuicw.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		stats := model.SessionStats{
			StartedAt:  start,
			EndedAt:    end,
			Pool:       "KM",
			WordLength: 5,
			Words:      1,
			WPM:        20,
			ToneHz:     1800,
			Score:      80,
			Correct:    4,
			Incorrect:  1,
			DurationMs: end.Sub(start).Milliseconds(),
		}
		words := []model.WordResult{{Expected: "KMKMK", Actual: "KMKMM", Score: 80}}
		charStats := []model.CharStats{
			{Char: "K", Correct: 2, Incorrect: 1},
			{Char: "M", Correct: 2, Incorrect: 0},
		}
		id, err := st.InsertSession(ctx, stats, words, charStats)
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}

	cfg := model.StatsConfig{
		Last:        2,
		CurveWindow: 2,
	}
	report, err := BuildReport(ctx, st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(report.Sessions))
	}
	if report.Sessions[0].SessionID != ids[1] || report.Sessions[1].SessionID != ids[2] {
		t.Fatalf("unexpected session ids: %+v", report.Sessions)
	}
	if len(report.WindowSessionIDs) != 2 {
		t.Fatalf("expected 2 window session ids, got %d", len(report.WindowSessionIDs))
	}
	if len(report.CharAggsAll) == 0 || len(report.CharAggsWindow) == 0 {
		t.Fatalf("expected char aggregates")
	}
	if len(report.Weakest) != 1 || report.Weakest[0] != "K" {
		t.Fatalf("expected K as weakest, got %v", report.Weakest)
	}
	if len(report.Missed) != 3 {
		t.Fatalf("expected 3 missed words, got %d", len(report.Missed))
	}
}
