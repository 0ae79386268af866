// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	ToneHz     float64
	WPM        int
	Volume     float64
	PoolSize   int
	WordLength int
	Words      int
	WordList   string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since       *time.Time
	Last        int
	CurveWindow int
}

// WordResult is one challenge word and the learner's transcription.
type WordResult struct {
	Expected string
	Actual   string
	Score    int
}

// SessionStats captures a completed practice exercise.
type SessionStats struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Pool       string
	WordLength int
	Words      int
	WPM        int
	ToneHz     float64
	Score      float64
	Correct    int
	Incorrect  int
	DurationMs int64
}

// CharStats stores per-character stats for a session.
type CharStats struct {
	Char      string
	Correct   int
	Incorrect int
}

// CharAggregate aggregates character stats across sessions.
type CharAggregate struct {
	Char      string
	Correct   int
	Incorrect int
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID  int64
	EndedAt    time.Time
	PoolSize   int
	WPM        int
	Score      float64
	Correct    int
	Incorrect  int
	DurationMs int64
}
