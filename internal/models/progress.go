package models

import "time"

// Progress holds the per-installation aggregate statistics. Counters are
// never decremented; the only writer is the progress evaluator on the
// engine's completion path.
type Progress struct {
	TotalTimersCompleted  int                  `json:"total_timers_completed"`
	TotalMinutesCompleted int                  `json:"total_minutes_completed"`
	CurrentStreak         int                  `json:"current_streak"`
	LongestStreak         int                  `json:"longest_streak"`
	LastCompletedDate     string               `json:"last_completed_date,omitempty"` // YYYY-MM-DD
	ActivityCounts        map[ActivityKind]int `json:"activity_counts"`
	EarnedBadges          []string             `json:"earned_badges"`
}

// NewProgress returns an empty progress record with initialized containers.
func NewProgress() Progress {
	return Progress{
		ActivityCounts: make(map[ActivityKind]int),
		EarnedBadges:   []string{},
	}
}

// HasBadge reports whether the badge id has already been earned.
func (p *Progress) HasBadge(id string) bool {
	for _, b := range p.EarnedBadges {
		if b == id {
			return true
		}
	}
	return false
}

// HistoryEntry is an immutable record of one completed timer.
type HistoryEntry struct {
	ID              string       `json:"id"`
	ActivityKind    ActivityKind `json:"activity_kind"`
	Label           string       `json:"label"`
	DurationSeconds int          `json:"duration_seconds"`
	CompletedAt     time.Time    `json:"completed_at"`
}
