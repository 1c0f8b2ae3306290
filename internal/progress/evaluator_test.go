package progress

import (
	"testing"

	"github.com/ckramer/tyke/internal/models"
)

func completedTimer(kind models.ActivityKind, totalSeconds int) models.Timer {
	return models.Timer{
		ID:           "t1",
		ActivityKind: kind,
		Label:        "Test",
		TotalSeconds: totalSeconds,
		SoundTone:    models.ToneChime,
	}
}

func TestEvaluateCounters(t *testing.T) {
	prior := models.NewProgress()
	next, _ := Evaluate(prior, completedTimer(models.ActivityHomework, 1800), "2026-08-01")

	if next.TotalTimersCompleted != 1 {
		t.Errorf("total timers = %d, want 1", next.TotalTimersCompleted)
	}
	if next.TotalMinutesCompleted != 30 {
		t.Errorf("total minutes = %d, want 30", next.TotalMinutesCompleted)
	}
	if next.ActivityCounts[models.ActivityHomework] != 1 {
		t.Errorf("homework count = %d, want 1", next.ActivityCounts[models.ActivityHomework])
	}
}

func TestEvaluateMinutesFloor(t *testing.T) {
	prior := models.NewProgress()
	// 90 seconds floors to 1 minute
	next, _ := Evaluate(prior, completedTimer(models.ActivityPlaytime, 90), "2026-08-01")
	if next.TotalMinutesCompleted != 1 {
		t.Errorf("total minutes = %d, want 1", next.TotalMinutesCompleted)
	}

	// Under a minute contributes nothing
	next, _ = Evaluate(next, completedTimer(models.ActivityPlaytime, 45), "2026-08-01")
	if next.TotalMinutesCompleted != 1 {
		t.Errorf("total minutes = %d, want 1 after sub-minute completion", next.TotalMinutesCompleted)
	}
}

func TestEvaluateStreaks(t *testing.T) {
	t.Run("first ever completion starts streak at 1", func(t *testing.T) {
		next, _ := Evaluate(models.NewProgress(), completedTimer(models.ActivityReading, 600), "2026-08-01")
		if next.CurrentStreak != 1 || next.LongestStreak != 1 {
			t.Errorf("streak = %d/%d, want 1/1", next.CurrentStreak, next.LongestStreak)
		}
		if next.LastCompletedDate != "2026-08-01" {
			t.Errorf("last completed date = %q, want 2026-08-01", next.LastCompletedDate)
		}
	})

	t.Run("same day does not inflate streak", func(t *testing.T) {
		next, _ := Evaluate(models.NewProgress(), completedTimer(models.ActivityReading, 600), "2026-08-01")
		next, _ = Evaluate(next, completedTimer(models.ActivityReading, 600), "2026-08-01")
		next, _ = Evaluate(next, completedTimer(models.ActivityCleanup, 600), "2026-08-01")
		if next.CurrentStreak != 1 {
			t.Errorf("streak = %d after three same-day completions, want 1", next.CurrentStreak)
		}
		if next.TotalTimersCompleted != 3 {
			t.Errorf("total timers = %d, want 3", next.TotalTimersCompleted)
		}
	})

	t.Run("next day increments streak", func(t *testing.T) {
		next, _ := Evaluate(models.NewProgress(), completedTimer(models.ActivityReading, 600), "2026-08-01")
		next, _ = Evaluate(next, completedTimer(models.ActivityReading, 600), "2026-08-02")
		next, _ = Evaluate(next, completedTimer(models.ActivityReading, 600), "2026-08-03")
		if next.CurrentStreak != 3 || next.LongestStreak != 3 {
			t.Errorf("streak = %d/%d, want 3/3", next.CurrentStreak, next.LongestStreak)
		}
	})

	t.Run("gap of two or more days resets streak", func(t *testing.T) {
		next, _ := Evaluate(models.NewProgress(), completedTimer(models.ActivityReading, 600), "2026-08-01")
		next, _ = Evaluate(next, completedTimer(models.ActivityReading, 600), "2026-08-02")
		next, _ = Evaluate(next, completedTimer(models.ActivityReading, 600), "2026-08-05")
		if next.CurrentStreak != 1 {
			t.Errorf("streak = %d after gap, want 1", next.CurrentStreak)
		}
		if next.LongestStreak != 2 {
			t.Errorf("longest streak = %d, want 2", next.LongestStreak)
		}
	})

	t.Run("streak spans month boundary", func(t *testing.T) {
		next, _ := Evaluate(models.NewProgress(), completedTimer(models.ActivityReading, 600), "2026-08-31")
		next, _ = Evaluate(next, completedTimer(models.ActivityReading, 600), "2026-09-01")
		if next.CurrentStreak != 2 {
			t.Errorf("streak = %d across month boundary, want 2", next.CurrentStreak)
		}
	})
}

func TestEvaluateFirstTimerBadge(t *testing.T) {
	next, badge := Evaluate(models.NewProgress(), completedTimer(models.ActivityReading, 60), "2026-08-01")
	if badge != "first_timer" {
		t.Errorf("new badge = %q, want first_timer", badge)
	}
	if !next.HasBadge("first_timer") {
		t.Error("first_timer should be in earned badges")
	}
}

func TestEvaluateOneBadgePerCompletion(t *testing.T) {
	// A single completion worth 300 minutes crosses first_timer, hour_hero,
	// and time_master at once. Only the earliest catalog entry unlocks now.
	next, badge := Evaluate(models.NewProgress(), completedTimer(models.ActivityCustom, 300*60), "2026-08-01")
	if badge != "first_timer" {
		t.Errorf("new badge = %q, want first_timer", badge)
	}
	if next.HasBadge("hour_hero") || next.HasBadge("time_master") {
		t.Errorf("later catalog badges should stay unearned this call: %v", next.EarnedBadges)
	}

	// The deferred badges unlock on subsequent completions, one per call.
	next, badge = Evaluate(next, completedTimer(models.ActivityCustom, 60), "2026-08-01")
	if badge != "hour_hero" {
		t.Errorf("new badge = %q, want hour_hero", badge)
	}
	next, badge = Evaluate(next, completedTimer(models.ActivityCustom, 60), "2026-08-01")
	if badge != "time_master" {
		t.Errorf("new badge = %q, want time_master", badge)
	}
	_, badge = Evaluate(next, completedTimer(models.ActivityCustom, 60), "2026-08-01")
	if badge != "" {
		t.Errorf("new badge = %q, want none", badge)
	}
}

func TestEvaluateActivityCountBadge(t *testing.T) {
	next := models.NewProgress()
	// Burn through the count-threshold badges first so they don't mask bookworm
	var badge string
	for i := 0; i < 9; i++ {
		next, _ = Evaluate(next, completedTimer(models.ActivityReading, 60), "2026-08-01")
	}
	next, badge = Evaluate(next, completedTimer(models.ActivityReading, 60), "2026-08-01")
	if badge != "ten_timers" {
		t.Errorf("new badge = %q, want ten_timers", badge)
	}
	if next.ActivityCounts[models.ActivityReading] != 10 {
		t.Fatalf("reading count = %d, want 10", next.ActivityCounts[models.ActivityReading])
	}
	// Reading count already crossed 10, so bookworm unlocks on the next call
	_, badge = Evaluate(next, completedTimer(models.ActivityPlaytime, 60), "2026-08-01")
	if badge != "bookworm" {
		t.Errorf("new badge = %q, want bookworm", badge)
	}
}

func TestEvaluateDoesNotMutatePrior(t *testing.T) {
	prior := models.NewProgress()
	prior.ActivityCounts[models.ActivityReading] = 2
	prior.EarnedBadges = []string{"first_timer"}
	prior.TotalTimersCompleted = 2

	Evaluate(prior, completedTimer(models.ActivityReading, 600), "2026-08-01")

	if prior.TotalTimersCompleted != 2 {
		t.Errorf("prior total timers mutated: %d", prior.TotalTimersCompleted)
	}
	if prior.ActivityCounts[models.ActivityReading] != 2 {
		t.Errorf("prior activity counts mutated: %d", prior.ActivityCounts[models.ActivityReading])
	}
	if len(prior.EarnedBadges) != 1 {
		t.Errorf("prior earned badges mutated: %v", prior.EarnedBadges)
	}
}
