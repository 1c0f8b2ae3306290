// Package progress computes aggregate completion statistics. Evaluate is a
// pure function so the same completion event always produces the same
// result regardless of engine state.
package progress

import (
	"github.com/ckramer/tyke/internal/models"
	"github.com/ckramer/tyke/internal/utils"
)

// Evaluate folds a single timer completion into the prior progress snapshot.
// today is the completion's calendar date in the household timezone
// (YYYY-MM-DD). It returns the updated progress and the id of the newly
// earned badge, or "" when no badge unlocked on this completion.
func Evaluate(prior models.Progress, completed models.Timer, today string) (models.Progress, string) {
	next := clone(prior)

	next.TotalTimersCompleted++
	next.TotalMinutesCompleted += completed.TotalSeconds / 60
	next.ActivityCounts[completed.ActivityKind]++

	// Streak is keyed by calendar date, so a second completion on the same
	// day leaves it untouched.
	switch {
	case next.LastCompletedDate == today:
	case next.LastCompletedDate == "":
		next.CurrentStreak = 1
	default:
		gap, err := utils.DiffDays(next.LastCompletedDate, today)
		if err == nil && gap == 1 {
			next.CurrentStreak++
		} else {
			next.CurrentStreak = 1
		}
	}
	next.LastCompletedDate = today
	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}

	// Only the first newly eligible badge in catalog order unlocks per
	// completion. Any others stay eligible and unlock on a later one.
	newBadge := ""
	for _, badge := range models.Badges {
		if next.HasBadge(badge.ID) {
			continue
		}
		if badge.Earned(next) {
			next.EarnedBadges = append(next.EarnedBadges, badge.ID)
			newBadge = badge.ID
			break
		}
	}

	return next, newBadge
}

func clone(p models.Progress) models.Progress {
	next := p
	next.ActivityCounts = make(map[models.ActivityKind]int, len(p.ActivityCounts))
	for kind, count := range p.ActivityCounts {
		next.ActivityCounts[kind] = count
	}
	next.EarnedBadges = append([]string(nil), p.EarnedBadges...)
	return next
}
