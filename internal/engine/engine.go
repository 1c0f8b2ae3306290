// Package engine owns the timer lifecycle: creation, pause/resume, per-second
// ticking, and reconciliation of elapsed wall-clock time after the process
// was suspended or restarted.
//
// The engine is single-writer. All mutations happen on one logical thread
// (the TUI event loop or a CLI invocation), so the in-memory list needs no
// locking. Persistence and notifier calls are best effort: a failed write is
// logged and swallowed, and the in-memory state stays authoritative for the
// session.
package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/ckramer/tyke/internal/logger"
	"github.com/ckramer/tyke/internal/models"
	"github.com/ckramer/tyke/internal/notifier"
	"github.com/ckramer/tyke/internal/progress"
	"github.com/ckramer/tyke/internal/storage"
	"github.com/ckramer/tyke/internal/utils"
)

type Engine struct {
	store    storage.Provider
	notifier notifier.Notifier
	clock    Clock

	timers   []models.Timer
	settings models.Settings

	// id of the badge earned by the most recent completion, cleared when
	// the UI consumes it
	newBadge string
}

func New(store storage.Provider, n notifier.Notifier, clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Engine{
		store:    store,
		notifier: n,
		clock:    clock,
		settings: models.DefaultSettings(),
	}
}

// Load pulls persisted state into memory and reconciles timers against the
// wall clock. The process may have been dead for hours, so stored remaining
// values for counting timers are stale by definition and are recomputed from
// their scheduled end.
func (e *Engine) Load() error {
	settings, err := e.store.GetSettings()
	if err != nil {
		logger.Warn("failed to load settings, using defaults", "error", err)
		settings = models.DefaultSettings()
	}
	e.settings = settings

	timers, err := e.store.GetTimers()
	if err != nil {
		return err
	}
	e.timers = timers

	e.Reconcile()
	return nil
}

// Settings returns the settings snapshot loaded at startup.
func (e *Engine) Settings() models.Settings {
	return e.settings
}

// UpdateSettings applies and persists new settings.
func (e *Engine) UpdateSettings(settings models.Settings) error {
	e.settings = settings
	return e.store.SaveSettings(settings)
}

// Timers returns a snapshot of the in-memory timer list, newest first.
func (e *Engine) Timers() []models.Timer {
	out := make([]models.Timer, len(e.timers))
	copy(out, e.timers)
	return out
}

// Timer returns the timer with the given id, if present.
func (e *Engine) Timer(id string) (models.Timer, bool) {
	for i := range e.timers {
		if e.timers[i].ID == id {
			return e.timers[i], true
		}
	}
	return models.Timer{}, false
}

// HasRunnable reports whether any timer is actively counting down. The
// per-second scheduler arms while this holds and disarms when it stops
// holding.
func (e *Engine) HasRunnable() bool {
	for i := range e.timers {
		if e.timers[i].CountingDown() {
			return true
		}
	}
	return false
}

// ConsumeNewBadge returns the most recently earned badge id and clears the
// signal, so a badge popup shows exactly once.
func (e *Engine) ConsumeNewBadge() string {
	badge := e.newBadge
	e.newBadge = ""
	return badge
}

// Create starts a new countdown and persists the updated list before
// returning. Duration is assumed validated as positive by the caller.
func (e *Engine) Create(kind models.ActivityKind, durationMinutes int, label string, soundTone models.SoundToneID) models.Timer {
	now := e.clock.Now()
	end := now.Add(time.Duration(durationMinutes) * time.Minute)

	t := models.Timer{
		ID:               uuid.NewString(),
		ActivityKind:     kind,
		Label:            e.resolveLabel(kind, label),
		TotalSeconds:     durationMinutes * 60,
		RemainingSeconds: durationMinutes * 60,
		Running:          true,
		ScheduledEnd:     &end,
		SoundTone:        e.resolveTone(soundTone),
		CreatedAt:        now,
	}

	if handle, err := e.notifier.ScheduleCompletionAlert(t); err != nil {
		logger.Debug("completion alert not scheduled", "timer", t.ID, "error", err)
	} else {
		t.AlertHandle = handle
	}

	// Newest first
	e.timers = append([]models.Timer{t}, e.timers...)
	e.persist()
	return t
}

// Pause freezes a counting timer. No-op for unknown, already paused, or
// completed timers.
func (e *Engine) Pause(id string) {
	t := e.find(id)
	if t == nil || t.Paused || t.Completed() || !t.Running {
		return
	}

	// Cancel before touching state so a stale alert cannot fire for a
	// timer the user just paused.
	e.cancelAlert(t)

	t.Paused = true
	t.ScheduledEnd = nil
	e.persist()
}

// Resume restarts a paused timer from its frozen remaining time.
func (e *Engine) Resume(id string) {
	t := e.find(id)
	if t == nil || !t.Paused || t.Completed() {
		return
	}

	end := e.clock.Now().Add(time.Duration(t.RemainingSeconds) * time.Second)
	t.ScheduledEnd = &end
	t.Paused = false
	t.Running = true

	if handle, err := e.notifier.ScheduleCompletionAlert(*t); err != nil {
		logger.Debug("completion alert not scheduled", "timer", t.ID, "error", err)
	} else {
		t.AlertHandle = handle
	}

	e.persist()
}

// Reset restores a timer to its full duration and starts it counting.
func (e *Engine) Reset(id string) {
	t := e.find(id)
	if t == nil {
		return
	}

	e.cancelAlert(t)

	end := e.clock.Now().Add(time.Duration(t.TotalSeconds) * time.Second)
	t.RemainingSeconds = t.TotalSeconds
	t.Running = true
	t.Paused = false
	t.CompletedAt = nil
	t.ScheduledEnd = &end

	if handle, err := e.notifier.ScheduleCompletionAlert(*t); err != nil {
		logger.Debug("completion alert not scheduled", "timer", t.ID, "error", err)
	} else {
		t.AlertHandle = handle
	}

	e.persist()
}

// Remove deletes a timer. Idempotent for unknown ids.
func (e *Engine) Remove(id string) {
	for i := range e.timers {
		if e.timers[i].ID != id {
			continue
		}
		e.cancelAlert(&e.timers[i])
		e.timers = append(e.timers[:i], e.timers[i+1:]...)
		e.persist()
		return
	}
}

// Tick advances every counting timer by one second and completes those that
// reach zero. The list is persisted once per tick, after the whole batch.
func (e *Engine) Tick() {
	changed := false
	for i := range e.timers {
		t := &e.timers[i]
		if !t.CountingDown() {
			continue
		}
		t.RemainingSeconds--
		changed = true
		if t.RemainingSeconds <= 0 {
			e.complete(t, e.clock.Now())
		}
	}
	if changed {
		e.persist()
	}
}

// Reconcile catches counting timers up with the wall clock. A timer whose
// scheduled end has passed completed while no ticker was running; its
// completion time is the scheduled end, not now, so history and streaks
// reflect when it actually finished.
func (e *Engine) Reconcile() {
	now := e.clock.Now()
	changed := false

	for i := range e.timers {
		t := &e.timers[i]
		if !t.CountingDown() || t.ScheduledEnd == nil {
			continue
		}

		remainingMs := t.ScheduledEnd.Sub(now).Milliseconds()
		if remainingMs <= 0 {
			completedAt := *t.ScheduledEnd
			e.complete(t, completedAt)
			changed = true
			continue
		}

		remaining := int((remainingMs + 999) / 1000)
		if remaining > t.TotalSeconds {
			remaining = t.TotalSeconds
		}
		if remaining != t.RemainingSeconds {
			t.RemainingSeconds = remaining
			changed = true
		}
	}

	if changed {
		e.persist()
	}
}

// complete runs the completion protocol. Guarded by CompletedAt so it can
// never double-fire for the same timer, whichever path detects the
// completion first.
func (e *Engine) complete(t *models.Timer, completedAt time.Time) {
	if t.Completed() {
		return
	}

	t.RemainingSeconds = 0
	t.Running = false
	t.Paused = false
	t.ScheduledEnd = nil
	t.AlertHandle = ""
	t.CompletedAt = &completedAt

	// Fire and forget
	if err := e.notifier.PlayCompletionFeedback(*t, e.settings); err != nil {
		logger.Debug("completion feedback not delivered", "timer", t.ID, "error", err)
	}

	entry := models.HistoryEntry{
		ID:              t.ID,
		ActivityKind:    t.ActivityKind,
		Label:           t.Label,
		DurationSeconds: t.TotalSeconds,
		CompletedAt:     completedAt,
	}
	if err := e.store.AppendHistory(entry); err != nil {
		logger.Warn("failed to record history", "timer", t.ID, "error", err)
	}

	prior, err := e.store.GetProgress()
	if err != nil {
		logger.Warn("failed to load progress, starting fresh", "error", err)
		prior = models.NewProgress()
	}

	today, err := utils.DateInTimezone(completedAt, e.settings.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, using local date", "timezone", e.settings.Timezone, "error", err)
		today = completedAt.Format("2006-01-02")
	}

	next, newBadge := progress.Evaluate(prior, *t, today)
	if err := e.store.SaveProgress(next); err != nil {
		logger.Warn("failed to save progress", "error", err)
	}
	if newBadge != "" {
		e.newBadge = newBadge
	}
}

func (e *Engine) find(id string) *models.Timer {
	for i := range e.timers {
		if e.timers[i].ID == id {
			return &e.timers[i]
		}
	}
	return nil
}

func (e *Engine) cancelAlert(t *models.Timer) {
	if t.AlertHandle == "" {
		return
	}
	if err := e.notifier.CancelCompletionAlert(t.AlertHandle); err != nil {
		logger.Debug("failed to cancel alert", "timer", t.ID, "error", err)
	}
	t.AlertHandle = ""
}

func (e *Engine) persist() {
	if err := e.store.SaveTimers(e.timers); err != nil {
		logger.Warn("failed to persist timers", "error", err)
	}
}

func (e *Engine) resolveLabel(kind models.ActivityKind, override string) string {
	if override != "" {
		return override
	}
	if activities, err := e.store.GetCustomActivities(); err == nil {
		for _, a := range activities {
			if a.ID == string(kind) {
				return a.Name
			}
		}
	}
	if a, ok := models.ActivityByKind(kind); ok {
		return a.Name
	}
	return "Timer"
}

func (e *Engine) resolveTone(tone models.SoundToneID) models.SoundToneID {
	if tone != "" {
		return tone
	}
	if e.settings.DefaultTone != "" {
		return e.settings.DefaultTone
	}
	return models.ToneChime
}
