package storage

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/ckramer/tyke/internal/constants"
	"github.com/ckramer/tyke/internal/models"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tyke.db")
	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreInit(t *testing.T) {
	store := setupSQLiteStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() returned unexpected error: %v", err)
	}
	if settings.DefaultTone != models.ToneChime {
		t.Errorf("default tone = %s, want %s", settings.DefaultTone, models.ToneChime)
	}

	progress, err := store.GetProgress()
	if err != nil {
		t.Fatalf("GetProgress() returned unexpected error: %v", err)
	}
	if progress.TotalTimersCompleted != 0 {
		t.Errorf("fresh progress should have zero completions, got %d", progress.TotalTimersCompleted)
	}
}

func TestSQLiteStoreSettingsRoundTrip(t *testing.T) {
	store := setupSQLiteStore(t)

	settings := models.Settings{
		SoundEnabled:   false,
		HapticsEnabled: true,
		Theme:          "ocean",
		DefaultTone:    models.ToneXylophone,
		Timezone:       "America/Denver",
	}
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}

	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() failed: %v", err)
	}
	if got != settings {
		t.Errorf("settings round trip mismatch: got %+v, want %+v", got, settings)
	}
}

func TestSQLiteStoreTimers(t *testing.T) {
	store := setupSQLiteStore(t)

	end := time.Now().Add(10 * time.Minute).UTC().Truncate(time.Millisecond)
	done := time.Now().Add(-time.Hour).UTC().Truncate(time.Millisecond)
	timers := []models.Timer{
		{
			ID:               "t1",
			ActivityKind:     models.ActivityScreenTime,
			Label:            "Screen Time",
			TotalSeconds:     1800,
			RemainingSeconds: 600,
			Running:          true,
			ScheduledEnd:     &end,
			SoundTone:        models.TonePlayful,
			AlertHandle:      "alert-17",
			CreatedAt:        time.Now().UTC().Truncate(time.Millisecond),
		},
		{
			ID:               "t2",
			ActivityKind:     models.ActivityCleanup,
			Label:            "Cleanup",
			TotalSeconds:     600,
			RemainingSeconds: 0,
			CompletedAt:      &done,
			SoundTone:        models.ToneCelebration,
			CreatedAt:        time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	if err := store.SaveTimers(timers); err != nil {
		t.Fatalf("SaveTimers() failed: %v", err)
	}

	got, err := store.GetTimers()
	if err != nil {
		t.Fatalf("GetTimers() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetTimers() returned %d timers, want 2", len(got))
	}
	if got[0].ID != "t1" || got[1].ID != "t2" {
		t.Errorf("timer order not preserved: got %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].ScheduledEnd == nil || !got[0].ScheduledEnd.Equal(end) {
		t.Errorf("scheduled end mismatch: got %v, want %v", got[0].ScheduledEnd, end)
	}
	if got[0].AlertHandle != "alert-17" {
		t.Errorf("alert handle = %q, want alert-17", got[0].AlertHandle)
	}
	if got[1].CompletedAt == nil || !got[1].CompletedAt.Equal(done) {
		t.Errorf("completed at mismatch: got %v, want %v", got[1].CompletedAt, done)
	}

	// Saving a shorter list removes the rest
	if err := store.SaveTimers(timers[:1]); err != nil {
		t.Fatalf("SaveTimers() failed: %v", err)
	}
	got, err = store.GetTimers()
	if err != nil {
		t.Fatalf("GetTimers() failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("GetTimers() returned %d timers after truncating save, want 1", len(got))
	}
}

func TestSQLiteStoreHistoryCap(t *testing.T) {
	store := setupSQLiteStore(t)

	base := time.Now().UTC()
	for i := 0; i < constants.HistoryLimit+5; i++ {
		entry := models.HistoryEntry{
			ID:              fmt.Sprintf("h%d", i),
			ActivityKind:    models.ActivitySnackTime,
			Label:           "Snack Time",
			DurationSeconds: 300,
			CompletedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.AppendHistory(entry); err != nil {
			t.Fatalf("AppendHistory() failed: %v", err)
		}
	}

	entries, err := store.GetHistory(0)
	if err != nil {
		t.Fatalf("GetHistory() failed: %v", err)
	}
	if len(entries) != constants.HistoryLimit {
		t.Errorf("history length = %d, want %d", len(entries), constants.HistoryLimit)
	}
	wantNewest := fmt.Sprintf("h%d", constants.HistoryLimit+4)
	if entries[0].ID != wantNewest {
		t.Errorf("newest entry = %s, want %s", entries[0].ID, wantNewest)
	}
}

func TestSQLiteStoreProgressRoundTrip(t *testing.T) {
	store := setupSQLiteStore(t)

	p := models.NewProgress()
	p.TotalTimersCompleted = 12
	p.TotalMinutesCompleted = 95
	p.CurrentStreak = 4
	p.LongestStreak = 9
	p.LastCompletedDate = "2026-08-31"
	p.ActivityCounts[models.ActivityHomework] = 6
	p.ActivityCounts[models.ActivityBrushTeeth] = 3
	p.EarnedBadges = []string{"first_timer", "five_timers", "ten_timers"}

	if err := store.SaveProgress(p); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}

	got, err := store.GetProgress()
	if err != nil {
		t.Fatalf("GetProgress() failed: %v", err)
	}
	if got.TotalTimersCompleted != 12 || got.LongestStreak != 9 {
		t.Errorf("progress mismatch: %+v", got)
	}
	if got.LastCompletedDate != "2026-08-31" {
		t.Errorf("last completed date = %q, want 2026-08-31", got.LastCompletedDate)
	}
	if got.ActivityCounts[models.ActivityHomework] != 6 {
		t.Errorf("homework count = %d, want 6", got.ActivityCounts[models.ActivityHomework])
	}
	if len(got.EarnedBadges) != 3 || got.EarnedBadges[2] != "ten_timers" {
		t.Errorf("badge order not preserved: %v", got.EarnedBadges)
	}
}

func TestSQLiteStoreLoadExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tyke.db")
	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := store.AddCustomActivity(models.CustomActivity{ID: "c1", Name: "Chores", DefaultMinutes: 15}); err != nil {
		t.Fatalf("AddCustomActivity() failed: %v", err)
	}
	store.Close()

	reopened := NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	defer reopened.Close()

	activities, err := reopened.GetCustomActivities()
	if err != nil {
		t.Fatalf("GetCustomActivities() failed: %v", err)
	}
	if len(activities) != 1 || activities[0].Name != "Chores" {
		t.Errorf("custom activities not persisted: %+v", activities)
	}
}

func TestSQLiteStoreLoadMissingFile(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("Load() should fail when database file does not exist")
	}
}
