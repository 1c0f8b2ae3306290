package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ckramer/tyke/internal/constants"
	"github.com/ckramer/tyke/internal/models"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS timers (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		activity_kind TEXT NOT NULL,
		label TEXT NOT NULL,
		total_seconds INTEGER NOT NULL,
		remaining_seconds INTEGER NOT NULL,
		running INTEGER NOT NULL,
		paused INTEGER NOT NULL,
		scheduled_end TEXT,
		completed_at TEXT,
		sound_tone TEXT NOT NULL,
		alert_handle TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS progress (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		total_timers INTEGER NOT NULL,
		total_minutes INTEGER NOT NULL,
		current_streak INTEGER NOT NULL,
		longest_streak INTEGER NOT NULL,
		last_completed_date TEXT NOT NULL DEFAULT '',
		activity_counts TEXT NOT NULL DEFAULT '{}',
		earned_badges TEXT NOT NULL DEFAULT '[]'
	)`,
	`CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		activity_kind TEXT NOT NULL,
		label TEXT NOT NULL,
		duration_seconds INTEGER NOT NULL,
		completed_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS custom_activities (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		default_minutes INTEGER NOT NULL,
		icon TEXT NOT NULL DEFAULT ''
	)`,
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.createSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	// Initialize the progress singleton if not present
	if _, err := s.GetProgress(); err != nil {
		if err := s.SaveProgress(models.NewProgress()); err != nil {
			return fmt.Errorf("failed to save initial progress: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'tyke init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema statements are idempotent, so opening an older database
	// upgrades it in place.
	return s.createSchema()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) createSchema() error {
	for _, stmt := range sqliteSchema {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case "sound_enabled":
			settings.SoundEnabled = value == "true"
		case "haptics_enabled":
			settings.HapticsEnabled = value == "true"
		case "theme":
			settings.Theme = value
		case "default_tone":
			settings.DefaultTone = models.SoundToneID(value)
		case "timezone":
			settings.Timezone = value
		}
		count++
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec("sound_enabled", fmt.Sprintf("%v", settings.SoundEnabled)); err != nil {
		return err
	}
	if _, err := stmt.Exec("haptics_enabled", fmt.Sprintf("%v", settings.HapticsEnabled)); err != nil {
		return err
	}
	if _, err := stmt.Exec("theme", settings.Theme); err != nil {
		return err
	}
	if _, err := stmt.Exec("default_tone", string(settings.DefaultTone)); err != nil {
		return err
	}
	if _, err := stmt.Exec("timezone", settings.Timezone); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetTimers() ([]models.Timer, error) {
	rows, err := s.db.Query(`
		SELECT id, activity_kind, label, total_seconds, remaining_seconds,
		       running, paused, scheduled_end, completed_at, sound_tone,
		       alert_handle, created_at
		FROM timers ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var timers []models.Timer
	for rows.Next() {
		var t models.Timer
		var running, paused bool
		var scheduledEnd, completedAt sql.NullString
		var createdAt string

		err := rows.Scan(
			&t.ID, &t.ActivityKind, &t.Label, &t.TotalSeconds, &t.RemainingSeconds,
			&running, &paused, &scheduledEnd, &completedAt, &t.SoundTone,
			&t.AlertHandle, &createdAt,
		)
		if err != nil {
			return nil, err
		}

		t.Running = running
		t.Paused = paused

		if scheduledEnd.Valid {
			if end, err := time.Parse(time.RFC3339Nano, scheduledEnd.String); err == nil {
				t.ScheduledEnd = &end
			}
		}
		if completedAt.Valid {
			if done, err := time.Parse(time.RFC3339Nano, completedAt.String); err == nil {
				t.CompletedAt = &done
			}
		}
		if created, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			t.CreatedAt = created
		}

		timers = append(timers, t)
	}

	return timers, nil
}

func (s *SQLiteStore) SaveTimers(timers []models.Timer) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The timer list is a single logical resource: replace it wholesale so
	// removals and reorderings stay consistent with the in-memory state.
	if _, err := tx.Exec("DELETE FROM timers"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO timers (
			id, position, activity_kind, label, total_seconds, remaining_seconds,
			running, paused, scheduled_end, completed_at, sound_tone, alert_handle, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, t := range timers {
		var scheduledEnd, completedAt sql.NullString
		if t.ScheduledEnd != nil {
			scheduledEnd = sql.NullString{String: t.ScheduledEnd.Format(time.RFC3339Nano), Valid: true}
		}
		if t.CompletedAt != nil {
			completedAt = sql.NullString{String: t.CompletedAt.Format(time.RFC3339Nano), Valid: true}
		}

		_, err = stmt.Exec(
			t.ID, i, t.ActivityKind, t.Label, t.TotalSeconds, t.RemainingSeconds,
			t.Running, t.Paused, scheduledEnd, completedAt, t.SoundTone, t.AlertHandle,
			t.CreatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetProgress() (models.Progress, error) {
	row := s.db.QueryRow(`
		SELECT total_timers, total_minutes, current_streak, longest_streak,
		       last_completed_date, activity_counts, earned_badges
		FROM progress WHERE id = 1`)

	p := models.NewProgress()
	var counts, badges string
	err := row.Scan(
		&p.TotalTimersCompleted, &p.TotalMinutesCompleted, &p.CurrentStreak,
		&p.LongestStreak, &p.LastCompletedDate, &counts, &badges,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Progress{}, fmt.Errorf("progress not found")
		}
		return models.Progress{}, err
	}

	if err := json.Unmarshal([]byte(counts), &p.ActivityCounts); err != nil {
		return models.Progress{}, fmt.Errorf("failed to parse activity counts: %w", err)
	}
	if err := json.Unmarshal([]byte(badges), &p.EarnedBadges); err != nil {
		return models.Progress{}, fmt.Errorf("failed to parse earned badges: %w", err)
	}

	return p, nil
}

func (s *SQLiteStore) SaveProgress(progress models.Progress) error {
	counts, err := json.Marshal(progress.ActivityCounts)
	if err != nil {
		return fmt.Errorf("failed to marshal activity counts: %w", err)
	}
	badges, err := json.Marshal(progress.EarnedBadges)
	if err != nil {
		return fmt.Errorf("failed to marshal earned badges: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO progress (
			id, total_timers, total_minutes, current_streak, longest_streak,
			last_completed_date, activity_counts, earned_badges
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?)`,
		progress.TotalTimersCompleted, progress.TotalMinutesCompleted,
		progress.CurrentStreak, progress.LongestStreak, progress.LastCompletedDate,
		string(counts), string(badges),
	)
	return err
}

func (s *SQLiteStore) AppendHistory(entry models.HistoryEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO history (id, activity_kind, label, duration_seconds, completed_at)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.ActivityKind, entry.Label, entry.DurationSeconds,
		entry.CompletedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	// Evict entries beyond the cap, oldest first
	_, err = tx.Exec(`
		DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY completed_at DESC LIMIT ?
		)`, constants.HistoryLimit)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetHistory(limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 || limit > constants.HistoryLimit {
		limit = constants.HistoryLimit
	}

	rows, err := s.db.Query(`
		SELECT id, activity_kind, label, duration_seconds, completed_at
		FROM history ORDER BY completed_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		var completedAt string
		if err := rows.Scan(&e.ID, &e.ActivityKind, &e.Label, &e.DurationSeconds, &completedAt); err != nil {
			return nil, err
		}
		if done, err := time.Parse(time.RFC3339Nano, completedAt); err == nil {
			e.CompletedAt = done
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func (s *SQLiteStore) AddCustomActivity(activity models.CustomActivity) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO custom_activities (id, name, default_minutes, icon)
		VALUES (?, ?, ?, ?)`,
		activity.ID, activity.Name, activity.DefaultMinutes, activity.Icon,
	)
	return err
}

func (s *SQLiteStore) GetCustomActivities() ([]models.CustomActivity, error) {
	rows, err := s.db.Query("SELECT id, name, default_minutes, icon FROM custom_activities ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.CustomActivity
	for rows.Next() {
		var a models.CustomActivity
		if err := rows.Scan(&a.ID, &a.Name, &a.DefaultMinutes, &a.Icon); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}

	return activities, nil
}

func (s *SQLiteStore) DeleteCustomActivity(id string) error {
	res, err := s.db.Exec("DELETE FROM custom_activities WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("custom activity not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// GetDB exposes the underlying handle for diagnostics.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}
