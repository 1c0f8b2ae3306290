package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ckramer/tyke/internal/constants"
	"github.com/ckramer/tyke/internal/models"
	_ "github.com/lib/pq"
)

type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		connStr: connStr,
	}
}

var postgresSchema = []string{
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
		running BOOLEAN NOT NULL,
		paused BOOLEAN NOT NULL,
		scheduled_end TIMESTAMPTZ,
		completed_at TIMESTAMPTZ,
		sound_tone TEXT NOT NULL,
		alert_handle TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS progress (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		total_timers INTEGER NOT NULL,
		total_minutes INTEGER NOT NULL,
		current_streak INTEGER NOT NULL,
		longest_streak INTEGER NOT NULL,
		last_completed_date TEXT NOT NULL DEFAULT '',
		activity_counts JSONB NOT NULL DEFAULT '{}',
		earned_badges JSONB NOT NULL DEFAULT '[]'
	)`,
	`CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		activity_kind TEXT NOT NULL,
		label TEXT NOT NULL,
		duration_seconds INTEGER NOT NULL,
		completed_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS custom_activities (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		default_minutes INTEGER NOT NULL,
		icon TEXT NOT NULL DEFAULT ''
	)`,
}

func (s *PostgresStore) Init() error {
	// Open database connection
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Test connection
	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

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

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Test connection
	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return s.createSchema()
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) createSchema() error {
	for _, stmt := range postgresSchema {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) GetSettings() (models.Settings, error) {
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

func (s *PostgresStore) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`)
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

func (s *PostgresStore) GetTimers() ([]models.Timer, error) {
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
		var scheduledEnd, completedAt sql.NullTime

		err := rows.Scan(
			&t.ID, &t.ActivityKind, &t.Label, &t.TotalSeconds, &t.RemainingSeconds,
			&t.Running, &t.Paused, &scheduledEnd, &completedAt, &t.SoundTone,
			&t.AlertHandle, &t.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if scheduledEnd.Valid {
			end := scheduledEnd.Time
			t.ScheduledEnd = &end
		}
		if completedAt.Valid {
			done := completedAt.Time
			t.CompletedAt = &done
		}

		timers = append(timers, t)
	}

	return timers, nil
}

func (s *PostgresStore) SaveTimers(timers []models.Timer) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM timers"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO timers (
			id, position, activity_kind, label, total_seconds, remaining_seconds,
			running, paused, scheduled_end, completed_at, sound_tone, alert_handle, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, t := range timers {
		var scheduledEnd, completedAt sql.NullTime
		if t.ScheduledEnd != nil {
			scheduledEnd = sql.NullTime{Time: *t.ScheduledEnd, Valid: true}
		}
		if t.CompletedAt != nil {
			completedAt = sql.NullTime{Time: *t.CompletedAt, Valid: true}
		}

		_, err = stmt.Exec(
			t.ID, i, t.ActivityKind, t.Label, t.TotalSeconds, t.RemainingSeconds,
			t.Running, t.Paused, scheduledEnd, completedAt, t.SoundTone, t.AlertHandle,
			t.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) GetProgress() (models.Progress, error) {
	row := s.db.QueryRow(`
		SELECT total_timers, total_minutes, current_streak, longest_streak,
		       last_completed_date, activity_counts, earned_badges
		FROM progress WHERE id = 1`)

	p := models.NewProgress()
	var counts, badges []byte
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

	if err := json.Unmarshal(counts, &p.ActivityCounts); err != nil {
		return models.Progress{}, fmt.Errorf("failed to parse activity counts: %w", err)
	}
	if err := json.Unmarshal(badges, &p.EarnedBadges); err != nil {
		return models.Progress{}, fmt.Errorf("failed to parse earned badges: %w", err)
	}

	return p, nil
}

func (s *PostgresStore) SaveProgress(progress models.Progress) error {
	counts, err := json.Marshal(progress.ActivityCounts)
	if err != nil {
		return fmt.Errorf("failed to marshal activity counts: %w", err)
	}
	badges, err := json.Marshal(progress.EarnedBadges)
	if err != nil {
		return fmt.Errorf("failed to marshal earned badges: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO progress (
			id, total_timers, total_minutes, current_streak, longest_streak,
			last_completed_date, activity_counts, earned_badges
		) VALUES (1, $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			total_timers = EXCLUDED.total_timers,
			total_minutes = EXCLUDED.total_minutes,
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			last_completed_date = EXCLUDED.last_completed_date,
			activity_counts = EXCLUDED.activity_counts,
			earned_badges = EXCLUDED.earned_badges`,
		progress.TotalTimersCompleted, progress.TotalMinutesCompleted,
		progress.CurrentStreak, progress.LongestStreak, progress.LastCompletedDate,
		counts, badges,
	)
	return err
}

func (s *PostgresStore) AppendHistory(entry models.HistoryEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO history (id, activity_kind, label, duration_seconds, completed_at)
		VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.ActivityKind, entry.Label, entry.DurationSeconds, entry.CompletedAt,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY completed_at DESC LIMIT $1
		)`, constants.HistoryLimit)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *PostgresStore) GetHistory(limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 || limit > constants.HistoryLimit {
		limit = constants.HistoryLimit
	}

	rows, err := s.db.Query(`
		SELECT id, activity_kind, label, duration_seconds, completed_at
		FROM history ORDER BY completed_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.ActivityKind, &e.Label, &e.DurationSeconds, &e.CompletedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func (s *PostgresStore) AddCustomActivity(activity models.CustomActivity) error {
	_, err := s.db.Exec(`
		INSERT INTO custom_activities (id, name, default_minutes, icon)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			default_minutes = EXCLUDED.default_minutes,
			icon = EXCLUDED.icon`,
		activity.ID, activity.Name, activity.DefaultMinutes, activity.Icon,
	)
	return err
}

func (s *PostgresStore) GetCustomActivities() ([]models.CustomActivity, error) {
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

func (s *PostgresStore) DeleteCustomActivity(id string) error {
	res, err := s.db.Exec("DELETE FROM custom_activities WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("custom activity not found: %s", id)
	}
	return nil
}

func (s *PostgresStore) GetConfigPath() string {
	return "postgres"
}
