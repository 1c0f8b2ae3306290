package storage

import "github.com/ckramer/tyke/internal/models"

// Provider is the persistence contract consumed by the timer engine and the
// CLI surface. All writes are whole-resource replacements except the history
// log, which is append-only and capped at constants.HistoryLimit entries.
//
// Providers are not safe for concurrent use by multiple goroutines without
// external synchronization; the engine serializes all access on one logical
// thread.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Timers. SaveTimers replaces the whole list; order is preserved
	// (most recently created first).
	GetTimers() ([]models.Timer, error)
	SaveTimers([]models.Timer) error

	// Progress
	GetProgress() (models.Progress, error)
	SaveProgress(models.Progress) error

	// History
	AppendHistory(models.HistoryEntry) error
	GetHistory(limit int) ([]models.HistoryEntry, error)

	// Custom activities
	AddCustomActivity(models.CustomActivity) error
	GetCustomActivities() ([]models.CustomActivity, error)
	DeleteCustomActivity(id string) error

	// Utils
	GetConfigPath() string
}
