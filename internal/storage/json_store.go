package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ckramer/tyke/internal/constants"
	"github.com/ckramer/tyke/internal/models"
)

type Store struct {
	Version          int                     `json:"version"`
	Settings         models.Settings         `json:"settings"`
	Timers           []models.Timer          `json:"timers"`
	Progress         models.Progress         `json:"progress"`
	History          []models.HistoryEntry   `json:"history"`
	CustomActivities []models.CustomActivity `json:"custom_activities"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:          1,
		Settings:         models.DefaultSettings(),
		Timers:           []models.Timer{},
		Progress:         models.NewProgress(),
		History:          []models.HistoryEntry{},
		CustomActivities: []models.CustomActivity{},
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'tyke init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure containers are initialized
	if s.store.Timers == nil {
		s.store.Timers = []models.Timer{}
	}
	if s.store.History == nil {
		s.store.History = []models.HistoryEntry{}
	}
	if s.store.CustomActivities == nil {
		s.store.CustomActivities = []models.CustomActivity{}
	}
	if s.store.Progress.ActivityCounts == nil {
		s.store.Progress.ActivityCounts = make(map[models.ActivityKind]int)
	}
	if s.store.Progress.EarnedBadges == nil {
		s.store.Progress.EarnedBadges = []string{}
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) GetTimers() ([]models.Timer, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	timers := make([]models.Timer, len(s.store.Timers))
	copy(timers, s.store.Timers)
	return timers, nil
}

func (s *JSONStore) SaveTimers(timers []models.Timer) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Timers = make([]models.Timer, len(timers))
	copy(s.store.Timers, timers)
	return s.save()
}

func (s *JSONStore) GetProgress() (models.Progress, error) {
	if s.store == nil {
		return models.Progress{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Progress, nil
}

func (s *JSONStore) SaveProgress(progress models.Progress) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Progress = progress
	return s.save()
}

func (s *JSONStore) AppendHistory(entry models.HistoryEntry) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	// Newest first, oldest evicted past the cap
	s.store.History = append([]models.HistoryEntry{entry}, s.store.History...)
	if len(s.store.History) > constants.HistoryLimit {
		s.store.History = s.store.History[:constants.HistoryLimit]
	}
	return s.save()
}

func (s *JSONStore) GetHistory(limit int) ([]models.HistoryEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	if limit <= 0 || limit > len(s.store.History) {
		limit = len(s.store.History)
	}
	entries := make([]models.HistoryEntry, limit)
	copy(entries, s.store.History[:limit])
	return entries, nil
}

func (s *JSONStore) AddCustomActivity(activity models.CustomActivity) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	for i, a := range s.store.CustomActivities {
		if a.ID == activity.ID {
			s.store.CustomActivities[i] = activity
			return s.save()
		}
	}
	s.store.CustomActivities = append(s.store.CustomActivities, activity)
	return s.save()
}

func (s *JSONStore) GetCustomActivities() ([]models.CustomActivity, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	activities := make([]models.CustomActivity, len(s.store.CustomActivities))
	copy(activities, s.store.CustomActivities)
	return activities, nil
}

func (s *JSONStore) DeleteCustomActivity(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	for i, a := range s.store.CustomActivities {
		if a.ID == id {
			s.store.CustomActivities = append(s.store.CustomActivities[:i], s.store.CustomActivities[i+1:]...)
			return s.save()
		}
	}
	return fmt.Errorf("custom activity not found: %s", id)
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
