package models

// Settings represents application-wide settings. Loaded once at startup;
// mutated only by explicit user action.
type Settings struct {
	SoundEnabled   bool        `json:"sound_enabled"`   // whether completion tones play
	HapticsEnabled bool        `json:"haptics_enabled"` // whether haptic feedback fires on completion
	Theme          string      `json:"theme"`           // UI theme name
	DefaultTone    SoundToneID `json:"default_tone"`    // tone used when a timer doesn't pick one
	Timezone       string      `json:"timezone"`        // IANA timezone name, or "Local" for the system timezone
}

// DefaultSettings returns the settings applied on first run.
func DefaultSettings() Settings {
	return Settings{
		SoundEnabled:   true,
		HapticsEnabled: true,
		Theme:          "sunny",
		DefaultTone:    ToneChime,
		Timezone:       "Local",
	}
}
