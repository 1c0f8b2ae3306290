package models

import "time"

// SoundToneID selects the completion tone for a timer.
type SoundToneID string

const (
	ToneChime       SoundToneID = "chime"
	ToneBell        SoundToneID = "bell"
	ToneXylophone   SoundToneID = "xylophone"
	ToneWhistle     SoundToneID = "whistle"
	ToneCelebration SoundToneID = "celebration"
	ToneGentle      SoundToneID = "gentle"
	TonePlayful     SoundToneID = "playful"
	ToneMagic       SoundToneID = "magic"
	ToneDrumroll    SoundToneID = "drumroll"
	ToneFanfare     SoundToneID = "fanfare"
	ToneVibrateOnly SoundToneID = "vibrate_only"
)

// SoundTones lists all selectable tones in display order.
var SoundTones = []SoundToneID{
	ToneChime,
	ToneBell,
	ToneXylophone,
	ToneWhistle,
	ToneCelebration,
	ToneGentle,
	TonePlayful,
	ToneMagic,
	ToneDrumroll,
	ToneFanfare,
	ToneVibrateOnly,
}

// Timer is one active or completed countdown.
//
// Exactly one of the following holds at any time:
//   - counting down: Running && !Paused, ScheduledEnd set
//   - paused: Paused, no ScheduledEnd, RemainingSeconds frozen
//   - completed: RemainingSeconds == 0, CompletedAt set
type Timer struct {
	ID               string       `json:"id"`
	ActivityKind     ActivityKind `json:"activity_kind"`
	Label            string       `json:"label"`
	TotalSeconds     int          `json:"total_seconds"`
	RemainingSeconds int          `json:"remaining_seconds"`
	Running          bool         `json:"running"`
	Paused           bool         `json:"paused"`
	ScheduledEnd     *time.Time   `json:"scheduled_end,omitempty"`
	CompletedAt      *time.Time   `json:"completed_at,omitempty"`
	SoundTone        SoundToneID  `json:"sound_tone"`
	AlertHandle      string       `json:"alert_handle,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
}

// CountingDown reports whether the timer is actively counting down.
func (t *Timer) CountingDown() bool {
	return t.Running && !t.Paused
}

// Completed reports whether the timer has finished.
func (t *Timer) Completed() bool {
	return t.CompletedAt != nil
}
