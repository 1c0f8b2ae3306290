// Package notifier delivers timer alerts through the tyke-tray companion
// app. The tray app writes a lockfile ("port|pid|secret") into its config
// directory; we validate the recorded process before trusting the endpoint.
package notifier

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/ckramer/tyke/internal/constants"
	"github.com/ckramer/tyke/internal/models"
	"github.com/ckramer/tyke/internal/tone"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// Notifier abstracts completion alert delivery so the timer engine never
// talks to the tray app directly.
type Notifier interface {
	// ScheduleCompletionAlert arranges a notification for the timer's
	// scheduled end and returns an opaque handle for cancellation.
	ScheduleCompletionAlert(timer models.Timer) (string, error)
	// CancelCompletionAlert cancels a previously scheduled alert. Cancelling
	// an unknown or empty handle is not an error.
	CancelCompletionAlert(handle string) error
	// PlayCompletionFeedback fires the immediate completion feedback (sound
	// and haptics) subject to the user's settings.
	PlayCompletionFeedback(timer models.Timer, settings models.Settings) error
}

type schedulePayload struct {
	TimerID    string `json:"timer_id"`
	Text       string `json:"text"`
	At         string `json:"at"`
	Tone       string `json:"tone"`
	DurationMs uint32 `json:"duration_ms"`
}

type scheduleResponse struct {
	Handle string `json:"handle"`
}

type cancelPayload struct {
	Handle string `json:"handle"`
}

type feedbackPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
	WavBase64  string `json:"wav_base64,omitempty"`
	Haptics    bool   `json:"haptics"`
}

// TrayNotifier delivers alerts over the tray app's local webhook.
type TrayNotifier struct{}

func NewTray() *TrayNotifier {
	return &TrayNotifier{}
}

// Detect returns a TrayNotifier when the tray app is running and validated,
// and a NoopNotifier otherwise. Alert delivery is best effort either way.
func Detect() Notifier {
	if _, _, err := trayEndpoint(); err != nil {
		return NewNoop()
	}
	return NewTray()
}

func (n *TrayNotifier) ScheduleCompletionAlert(timer models.Timer) (string, error) {
	if timer.ScheduledEnd == nil {
		return "", errors.New("timer has no scheduled end")
	}

	port, secret, err := trayEndpoint()
	if err != nil {
		return "", err
	}

	payload := schedulePayload{
		TimerID:    timer.ID,
		Text:       fmt.Sprintf("%s is done!", timer.Label),
		At:         timer.ScheduledEnd.Format(time.RFC3339),
		Tone:       string(timer.SoundTone),
		DurationMs: constants.NotificationDurationMs,
	}

	body, err := postJSON(port, secret, "/alerts", payload)
	if err != nil {
		return "", err
	}

	var res scheduleResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("malformed schedule response: %w", err)
	}
	if res.Handle == "" {
		return "", errors.New("tray returned an empty alert handle")
	}
	return res.Handle, nil
}

func (n *TrayNotifier) CancelCompletionAlert(handle string) error {
	if handle == "" {
		return nil
	}

	port, secret, err := trayEndpoint()
	if err != nil {
		return err
	}

	_, err = postJSON(port, secret, "/alerts/cancel", cancelPayload{Handle: handle})
	return err
}

func (n *TrayNotifier) PlayCompletionFeedback(timer models.Timer, settings models.Settings) error {
	if !settings.SoundEnabled && !settings.HapticsEnabled {
		return nil
	}

	port, secret, err := trayEndpoint()
	if err != nil {
		return err
	}

	payload := feedbackPayload{
		Text:       fmt.Sprintf("%s is done!", timer.Label),
		DurationMs: constants.NotificationDurationMs,
		Haptics:    settings.HapticsEnabled,
	}

	if settings.SoundEnabled && timer.SoundTone != models.ToneVibrateOnly {
		wav, err := tone.Synthesize(timer.SoundTone)
		if err != nil {
			// Fall back to the default tone rather than dropping the alert
			wav, err = tone.Synthesize(models.ToneChime)
			if err != nil {
				return err
			}
		}
		payload.WavBase64 = base64.StdEncoding.EncodeToString(wav)
	}

	_, err = postJSON(port, secret, "/notify", payload)
	return err
}

// NoopNotifier is used when the tray app is not running. Scheduling hands
// back an empty handle so the engine carries no dangling alert state.
type NoopNotifier struct{}

func NewNoop() *NoopNotifier {
	return &NoopNotifier{}
}

func (n *NoopNotifier) ScheduleCompletionAlert(models.Timer) (string, error) { return "", nil }
func (n *NoopNotifier) CancelCompletionAlert(string) error                   { return nil }
func (n *NoopNotifier) PlayCompletionFeedback(models.Timer, models.Settings) error {
	return nil
}

// GetTrayAppConfigDir returns the configuration directory used by the tray application.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	// Check for settings.json to see if a custom lockfile dir is set
	settingsPath := filepath.Join(trayConfigDir, "settings.json")
	if _, err := os.Stat(settingsPath); err == nil {
		data, err := os.ReadFile(settingsPath)
		if err == nil {
			var store struct {
				Settings struct {
					LockfileDir *string `json:"lockfile_dir"`
				} `json:"settings"`
			}
			if err := json.Unmarshal(data, &store); err == nil {
				if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
					return *store.Settings.LockfileDir, nil
				}
			}
		}
	}

	return trayConfigDir, nil
}

func trayEndpoint() (string, string, error) {
	trayConfigDir, err := GetTrayAppConfigDir()
	if err != nil {
		return "", "", err
	}
	return findAndValidateTrayProcess(filepath.Join(trayConfigDir, constants.NotifierLockfileName))
}

func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("tyke-tray is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := parts[0]
	if strings.TrimSpace(port) == "" {
		return "", "", errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", errors.New("tyke-tray process not running")
	}

	if !strings.HasPrefix(process.Executable(), "tyke-tray") {
		return "", "", fmt.Errorf("process with PID %d is not tyke-tray (is %s)", pid, process.Executable())
	}

	return port, secret, nil
}

func postJSON(port, secret, path string, payload any) ([]byte, error) {
	url := fmt.Sprintf("http://127.0.0.1:%s%s", port, path)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tyke-Secret", secret)

	client := &http.Client{Timeout: constants.NotifyTimeout}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
	}

	return body, nil
}
