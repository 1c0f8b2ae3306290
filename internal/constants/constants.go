package constants

import "time"

const (
	AppName           = "tyke"
	Version           = "v0.3.0"
	DefaultConfigPath = "~/.config/tyke/tyke.db"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// HistoryLimit caps the completion log at the most recent N entries;
	// older entries are evicted first.
	HistoryLimit = 100

	// Keyring entries
	KeyringUserPIN = "parent-pin"
	KeyringUserDSN = "database-connection"

	// Tray notifier constants
	NotifierLockfileName   = "tyke-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.ckramer.tyke"
	NotifyTimeout          = 2 * time.Second
)
