// Package keyring stores the parent PIN and database credentials in the OS
// keyring so they never land in the config file.
package keyring

import (
	"errors"
	"fmt"

	"github.com/ckramer/tyke/internal/constants"
	"github.com/zalando/go-keyring"
)

var (
	// ErrNotFound is returned when the requested secret is not in the keyring
	ErrNotFound = errors.New("secret not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetConnectionString retrieves the database connection string from the OS keyring.
// Returns ErrNotFound if no credentials are stored.
func GetConnectionString() (string, error) {
	return get(constants.KeyringUserDSN)
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return set(constants.KeyringUserDSN, connStr)
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error {
	return del(constants.KeyringUserDSN)
}

// GetPIN retrieves the parent dashboard PIN. Returns ErrNotFound when no PIN
// has been set.
func GetPIN() (string, error) {
	return get(constants.KeyringUserPIN)
}

// SetPIN stores the parent dashboard PIN. The PIN must be exactly four digits.
func SetPIN(pin string) error {
	if len(pin) != 4 {
		return errors.New("PIN must be exactly 4 digits")
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return errors.New("PIN must be exactly 4 digits")
		}
	}
	return set(constants.KeyringUserPIN, pin)
}

// DeletePIN removes the parent dashboard PIN from the OS keyring.
func DeletePIN() error {
	return del(constants.KeyringUserPIN)
}

// VerifyPIN checks an entered PIN against the stored one. When no PIN has
// been set, verification succeeds so a fresh install is not locked out.
func VerifyPIN(entered string) (bool, error) {
	stored, err := GetPIN()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return true, nil
		}
		return false, err
	}
	return stored == entered, nil
}

func get(user string) (string, error) {
	value, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		// Wrap other keyring errors as unavailable
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

func set(user, value string) error {
	if err := keyring.Set(constants.AppName, user, value); err != nil {
		return fmt.Errorf("failed to store secret in keyring: %w", err)
	}
	return nil
}

func del(user string) error {
	err := keyring.Delete(constants.AppName, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete secret from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	// ErrNotFound means the keyring works but holds nothing under that key
	return err == nil || err == keyring.ErrNotFound
}
