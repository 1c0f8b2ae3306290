package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/ckramer/tyke/internal/engine"
	"github.com/ckramer/tyke/internal/keyring"
	"github.com/ckramer/tyke/internal/models"
	"github.com/ckramer/tyke/internal/notifier"
	"github.com/ckramer/tyke/internal/storage"
	"github.com/ckramer/tyke/internal/utils"
)

type Context struct {
	Store    storage.Provider
	Engine   *engine.Engine
	Notifier notifier.Notifier
}

// promptPINFunc is overridable in tests
var promptPINFunc = promptPIN

func promptPIN() (string, error) {
	var entered string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Parent PIN").
				EchoMode(huh.EchoModePassword).
				Value(&entered),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return entered, nil
}

// RequireParent gates parent-only commands behind the PIN. A fresh install
// without a PIN passes straight through.
func (c *Context) RequireParent() error {
	if _, err := keyring.GetPIN(); errors.Is(err, keyring.ErrNotFound) {
		return nil
	}

	entered, err := promptPINFunc()
	if err != nil {
		return err
	}

	ok, err := keyring.VerifyPIN(entered)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("incorrect PIN")
	}
	return nil
}

// FindTimer resolves a timer by full id or unambiguous id prefix.
func (c *Context) FindTimer(id string) (models.Timer, error) {
	timers := c.Engine.Timers()

	if t, ok := c.Engine.Timer(id); ok {
		return t, nil
	}

	var matches []models.Timer
	for _, t := range timers {
		if len(id) >= 4 && len(t.ID) >= len(id) && t.ID[:len(id)] == id {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Timer{}, fmt.Errorf("no timer matching %q", id)
	default:
		return models.Timer{}, fmt.Errorf("ambiguous timer id %q matches %d timers", id, len(matches))
	}
}

func describeTimer(t models.Timer) string {
	state := "counting"
	switch {
	case t.Completed():
		state = "done"
	case t.Paused:
		state = "paused"
	}
	return fmt.Sprintf("%-8s  %-20s %8s  %s", t.ID[:8], t.Label, utils.FormatClock(t.RemainingSeconds), state)
}
