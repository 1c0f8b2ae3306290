package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/ckramer/tyke/internal/keyring"
)

type PinCmd struct {
	Set   PinSetCmd   `cmd:"" help:"Set or change the parent PIN."`
	Clear PinClearCmd `cmd:"" help:"Remove the parent PIN."`
}

type PinSetCmd struct{}

func (c *PinSetCmd) Run(ctx *Context) error {
	// Changing an existing PIN requires the current one
	if err := ctx.RequireParent(); err != nil {
		return err
	}

	var pin, confirm string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New PIN (4 digits)").
				EchoMode(huh.EchoModePassword).
				Value(&pin),
			huh.NewInput().
				Title("Confirm PIN").
				EchoMode(huh.EchoModePassword).
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	if pin != confirm {
		return fmt.Errorf("PINs do not match")
	}
	if err := keyring.SetPIN(pin); err != nil {
		return err
	}
	fmt.Println("Parent PIN set.")
	return nil
}

type PinClearCmd struct{}

func (c *PinClearCmd) Run(ctx *Context) error {
	if err := ctx.RequireParent(); err != nil {
		return err
	}
	if err := keyring.DeletePIN(); err != nil {
		return err
	}
	fmt.Println("Parent PIN removed.")
	return nil
}

type ConfigCmd struct {
	Set   ConfigSetCmd   `cmd:"" help:"Store the database connection string in the OS keyring."`
	Clear ConfigClearCmd `cmd:"" help:"Remove the stored connection string."`
}

type ConfigSetCmd struct {
	Key   string `arg:"" help:"Only 'connection-string' is supported."`
	Value string `arg:"" help:"The connection string."`
}

func (c *ConfigSetCmd) Run(ctx *Context) error {
	if c.Key != "connection-string" {
		return fmt.Errorf("unknown config key %q", c.Key)
	}
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	if err := keyring.SetConnectionString(c.Value); err != nil {
		return err
	}
	fmt.Println("Connection string stored in OS keyring.")
	return nil
}

type ConfigClearCmd struct {
	Key string `arg:"" help:"Only 'connection-string' is supported."`
}

func (c *ConfigClearCmd) Run(ctx *Context) error {
	if c.Key != "connection-string" {
		return fmt.Errorf("unknown config key %q", c.Key)
	}
	if err := keyring.DeleteConnectionString(); err != nil {
		return err
	}
	fmt.Println("Connection string removed from OS keyring.")
	return nil
}
