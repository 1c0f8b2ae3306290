package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ckramer/tyke/internal/cli"
	"github.com/ckramer/tyke/internal/constants"
	"github.com/ckramer/tyke/internal/engine"
	apperrors "github.com/ckramer/tyke/internal/errors"
	"github.com/ckramer/tyke/internal/keyring"
	"github.com/ckramer/tyke/internal/logger"
	"github.com/ckramer/tyke/internal/notifier"
	"github.com/ckramer/tyke/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage path (.json or .db) or PostgreSQL connection string. For PostgreSQL, store credentials in the OS keyring with 'tyke config set connection-string'." type:"string" default:"~/.config/tyke/tyke.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize tyke storage."`
	Watch    cli.WatchCmd    `cmd:"" help:"Launch the live timer dashboard." default:"1"`
	Start    cli.StartCmd    `cmd:"" help:"Start a new timer."`
	Pause    cli.PauseCmd    `cmd:"" help:"Pause a running timer."`
	Resume   cli.ResumeCmd   `cmd:"" help:"Resume a paused timer."`
	Reset    cli.ResetCmd    `cmd:"" help:"Restart a timer from its full duration."`
	Remove   cli.RemoveCmd   `cmd:"" help:"Remove a timer."`
	List     cli.ListCmd     `cmd:"" help:"List timers."`
	History  cli.HistoryCmd  `cmd:"" help:"Show completed timers."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show progress and streaks."`
	Badges   cli.BadgesCmd   `cmd:"" help:"Show earned badges."`
	Activity cli.ActivityCmd `cmd:"" help:"Manage activities."`
	Settings cli.SettingsCmd `cmd:"" help:"Manage settings."`
	Tones    cli.TonesCmd    `cmd:"" help:"Inspect completion tones."`
	Pin      cli.PinCmd      `cmd:"" help:"Manage the parent PIN."`
	ConfigCmd cli.ConfigCmd  `cmd:"" name:"config" help:"Manage stored credentials."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Activity timers for kids: countdowns, streaks, and badges"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir()}); err != nil {
		apperrors.Fatalf("failed to initialize logging: %v", err)
	}

	store, err := openStore(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	n := notifier.Detect()
	eng := engine.New(store, n, engine.SystemClock{})

	appCtx := &cli.Context{
		Store:    store,
		Engine:   eng,
		Notifier: n,
	}

	// Init handles its own setup; everything else needs loaded state with
	// timers reconciled against the wall clock.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		if err := eng.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}

func configDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, constants.AppName)
}

// openStore picks the backend from the config value: a PostgreSQL URL, a
// .json path, or (default) a SQLite path.
func openStore(config string) (storage.Provider, error) {
	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		connStr := config
		// Prefer keyring-stored credentials over a bare URL
		if stored, err := keyring.GetConnectionString(); err == nil {
			connStr = stored
		} else if !errors.Is(err, keyring.ErrNotFound) {
			logger.Warn("keyring unavailable, using connection string as given", "error", err)
		}
		return storage.NewPostgresStore(connStr), nil
	}

	path := config
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = home + path[1:]
	}

	if strings.HasSuffix(path, ".json") {
		return storage.NewJSONStore(path), nil
	}
	return storage.NewSQLiteStore(path), nil
}
