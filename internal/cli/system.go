package cli

import (
	"fmt"

	"github.com/ckramer/tyke/internal/notifier"
	"github.com/ckramer/tyke/internal/tui"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized tyke storage at %s\n", ctx.Store.GetConfigPath())
	return nil
}

type WatchCmd struct{}

func (c *WatchCmd) Run(ctx *Context) error {
	return tui.Run(ctx.Engine)
}

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Printf("storage: %s\n", ctx.Store.GetConfigPath())

	if _, err := ctx.Store.GetSettings(); err != nil {
		fmt.Printf("settings: FAIL (%v)\n", err)
	} else {
		fmt.Println("settings: ok")
	}

	timers, err := ctx.Store.GetTimers()
	if err != nil {
		fmt.Printf("timers: FAIL (%v)\n", err)
	} else {
		fmt.Printf("timers: ok (%d stored)\n", len(timers))
	}

	if _, err := ctx.Store.GetProgress(); err != nil {
		fmt.Printf("progress: FAIL (%v)\n", err)
	} else {
		fmt.Println("progress: ok")
	}

	if _, ok := ctx.Notifier.(*notifier.TrayNotifier); ok {
		fmt.Println("tray: running")
	} else {
		fmt.Println("tray: not detected (alerts disabled, reconciliation still catches completions)")
	}
	return nil
}
