package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/ckramer/tyke/internal/models"
)

type ActivityCmd struct {
	Add    ActivityAddCmd    `cmd:"" help:"Add a custom activity (parent only)."`
	List   ActivityListCmd   `cmd:"" help:"List built-in and custom activities." default:"1"`
	Delete ActivityDeleteCmd `cmd:"" help:"Delete a custom activity (parent only)."`
}

type ActivityAddCmd struct {
	Name    string `arg:"" optional:"" help:"Activity name."`
	Minutes int    `short:"m" help:"Default duration in minutes."`
	Icon    string `help:"Icon name."`
}

func (c *ActivityAddCmd) Run(ctx *Context) error {
	if err := ctx.RequireParent(); err != nil {
		return err
	}

	name := c.Name
	minutes := c.Minutes
	if name == "" || minutes <= 0 {
		minutesStr := ""
		if minutes > 0 {
			minutesStr = strconv.Itoa(minutes)
		}
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Name").
					Value(&name).
					Validate(func(s string) error {
						if s == "" {
							return fmt.Errorf("name is required")
						}
						return nil
					}),
				huh.NewInput().
					Title("Default minutes").
					Value(&minutesStr).
					Validate(func(s string) error {
						i, err := strconv.Atoi(s)
						if err != nil {
							return err
						}
						if i <= 0 {
							return fmt.Errorf("duration must be a positive number of minutes")
						}
						return nil
					}),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
		minutes, _ = strconv.Atoi(minutesStr)
	}

	activity := models.CustomActivity{
		ID:             uuid.New().String(),
		Name:           name,
		DefaultMinutes: minutes,
		Icon:           c.Icon,
	}
	if err := ctx.Store.AddCustomActivity(activity); err != nil {
		return err
	}
	fmt.Printf("Added activity: %s (%d min)\n", name, minutes)
	return nil
}

type ActivityListCmd struct{}

func (c *ActivityListCmd) Run(ctx *Context) error {
	fmt.Println("Built-in:")
	for _, a := range models.Activities {
		fmt.Printf("  %-14s %-14s %3d min\n", a.Kind, a.Name, a.DefaultMinutes)
	}

	customs, err := ctx.Store.GetCustomActivities()
	if err != nil {
		return err
	}
	if len(customs) > 0 {
		fmt.Println("\nCustom:")
		for _, a := range customs {
			fmt.Printf("  %-14s %-14s %3d min\n", a.ID[:8], a.Name, a.DefaultMinutes)
		}
	}
	return nil
}

type ActivityDeleteCmd struct {
	ID string `arg:"" help:"Custom activity id."`
}

func (c *ActivityDeleteCmd) Run(ctx *Context) error {
	if err := ctx.RequireParent(); err != nil {
		return err
	}

	// Resolve prefixes the same way timers are resolved
	customs, err := ctx.Store.GetCustomActivities()
	if err != nil {
		return err
	}
	id := c.ID
	for _, a := range customs {
		if len(c.ID) >= 4 && len(a.ID) >= len(c.ID) && a.ID[:len(c.ID)] == c.ID {
			id = a.ID
		}
	}

	if err := ctx.Store.DeleteCustomActivity(id); err != nil {
		return err
	}
	fmt.Println("Deleted custom activity.")
	return nil
}
