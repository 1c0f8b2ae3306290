package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/ckramer/tyke/internal/models"
	"github.com/ckramer/tyke/internal/utils"
)

type StartCmd struct {
	Activity string `arg:"" optional:"" help:"Activity kind or custom activity id."`
	Minutes  int    `short:"m" help:"Duration in minutes (defaults to the activity's preset)."`
	Label    string `short:"l" help:"Override the display label."`
	Tone     string `short:"t" help:"Completion sound tone."`
}

func (c *StartCmd) Run(ctx *Context) error {
	kind := models.ActivityKind(c.Activity)
	minutes := c.Minutes
	label := c.Label
	toneID := models.SoundToneID(c.Tone)

	if c.Activity == "" {
		var err error
		kind, minutes, label, toneID, err = startForm(ctx, minutes, label)
		if err != nil {
			return err
		}
	}

	if minutes <= 0 {
		if a, ok := models.ActivityByKind(kind); ok {
			minutes = a.DefaultMinutes
		} else if customs, err := ctx.Store.GetCustomActivities(); err == nil {
			for _, a := range customs {
				if a.ID == string(kind) {
					minutes = a.DefaultMinutes
				}
			}
		}
	}
	if minutes <= 0 {
		return fmt.Errorf("duration must be a positive number of minutes")
	}

	timer := ctx.Engine.Create(kind, minutes, label, toneID)
	fmt.Printf("Started %s for %s\n", timer.Label, utils.FormatClock(timer.RemainingSeconds))
	return nil
}

func startForm(ctx *Context, minutes int, label string) (models.ActivityKind, int, string, models.SoundToneID, error) {
	options := make([]huh.Option[models.ActivityKind], 0, len(models.Activities)+1)
	for _, a := range models.Activities {
		options = append(options, huh.NewOption(a.Name, a.Kind))
	}
	if customs, err := ctx.Store.GetCustomActivities(); err == nil {
		for _, a := range customs {
			options = append(options, huh.NewOption(a.Name+" (custom)", models.ActivityKind(a.ID)))
		}
	}

	toneOptions := make([]huh.Option[models.SoundToneID], 0, len(models.SoundTones))
	for _, id := range models.SoundTones {
		toneOptions = append(toneOptions, huh.NewOption(string(id), id))
	}

	var kind models.ActivityKind
	var toneID models.SoundToneID
	minutesStr := ""
	if minutes > 0 {
		minutesStr = strconv.Itoa(minutes)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.ActivityKind]().
				Title("Activity").
				Options(options...).
				Value(&kind),
			huh.NewInput().
				Title("Minutes (blank for preset)").
				Value(&minutesStr).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					i, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if i <= 0 {
						return fmt.Errorf("duration must be a positive number of minutes")
					}
					return nil
				}),
			huh.NewInput().
				Title("Label (optional)").
				Value(&label),
			huh.NewSelect[models.SoundToneID]().
				Title("Sound").
				Options(toneOptions...).
				Value(&toneID),
		),
	)
	if err := form.Run(); err != nil {
		return "", 0, "", "", err
	}

	if minutesStr != "" {
		minutes, _ = strconv.Atoi(minutesStr)
	} else {
		minutes = 0
	}
	return kind, minutes, label, toneID, nil
}

type PauseCmd struct {
	ID string `arg:"" help:"Timer id (or prefix)."`
}

func (c *PauseCmd) Run(ctx *Context) error {
	t, err := ctx.FindTimer(c.ID)
	if err != nil {
		return err
	}
	ctx.Engine.Pause(t.ID)
	fmt.Printf("Paused %s at %s\n", t.Label, utils.FormatClock(t.RemainingSeconds))
	return nil
}

type ResumeCmd struct {
	ID string `arg:"" help:"Timer id (or prefix)."`
}

func (c *ResumeCmd) Run(ctx *Context) error {
	t, err := ctx.FindTimer(c.ID)
	if err != nil {
		return err
	}
	ctx.Engine.Resume(t.ID)
	fmt.Printf("Resumed %s with %s left\n", t.Label, utils.FormatClock(t.RemainingSeconds))
	return nil
}

type ResetCmd struct {
	ID string `arg:"" help:"Timer id (or prefix)."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	t, err := ctx.FindTimer(c.ID)
	if err != nil {
		return err
	}
	ctx.Engine.Reset(t.ID)
	fmt.Printf("Reset %s to %s\n", t.Label, utils.FormatClock(t.TotalSeconds))
	return nil
}

type RemoveCmd struct {
	ID  string `arg:"" help:"Timer id (or prefix)."`
	Yes bool   `short:"y" help:"Skip confirmation."`
}

func (c *RemoveCmd) Run(ctx *Context) error {
	t, err := ctx.FindTimer(c.ID)
	if err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Remove %q?", t.Label)).
					Value(&confirmed),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			return nil
		}
	}

	ctx.Engine.Remove(t.ID)
	fmt.Printf("Removed %s\n", t.Label)
	return nil
}

type ListCmd struct {
	All bool `short:"a" help:"Include completed timers."`
}

func (c *ListCmd) Run(ctx *Context) error {
	timers := ctx.Engine.Timers()
	shown := 0
	for _, t := range timers {
		if t.Completed() && !c.All {
			continue
		}
		fmt.Println(describeTimer(t))
		shown++
	}
	if shown == 0 {
		fmt.Println("No timers. Start one with 'tyke start'.")
	}
	return nil
}
