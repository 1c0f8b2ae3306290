package cli

import (
	"fmt"
	"strconv"

	"github.com/ckramer/tyke/internal/models"
	"github.com/ckramer/tyke/internal/utils"
)

type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" help:"Show current settings." default:"1"`
	Set  SettingsSetCmd  `cmd:"" help:"Change a setting (parent only)."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	s, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	fmt.Printf("sound:    %v\n", s.SoundEnabled)
	fmt.Printf("haptics:  %v\n", s.HapticsEnabled)
	fmt.Printf("theme:    %s\n", s.Theme)
	fmt.Printf("tone:     %s\n", s.DefaultTone)
	fmt.Printf("timezone: %s\n", s.Timezone)
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" help:"One of: sound, haptics, theme, tone, timezone."`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Run(ctx *Context) error {
	if err := ctx.RequireParent(); err != nil {
		return err
	}

	s, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	switch c.Key {
	case "sound":
		v, err := strconv.ParseBool(c.Value)
		if err != nil {
			return fmt.Errorf("sound must be true or false")
		}
		s.SoundEnabled = v
	case "haptics":
		v, err := strconv.ParseBool(c.Value)
		if err != nil {
			return fmt.Errorf("haptics must be true or false")
		}
		s.HapticsEnabled = v
	case "theme":
		s.Theme = c.Value
	case "tone":
		tone := models.SoundToneID(c.Value)
		found := false
		for _, id := range models.SoundTones {
			if id == tone {
				found = true
			}
		}
		if !found {
			return fmt.Errorf("unknown tone %q", c.Value)
		}
		s.DefaultTone = tone
	case "timezone":
		if _, err := utils.LoadLocation(c.Value); err != nil {
			return fmt.Errorf("unknown timezone %q", c.Value)
		}
		s.Timezone = c.Value
	default:
		return fmt.Errorf("unknown setting %q", c.Key)
	}

	if err := ctx.Engine.UpdateSettings(s); err != nil {
		return err
	}
	fmt.Printf("Set %s to %s\n", c.Key, c.Value)
	return nil
}
