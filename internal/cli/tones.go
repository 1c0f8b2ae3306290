package cli

import (
	"fmt"
	"os"

	"github.com/ckramer/tyke/internal/models"
	"github.com/ckramer/tyke/internal/tone"
)

type TonesCmd struct {
	List    TonesListCmd    `cmd:"" help:"List available completion tones." default:"1"`
	Preview TonesPreviewCmd `cmd:"" help:"Play a tone through the tray app."`
	Export  TonesExportCmd  `cmd:"" help:"Render a tone to a WAV file."`
}

type TonesListCmd struct{}

func (c *TonesListCmd) Run(ctx *Context) error {
	for _, id := range tone.Available() {
		config, err := tone.ConfigFor(id)
		if err != nil {
			continue
		}
		total := 0.0
		for _, d := range config.Durations {
			total += d
		}
		fmt.Printf("%-12s %d notes, %.1fs, %s\n", id, len(config.Frequencies), total, config.Type)
	}
	fmt.Printf("%-12s no audio, haptics only\n", models.ToneVibrateOnly)
	return nil
}

type TonesPreviewCmd struct {
	Tone string `arg:"" help:"Tone id."`
}

func (c *TonesPreviewCmd) Run(ctx *Context) error {
	id := models.SoundToneID(c.Tone)
	if id != models.ToneVibrateOnly {
		if _, err := tone.ConfigFor(id); err != nil {
			return err
		}
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	preview := models.Timer{Label: "Preview", SoundTone: id}
	if err := ctx.Notifier.PlayCompletionFeedback(preview, settings); err != nil {
		return err
	}
	fmt.Printf("Previewed %s\n", id)
	return nil
}

type TonesExportCmd struct {
	Tone string `arg:"" help:"Tone id."`
	Out  string `short:"o" help:"Output path (defaults to <tone>.wav)."`
}

func (c *TonesExportCmd) Run(ctx *Context) error {
	wav, err := tone.Synthesize(models.SoundToneID(c.Tone))
	if err != nil {
		return err
	}

	out := c.Out
	if out == "" {
		out = c.Tone + ".wav"
	}
	if err := os.WriteFile(out, wav, 0644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d bytes)\n", out, len(wav))
	return nil
}
