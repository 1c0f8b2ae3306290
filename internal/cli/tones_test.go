package cli

import (
	"testing"

	"github.com/ckramer/tyke/internal/models"
)

type playRecorder struct {
	played []models.SoundToneID
}

func (r *playRecorder) ScheduleCompletionAlert(models.Timer) (string, error) { return "", nil }
func (r *playRecorder) CancelCompletionAlert(string) error                   { return nil }
func (r *playRecorder) PlayCompletionFeedback(t models.Timer, _ models.Settings) error {
	r.played = append(r.played, t.SoundTone)
	return nil
}

func TestTonesPreview(t *testing.T) {
	ctx := newTestContext(t)
	rec := &playRecorder{}
	ctx.Notifier = rec

	cmd := &TonesPreviewCmd{Tone: string(models.ToneFanfare)}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if len(rec.played) != 1 {
		t.Fatalf("expected 1 play call, got %d", len(rec.played))
	}
	if rec.played[0] != models.ToneFanfare {
		t.Errorf("played %q, want %q", rec.played[0], models.ToneFanfare)
	}
}

func TestTonesPreviewVibrateOnly(t *testing.T) {
	ctx := newTestContext(t)
	rec := &playRecorder{}
	ctx.Notifier = rec

	cmd := &TonesPreviewCmd{Tone: string(models.ToneVibrateOnly)}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(rec.played) != 1 {
		t.Fatalf("expected 1 play call, got %d", len(rec.played))
	}
}

func TestTonesPreviewUnknownTone(t *testing.T) {
	ctx := newTestContext(t)
	rec := &playRecorder{}
	ctx.Notifier = rec

	cmd := &TonesPreviewCmd{Tone: "klaxon"}
	if err := cmd.Run(ctx); err == nil {
		t.Fatal("expected an error for an unknown tone")
	}
	if len(rec.played) != 0 {
		t.Errorf("notifier called for an unknown tone")
	}
}
