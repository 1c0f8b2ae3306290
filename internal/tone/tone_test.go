package tone

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/ckramer/tyke/internal/models"
)

func TestConfigFor(t *testing.T) {
	config, err := ConfigFor(models.ToneChime)
	if err != nil {
		t.Fatalf("ConfigFor(chime) failed: %v", err)
	}
	if len(config.Frequencies) != len(config.Durations) {
		t.Errorf("frequencies and durations length mismatch: %d vs %d",
			len(config.Frequencies), len(config.Durations))
	}
	if config.Type != WaveSine {
		t.Errorf("chime waveform = %s, want sine", config.Type)
	}

	if _, err := ConfigFor("kazoo"); err == nil {
		t.Error("ConfigFor() should fail for unknown tone")
	}
	if _, err := ConfigFor(models.ToneVibrateOnly); err == nil {
		t.Error("ConfigFor() should fail for vibrate_only, it has no audio")
	}
}

func TestConfigsWellFormed(t *testing.T) {
	for _, id := range Available() {
		config, err := ConfigFor(id)
		if err != nil {
			t.Fatalf("ConfigFor(%s) failed: %v", id, err)
		}
		if len(config.Frequencies) == 0 {
			t.Errorf("tone %s has no notes", id)
		}
		if len(config.Frequencies) != len(config.Durations) {
			t.Errorf("tone %s: %d frequencies but %d durations",
				id, len(config.Frequencies), len(config.Durations))
		}
		for i, d := range config.Durations {
			if d <= 0 {
				t.Errorf("tone %s note %d has non-positive duration %v", id, i, d)
			}
		}
	}
}

func TestSynthesizeHeader(t *testing.T) {
	wav, err := Synthesize(models.ToneChime)
	if err != nil {
		t.Fatalf("Synthesize() failed: %v", err)
	}

	if !bytes.Equal(wav[0:4], []byte("RIFF")) {
		t.Errorf("missing RIFF magic: %q", wav[0:4])
	}
	if !bytes.Equal(wav[8:12], []byte("WAVE")) {
		t.Errorf("missing WAVE magic: %q", wav[8:12])
	}
	if got := binary.LittleEndian.Uint16(wav[20:]); got != 1 {
		t.Errorf("audio format = %d, want 1 (PCM)", got)
	}
	if got := binary.LittleEndian.Uint16(wav[22:]); got != 1 {
		t.Errorf("channels = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(wav[24:]); got != 44100 {
		t.Errorf("sample rate = %d, want 44100", got)
	}
	if got := binary.LittleEndian.Uint16(wav[34:]); got != 16 {
		t.Errorf("bits per sample = %d, want 16", got)
	}

	dataSize := binary.LittleEndian.Uint32(wav[40:])
	if int(dataSize) != len(wav)-44 {
		t.Errorf("data size = %d, want %d", dataSize, len(wav)-44)
	}
	// chime is 0.15 + 0.15 + 0.3 seconds of mono 16-bit audio
	wantSamples := int(44100 * 0.6)
	if int(dataSize) != wantSamples*2 {
		t.Errorf("data size = %d bytes, want %d", dataSize, wantSamples*2)
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	a, err := Synthesize(models.ToneFanfare)
	if err != nil {
		t.Fatalf("Synthesize() failed: %v", err)
	}
	b, err := Synthesize(models.ToneFanfare)
	if err != nil {
		t.Fatalf("Synthesize() failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("Synthesize() is not deterministic")
	}
}

func TestSynthesizeUnknownTone(t *testing.T) {
	if _, err := Synthesize("kazoo"); err == nil {
		t.Error("Synthesize() should fail for unknown tone")
	}
}

func TestSynthesizeNotSilent(t *testing.T) {
	for _, id := range Available() {
		wav, err := Synthesize(id)
		if err != nil {
			t.Fatalf("Synthesize(%s) failed: %v", id, err)
		}
		nonZero := 0
		for i := 44; i+1 < len(wav); i += 2 {
			if binary.LittleEndian.Uint16(wav[i:]) != 0 {
				nonZero++
			}
		}
		if nonZero == 0 {
			t.Errorf("tone %s rendered as silence", id)
		}
	}
}
