// Package tone synthesizes the completion sound effects as WAV audio.
package tone

import (
	"fmt"

	"github.com/ckramer/tyke/internal/models"
)

type Waveform string

const (
	WaveSine     Waveform = "sine"
	WaveSquare   Waveform = "square"
	WaveTriangle Waveform = "triangle"
)

// Config describes a tone as a sequence of notes played back to back.
type Config struct {
	Frequencies []float64
	Durations   []float64
	Type        Waveform
}

var configs = map[models.SoundToneID]Config{
	models.ToneChime:       {Frequencies: []float64{523, 659, 784}, Durations: []float64{0.15, 0.15, 0.3}, Type: WaveSine},
	models.ToneBell:        {Frequencies: []float64{440, 554, 659, 880}, Durations: []float64{0.1, 0.1, 0.1, 0.4}, Type: WaveSine},
	models.ToneXylophone:   {Frequencies: []float64{392, 494, 587, 784}, Durations: []float64{0.1, 0.1, 0.1, 0.3}, Type: WaveTriangle},
	models.ToneWhistle:     {Frequencies: []float64{880, 1047, 1319}, Durations: []float64{0.2, 0.2, 0.3}, Type: WaveSine},
	models.ToneCelebration: {Frequencies: []float64{523, 659, 784, 1047, 784, 1047}, Durations: []float64{0.1, 0.1, 0.1, 0.15, 0.15, 0.3}, Type: WaveSine},
	models.ToneGentle:      {Frequencies: []float64{330, 392, 494}, Durations: []float64{0.3, 0.3, 0.5}, Type: WaveSine},
	models.TonePlayful:     {Frequencies: []float64{523, 784, 523, 784, 1047}, Durations: []float64{0.1, 0.1, 0.1, 0.1, 0.3}, Type: WaveSquare},
	models.ToneMagic:       {Frequencies: []float64{392, 494, 587, 784, 988}, Durations: []float64{0.1, 0.1, 0.1, 0.15, 0.4}, Type: WaveSine},
	models.ToneDrumroll:    {Frequencies: []float64{220, 220, 220, 220, 330}, Durations: []float64{0.08, 0.08, 0.08, 0.08, 0.4}, Type: WaveSquare},
	models.ToneFanfare:     {Frequencies: []float64{392, 494, 587, 784, 587, 784, 988}, Durations: []float64{0.15, 0.1, 0.15, 0.1, 0.1, 0.1, 0.4}, Type: WaveSine},
}

// ConfigFor returns the tone definition for the given id.
func ConfigFor(id models.SoundToneID) (Config, error) {
	config, ok := configs[id]
	if !ok {
		return Config{}, fmt.Errorf("tone not found: %s", id)
	}
	return config, nil
}

// Available lists the synthesizable tone ids in catalog order. The
// vibrate-only option is excluded since it produces no audio.
func Available() []models.SoundToneID {
	var ids []models.SoundToneID
	for _, id := range models.SoundTones {
		if _, ok := configs[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
