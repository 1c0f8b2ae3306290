package tone

import (
	"encoding/binary"
	"math"

	"github.com/ckramer/tyke/internal/models"
)

const (
	sampleRate    = 44100
	bitsPerSample = 16
	numChannels   = 1
	amplitude     = 0.7
)

// Synthesize renders the tone as a complete WAV file (PCM, 44.1 kHz,
// 16-bit mono). Output is deterministic for a given tone id.
func Synthesize(id models.SoundToneID) ([]byte, error) {
	config, err := ConfigFor(id)
	if err != nil {
		return nil, err
	}

	totalDuration := 0.0
	for _, d := range config.Durations {
		totalDuration += d
	}
	numSamples := int(sampleRate * totalDuration)

	samples := make([]int16, numSamples)
	idx := 0
	for i, freq := range config.Frequencies {
		duration := config.Durations[i]
		noteSamples := int(sampleRate * duration)

		for j := 0; j < noteSamples && idx < numSamples; j++ {
			t := float64(j) / sampleRate
			// Short attack and release ramps keep note boundaries click-free
			envelope := math.Min(1, math.Min(t*20, (duration-t)*10))

			phase := 2 * math.Pi * freq * t
			var wave float64
			switch config.Type {
			case WaveSquare:
				if math.Sin(phase) > 0 {
					wave = 0.3
				} else {
					wave = -0.3
				}
			case WaveTriangle:
				wave = (2 / math.Pi) * math.Asin(math.Sin(phase)) * 0.5
			default:
				wave = math.Sin(phase) * 0.5
			}

			samples[idx] = int16(math.Floor(wave * envelope * 32767 * amplitude))
			idx++
		}
	}

	return encodeWAV(samples), nil
}

func encodeWAV(samples []int16) []byte {
	dataSize := len(samples) * 2
	buf := make([]byte, 44+dataSize)

	copy(buf[0:], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:], uint32(36+dataSize))
	copy(buf[8:], "WAVE")
	copy(buf[12:], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:], 16)
	binary.LittleEndian.PutUint16(buf[20:], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:], numChannels)
	binary.LittleEndian.PutUint32(buf[24:], sampleRate)
	binary.LittleEndian.PutUint32(buf[28:], sampleRate*numChannels*bitsPerSample/8)
	binary.LittleEndian.PutUint16(buf[32:], numChannels*bitsPerSample/8)
	binary.LittleEndian.PutUint16(buf[34:], bitsPerSample)
	copy(buf[36:], "data")
	binary.LittleEndian.PutUint32(buf[40:], uint32(dataSize))

	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[44+i*2:], uint16(s))
	}

	return buf
}
