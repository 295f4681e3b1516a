package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// WaveType selects the oscillator waveform
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

// Oscillator is an endless procedural tone used as a layer's sound source
// when no streamer is registered for it
type Oscillator struct {
	sr        beep.SampleRate
	freq      float64
	wave      WaveType
	amplitude float64
	pos       int
}

// NewOscillator creates a looping oscillator at the given frequency
func NewOscillator(freq float64, wave WaveType, sr beep.SampleRate) *Oscillator {
	return &Oscillator{
		sr:        sr,
		freq:      freq,
		wave:      wave,
		amplitude: 0.2,
	}
}

func (g *Oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		phase := math.Mod(g.freq*t, 1)

		var sample float64
		switch g.wave {
		case WaveSquare:
			if phase < 0.5 {
				sample = 1
			} else {
				sample = -1
			}
		case WaveSaw:
			sample = 2*phase - 1
		case WaveTriangle:
			if phase < 0.5 {
				sample = 4*phase - 1
			} else {
				sample = 3 - 4*phase
			}
		default:
			sample = math.Sin(2 * math.Pi * g.freq * t)
		}

		sample *= g.amplitude
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *Oscillator) Err() error {
	return nil
}

// layerFrequencies is a minor pentatonic spread so auto-assigned layers
// sound consonant together
var layerFrequencies = []float64{110, 130.81, 146.83, 164.81, 196, 220, 261.63, 293.66}

// defaultFrequency picks a stable frequency for a layer id
func defaultFrequency(id string) float64 {
	var h uint32 = 2166136261
	for i := 0; i < len(id); i++ {
		h ^= uint32(id[i])
		h *= 16777619
	}
	return layerFrequencies[h%uint32(len(layerFrequencies))]
}
