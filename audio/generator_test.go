package audio

import (
	"math"
	"testing"
)

func streamSamples(g *Oscillator, n int) [][2]float64 {
	buf := make([][2]float64, n)
	got, ok := g.Stream(buf)
	if !ok || got != n {
		panic("oscillator stream short read")
	}
	return buf
}

func TestOscillatorStaysInAmplitudeBounds(t *testing.T) {
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveTriangle} {
		g := NewOscillator(220, wave, DefaultSampleRate)
		for _, s := range streamSamples(g, 4800) {
			if math.Abs(s[0]) > 0.2+1e-9 || math.Abs(s[1]) > 0.2+1e-9 {
				t.Fatalf("wave %d sample out of bounds: %v", wave, s)
			}
			if s[0] != s[1] {
				t.Fatalf("wave %d not centered stereo: %v", wave, s)
			}
		}
	}
}

func TestOscillatorSquareHoldsTwoLevels(t *testing.T) {
	g := NewOscillator(100, WaveSquare, DefaultSampleRate)
	for i, s := range streamSamples(g, 960) {
		if math.Abs(s[0]) != 0.2 {
			t.Fatalf("square sample %d = %g, want ±0.2", i, s[0])
		}
	}
}

func TestOscillatorSineStartsAtZero(t *testing.T) {
	g := NewOscillator(440, WaveSine, DefaultSampleRate)
	s := streamSamples(g, 1)[0]
	if s[0] != 0 {
		t.Errorf("sine phase 0 sample = %g, want 0", s[0])
	}
}

func TestOscillatorProducesNonSilence(t *testing.T) {
	g := NewOscillator(220, WaveSine, DefaultSampleRate)
	var peak float64
	for _, s := range streamSamples(g, 4800) {
		if a := math.Abs(s[0]); a > peak {
			peak = a
		}
	}
	if peak < 0.19 {
		t.Errorf("sine peak = %g, want near the 0.2 amplitude", peak)
	}
}

func TestOscillatorErrIsNil(t *testing.T) {
	g := NewOscillator(220, WaveSine, DefaultSampleRate)
	if err := g.Err(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDefaultFrequencyIsStableAndConsonant(t *testing.T) {
	a := defaultFrequency("drums")
	b := defaultFrequency("drums")
	if a != b {
		t.Fatalf("frequency not stable: %g vs %g", a, b)
	}

	found := false
	for _, f := range layerFrequencies {
		if a == f {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("frequency %g not from the pentatonic table", a)
	}
}
