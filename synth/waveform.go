package synth

import (
	"fmt"
	"math"
)

const twoPi = 2 * math.Pi

// Waveform maps a phase in radians to an amplitude in [-1, 1]. Sample
// must be pure and total.
type Waveform interface {
	Sample(phase float64) float64
}

// PeriodicWaveform is a Waveform that repeats with a known period.
// The period-table generator accepts only periodic waveforms, so
// requesting it for an aperiodic waveform fails at compile time.
type PeriodicWaveform interface {
	Waveform
	Period() float64
}

// The canonical waveforms. All four repeat with period 2π and are
// stateless, so they are shared by reference across generators.
var (
	Sine     PeriodicWaveform = sineWave{}
	Triangle PeriodicWaveform = triangleWave{}
	Square   PeriodicWaveform = squareWave{}
	Sawtooth PeriodicWaveform = sawtoothWave{}
)

// ParseWaveform resolves a waveform tag as used by presets and CLIs.
func ParseWaveform(tag string) (PeriodicWaveform, error) {
	switch tag {
	case "", "sine":
		return Sine, nil
	case "triangle":
		return Triangle, nil
	case "square":
		return Square, nil
	case "saw", "sawtooth":
		return Sawtooth, nil
	}
	return nil, fmt.Errorf("synth: unknown waveform %q", tag)
}

type sineWave struct{}

func (sineWave) Sample(phase float64) float64 { return math.Sin(phase) }
func (sineWave) Period() float64              { return twoPi }

type triangleWave struct{}

func (triangleWave) Sample(phase float64) float64 {
	// Shift by π/2 so the ramps meet at multiples of π.
	p := math.Mod(phase+math.Pi/2, twoPi)
	if p < 0 {
		p += twoPi
	}
	if p <= math.Pi {
		return (2/math.Pi)*p - 1
	}
	return (-2/math.Pi)*(p-math.Pi) + 1
}

func (triangleWave) Period() float64 { return twoPi }

type squareWave struct{}

func (squareWave) Sample(phase float64) float64 {
	p := math.Mod(phase, twoPi)
	if p < 0 {
		p += twoPi
	}
	if p <= math.Pi {
		return 1
	}
	return -1
}

func (squareWave) Period() float64 { return twoPi }

type sawtoothWave struct{}

func (sawtoothWave) Sample(phase float64) float64 {
	// Shift by π so the discontinuity lands between periods.
	p := math.Mod(phase+math.Pi, twoPi)
	if p < 0 {
		p += twoPi
	}
	return (1/math.Pi)*p - 1
}

func (sawtoothWave) Period() float64 { return twoPi }
