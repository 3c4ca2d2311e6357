package synth

import (
	"fmt"
	"math"
)

// Generator renders a note into a sample buffer. All implementations
// return exactly round(totalTime*sampleRate) samples and are safe for
// concurrent use.
type Generator interface {
	Render(frequency, totalTime, amplitude, sampleRate float64) []float64
}

// Entity is the exact sound generator: every sample evaluates the
// waveform and envelope directly. It is immutable after construction
// and the baseline the approximate generators are measured against.
type Entity struct {
	waveform Waveform
	envelope EnvelopeFunc

	attack  float64
	decay   float64
	sustain float64
	release float64
}

// NewEntity creates an exact generator with the default linear ADSR
// envelope. attack, decay, and release are fractions of the note
// duration and together must not exceed 1.0.
func NewEntity(wf Waveform, attack, decay, sustain, release float64) (*Entity, error) {
	return NewEntityFunc(wf, attack, decay, sustain, release, LinearADSR)
}

// NewEntityFunc creates an exact generator with a caller-supplied
// envelope function.
func NewEntityFunc(wf Waveform, attack, decay, sustain, release float64, env EnvelopeFunc) (*Entity, error) {
	if attack+decay+release > 1.0 {
		return nil, fmt.Errorf("synth: envelope fractions sum to %g, must not exceed 1.0", attack+decay+release)
	}
	return &Entity{
		waveform: wf,
		envelope: env,
		attack:   attack,
		decay:    decay,
		sustain:  sustain,
		release:  release,
	}, nil
}

// Waveform returns the waveform the entity emits.
func (e *Entity) Waveform() Waveform { return e.waveform }

// Envelope returns the entity's envelope function.
func (e *Entity) Envelope() EnvelopeFunc { return e.envelope }

// Attack returns the attack fraction.
func (e *Entity) Attack() float64 { return e.attack }

// Decay returns the decay fraction.
func (e *Entity) Decay() float64 { return e.decay }

// Sustain returns the sustain gain level.
func (e *Entity) Sustain() float64 { return e.sustain }

// Release returns the release fraction.
func (e *Entity) Release() float64 { return e.release }

// Render computes every sample exactly.
func (e *Entity) Render(frequency, totalTime, amplitude, sampleRate float64) []float64 {
	n := sampleCount(totalTime, sampleRate)
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		data[i] = amplitude * e.waveFunction(frequency, noteTime(i, n, totalTime), totalTime)
	}
	return data
}

// waveFunction evaluates waveform times envelope at time t within a
// note lasting totalTime.
func (e *Entity) waveFunction(frequency, t, totalTime float64) float64 {
	return e.waveform.Sample(twoPi*frequency*t) *
		e.envelope(t/totalTime, e.attack, e.decay, e.sustain, e.release)
}

func sampleCount(totalTime, sampleRate float64) int {
	return int(math.Round(totalTime * sampleRate))
}

// noteTime parameterizes time by sample index over total sample count,
// not by sample rate, so a note's last sample always lands at the same
// fraction of totalTime regardless of how the count was rounded.
func noteTime(i, n int, totalTime float64) float64 {
	return float64(i) / float64(n) * totalTime
}
