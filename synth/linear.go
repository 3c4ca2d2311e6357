package synth

import "fmt"

// LinearGreedy renders anchor samples exactly and linearly interpolates
// the samples between them. The greed count is how many samples are
// skipped between two anchors: greed 0 degenerates to the exact
// generator, while higher values trade timbral fidelity for fewer
// waveform evaluations (around 5 still sounds acceptable; well beyond
// that the waveform audibly flattens).
type LinearGreedy struct {
	*Entity
	step int
}

// NewLinearGreedy creates a linear-interpolating generator with the
// default linear ADSR envelope.
func NewLinearGreedy(wf Waveform, attack, decay, sustain, release float64, greed int) (*LinearGreedy, error) {
	e, err := NewEntity(wf, attack, decay, sustain, release)
	if err != nil {
		return nil, err
	}
	return NewLinearGreedyFrom(e, greed)
}

// NewLinearGreedyFrom derives a linear-interpolating generator from an
// existing entity's waveform and envelope.
func NewLinearGreedyFrom(e *Entity, greed int) (*LinearGreedy, error) {
	if greed < 0 {
		return nil, fmt.Errorf("synth: greed must be >= 0, got %d", greed)
	}
	// Skipping g samples means the next anchor lies g+1 indices ahead.
	return &LinearGreedy{Entity: e, step: greed + 1}, nil
}

// Greed returns the configured skip count.
func (g *LinearGreedy) Greed() int { return g.step - 1 }

// Render computes anchors at index 0 and every step-th index after it,
// clamping the final anchor to the last sample, and fills each gap with
// a linear ramp between its two anchors.
func (g *LinearGreedy) Render(frequency, totalTime, amplitude, sampleRate float64) []float64 {
	n := sampleCount(totalTime, sampleRate)
	data := make([]float64, n)
	if n == 0 {
		return data
	}

	data[0] = amplitude * g.waveFunction(frequency, 0, totalTime)
	prev := 0
	for prev < n-1 {
		index := prev + g.step
		if index > n-1 {
			index = n - 1
		}
		data[index] = amplitude * g.waveFunction(frequency, noteTime(index, n, totalTime), totalTime)

		delta := (data[index] - data[prev]) / float64(index-prev)
		value := data[prev]
		for i := prev; i < index; i++ {
			data[i] = value
			value += delta
		}
		prev = index
	}

	return data
}
