package synth

import "math"

// PeriodicGreedy computes one period of the waveform exactly and reads
// every later sample from that lookup table. The envelope is not
// periodic, so it is re-evaluated for every sample. Among the
// approximate generators this is the fastest and loses no fidelity.
type PeriodicGreedy struct {
	*Entity
	period float64
}

// NewPeriodicGreedy creates a period-table generator with the default
// linear ADSR envelope.
func NewPeriodicGreedy(wf PeriodicWaveform, attack, decay, sustain, release float64) (*PeriodicGreedy, error) {
	e, err := NewEntity(wf, attack, decay, sustain, release)
	if err != nil {
		return nil, err
	}
	return &PeriodicGreedy{Entity: e, period: wf.Period()}, nil
}

// NewPeriodicGreedyFunc creates a period-table generator with a
// caller-supplied envelope function.
func NewPeriodicGreedyFunc(wf PeriodicWaveform, attack, decay, sustain, release float64, env EnvelopeFunc) (*PeriodicGreedy, error) {
	e, err := NewEntityFunc(wf, attack, decay, sustain, release, env)
	if err != nil {
		return nil, err
	}
	return &PeriodicGreedy{Entity: e, period: wf.Period()}, nil
}

// Render fills the first waveform period exactly and wraps the table
// for the rest of the note. A zero frequency is a rest and yields an
// all-zero buffer without building a table.
func (p *PeriodicGreedy) Render(frequency, totalTime, amplitude, sampleRate float64) []float64 {
	n := sampleCount(totalTime, sampleRate)
	data := make([]float64, n)
	if frequency == 0 {
		return data
	}

	adjustedPeriod := p.period / (twoPi * frequency)
	periodSamples := int(math.Round(adjustedPeriod * sampleRate))
	if periodSamples < 1 {
		// Less than one sample per cycle; the table cannot represent
		// the waveform, so evaluate directly.
		for i := 0; i < n; i++ {
			data[i] = amplitude * p.waveFunction(frequency, noteTime(i, n, totalTime), totalTime)
		}
		return data
	}

	table := make([]float64, periodSamples)
	for i := 0; i < n; i++ {
		var v float64
		if i < periodSamples {
			v = p.waveform.Sample(twoPi * frequency * noteTime(i, n, totalTime))
			table[i] = v
		} else {
			v = table[i%periodSamples]
		}
		gain := p.envelope(float64(i)/float64(n), p.attack, p.decay, p.sustain, p.release)
		data[i] = amplitude * v * gain
	}

	return data
}
