package score

import (
	"math"

	"github.com/cwbudde/algo-score/synth"
)

// Chord is a group of simultaneous notes sharing one duration. The
// chord's duration and volume are read from its first note; all notes
// are expected to carry the same duration.
type Chord struct {
	notes []Note
}

// NewChord groups notes into a chord.
func NewChord(notes ...Note) Chord {
	return Chord{notes: notes}
}

// Size returns the number of constituent notes.
func (c Chord) Size() int { return len(c.notes) }

// Note returns the constituent note at index i.
func (c Chord) Note(i int) Note { return c.notes[i] }

// IsNote reports whether the chord is really a single note.
func (c Chord) IsNote() bool { return len(c.notes) == 1 }

// Duration returns the chord's duration in seconds.
func (c Chord) Duration() float64 {
	if len(c.notes) == 0 {
		return 0
	}
	return c.notes[0].Duration
}

// Volume returns the chord's declared volume, read from its first note.
func (c Chord) Volume() float64 {
	if len(c.notes) == 0 {
		return 0
	}
	return c.notes[0].Volume
}

// IsRest reports whether the chord is a single silent note.
func (c Chord) IsRest() bool {
	return len(c.notes) == 0 || (c.IsNote() && c.notes[0].IsRest())
}

// Render renders every constituent note at the full chord duration and
// mixes them as the arithmetic mean of their sample buffers.
func (c Chord) Render(gen synth.Generator, sampleRate float64) []float64 {
	n := sampleCount(c.Duration(), sampleRate)
	mix := make([]float64, n)
	if len(c.notes) == 0 {
		return mix
	}

	inv := 1.0 / float64(len(c.notes))
	for _, note := range c.notes {
		if note.IsRest() {
			continue // contributes silence, but still counts in the mean
		}
		samples := gen.Render(note.Frequency, c.Duration(), note.Volume, sampleRate)
		for j := 0; j < len(samples) && j < n; j++ {
			mix[j] += samples[j] * inv
		}
	}
	return mix
}

func sampleCount(duration, sampleRate float64) int {
	return int(math.Round(duration * sampleRate))
}
