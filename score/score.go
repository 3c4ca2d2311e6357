package score

import (
	"fmt"

	"github.com/cwbudde/algo-score/direction"
)

// Score is an ordered collection of instruments, each carrying an
// optional dynamics overlay shared by all of its voices.
type Score struct {
	instruments []*Instrument
	overlays    []*direction.Piecewise
}

// NewScore creates an empty score.
func NewScore() *Score {
	return &Score{}
}

// Add appends an instrument with its overlay (which may be nil) and
// returns the instrument's index.
func (s *Score) Add(ins *Instrument, overlay *direction.Piecewise) int {
	s.instruments = append(s.instruments, ins)
	s.overlays = append(s.overlays, overlay)
	return len(s.instruments) - 1
}

// Len returns the number of instruments.
func (s *Score) Len() int { return len(s.instruments) }

// Instrument returns the instrument at index i.
func (s *Score) Instrument(i int) *Instrument { return s.instruments[i] }

// Overlay returns the dynamics overlay at index i, which may be nil.
func (s *Score) Overlay(i int) *direction.Piecewise { return s.overlays[i] }

// SetOverlay replaces the overlay of the instrument at index i.
func (s *Score) SetOverlay(i int, overlay *direction.Piecewise) error {
	if i < 0 || i >= len(s.instruments) {
		return fmt.Errorf("score: no instrument at index %d", i)
	}
	s.overlays[i] = overlay
	return nil
}

// RenderAll renders every instrument sequentially, returning one part
// list per instrument in score order.
func (s *Score) RenderAll(sampleRate float64) [][]Part {
	out := make([][]Part, len(s.instruments))
	for i, ins := range s.instruments {
		out[i] = ins.RenderParts(s.overlays[i], sampleRate)
	}
	return out
}

// RenderAllParallel renders every instrument with the concurrent
// per-voice path, falling back to the sequential path for any
// instrument whose parallel render times out.
func (s *Score) RenderAllParallel(sampleRate float64) [][]Part {
	out := make([][]Part, len(s.instruments))
	for i, ins := range s.instruments {
		parts, err := ins.RenderPartsParallel(s.overlays[i], sampleRate)
		if err != nil {
			parts = ins.RenderParts(s.overlays[i], sampleRate)
		}
		out[i] = parts
	}
	return out
}
