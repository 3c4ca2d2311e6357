// Package score models the renderable parts of a musical score: notes,
// chords, voices, and instruments, plus the machinery turning them into
// stereo sample buffers.
package score

import (
	"math"
	"regexp"
	"strconv"

	"github.com/cwbudde/algo-score/synth"
)

// Note is a single pitched event: frequency in Hz (0 for a rest),
// duration in seconds, and volume as a linear gain in [0, 1].
type Note struct {
	Frequency float64
	Duration  float64
	Volume    float64
}

// NewNote creates a note from raw frequency, duration, and volume.
func NewNote(frequency, duration, volume float64) Note {
	return Note{Frequency: frequency, Duration: duration, Volume: volume}
}

// NewNamedNote creates a note from a pitch name such as "C4" or "F+3".
func NewNamedNote(pitch string, duration, volume float64) Note {
	return Note{Frequency: ParsePitch(pitch), Duration: duration, Volume: volume}
}

// IsRest reports whether the note produces no sound.
func (n Note) IsRest() bool {
	return n.Frequency == 0 || n.Volume == 0
}

// Render produces the note's samples using the given generator.
func (n Note) Render(gen synth.Generator, sampleRate float64) []float64 {
	return gen.Render(n.Frequency, n.Duration, n.Volume, sampleRate)
}

var pitchPattern = regexp.MustCompile(`^([A-G])([+-])?(\d+)$`)

// Semitone offsets from A within one octave block.
var pitchOffsets = map[byte]int{
	'A': 0, 'B': 2, 'C': -9, 'D': -7, 'E': -5, 'F': -4, 'G': -2,
}

// ParsePitch converts a pitch name of the form "<letter><accidental?><octave>"
// into a frequency in Hz, equal temperament around A4 = 440 Hz. '+' is
// a sharp and '-' a flat, so middle C is "C4" and the C sharp above it
// "C+4". Names that do not match the form map to 0, a rest.
func ParsePitch(name string) float64 {
	m := pitchPattern.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	offset := pitchOffsets[m[1][0]]
	switch m[2] {
	case "+":
		offset++
	case "-":
		offset--
	}
	octave, err := strconv.Atoi(m[3])
	if err != nil {
		return 0
	}
	return 440.0 * math.Pow(2.0, float64(offset)/12.0+float64(octave-4))
}
