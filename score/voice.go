package score

// Voice is one monophonic line of an instrument: an ordered chord
// sequence with a cumulative duration.
type Voice struct {
	chords []Chord
	length float64
}

// NewVoice creates an empty voice.
func NewVoice() *Voice {
	return &Voice{}
}

// Append adds a chord to the end of the voice.
func (v *Voice) Append(c Chord) {
	v.chords = append(v.chords, c)
	v.length += c.Duration()
}

// AppendNote adds a single note as a one-note chord.
func (v *Voice) AppendNote(n Note) {
	v.Append(NewChord(n))
}

// Concatenate appends every chord of other to this voice.
func (v *Voice) Concatenate(other *Voice) {
	v.chords = append(v.chords, other.chords...)
	v.length += other.length
}

// Chords returns the voice's chords in playback order. The slice is
// shared; callers must not modify it.
func (v *Voice) Chords() []Chord { return v.chords }

// Len returns the number of chords.
func (v *Voice) Len() int { return len(v.chords) }

// Duration returns the voice's total duration in seconds.
func (v *Voice) Duration() float64 { return v.length }

// IsEmpty reports whether the voice spans no time. This is the O(1)
// check; use IsEffectivelyEmpty to also treat all-rest voices as empty.
func (v *Voice) IsEmpty() bool { return v.length == 0 }

// IsEffectivelyEmpty reports whether the voice is empty or consists of
// rests only.
func (v *Voice) IsEffectivelyEmpty() bool {
	if v.IsEmpty() {
		return true
	}
	for _, c := range v.chords {
		if !c.IsRest() {
			return false
		}
	}
	return true
}
