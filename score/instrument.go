package score

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-score/direction"
	"github.com/cwbudde/algo-score/synth"
)

// Pan angles in radians. 0 is fully left, π/2 fully right; the defaults
// spread each channel to its own side at full gain.
const (
	PanHardLeft  = 0.0
	PanHardRight = math.Pi / 2
)

// Part holds one voice's rendered stereo samples: column 0 is the left
// channel, column 1 the right. Samples are in [-1, 1] and deliberately
// not normalized across voices; global normalization belongs to the
// writer.
type Part [][2]float64

// Instrument couples a sound generator (its timbre) with one or more
// voices and a stereo position expressed as two pan angles.
type Instrument struct {
	name      string
	generator synth.Generator
	voices    []*Voice
	panLeft   float64
	panRight  float64
}

// NewInstrument creates an instrument with the given number of empty
// voice slots and default pan angles.
func NewInstrument(name string, gen synth.Generator, numVoices int) *Instrument {
	return &Instrument{
		name:      name,
		generator: gen,
		voices:    make([]*Voice, numVoices),
		panLeft:   PanHardLeft,
		panRight:  PanHardRight,
	}
}

// Name returns the instrument's name.
func (ins *Instrument) Name() string { return ins.name }

// SetGenerator replaces the instrument's sound generator.
func (ins *Instrument) SetGenerator(gen synth.Generator) { ins.generator = gen }

// VoiceCount returns the number of voice slots.
func (ins *Instrument) VoiceCount() int { return len(ins.voices) }

// Voice returns the voice at slot i, which may be nil.
func (ins *Instrument) Voice(i int) *Voice { return ins.voices[i] }

// SetVoice assigns a voice to slot i.
func (ins *Instrument) SetVoice(i int, v *Voice) { ins.voices[i] = v }

// SetPan sets the stereo pan angles in radians.
func (ins *Instrument) SetPan(left, right float64) {
	ins.panLeft = left
	ins.panRight = right
}

// PanLeft returns the left pan angle.
func (ins *Instrument) PanLeft() float64 { return ins.panLeft }

// PanRight returns the right pan angle.
func (ins *Instrument) PanRight() float64 { return ins.panRight }

// panGains derives the per-channel scalars from the pan angles. The
// two formulas are intentionally asymmetric; changing either changes
// audible output.
func (ins *Instrument) panGains() (left, right float64) {
	const hpi = math.Pi / 2
	left = math.Sqrt((hpi - ins.panLeft) / hpi * math.Cos(ins.panLeft))
	right = math.Sqrt(ins.panRight / hpi * math.Sin(ins.panRight))
	return left, right
}

// RenderParts renders every non-empty voice in order, one stereo part
// per voice. overlay may be nil, in which case each chord's own volume
// stands; otherwise the overlay is the sole amplitude authority.
func (ins *Instrument) RenderParts(overlay *direction.Piecewise, sampleRate float64) []Part {
	left, right := ins.panGains()
	parts := make([]Part, 0, len(ins.voices))
	for _, voice := range ins.voices {
		if voice == nil || voice.IsEffectivelyEmpty() {
			continue
		}
		parts = append(parts, panPart(ins.renderVoice(voice, overlay, sampleRate), left, right))
	}
	return parts
}

// RenderPartsParallel renders all non-empty voices concurrently with a
// worker pool bounded by GOMAXPROCS. Voices share only read-only state
// (the generator and the overlay), each writing its own part. If the
// pool has not finished within a window proportional to the longest
// voice, the whole render fails; callers fall back to RenderParts,
// which performs the identical computation sequentially.
func (ins *Instrument) RenderPartsParallel(overlay *direction.Piecewise, sampleRate float64) ([]Part, error) {
	var voices []*Voice
	longest := 0.0
	for _, v := range ins.voices {
		if v == nil || v.IsEffectivelyEmpty() {
			continue
		}
		voices = append(voices, v)
		if v.Duration() > longest {
			longest = v.Duration()
		}
	}

	left, right := ins.panGains()
	parts := make([]Part, len(voices))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, v := range voices {
		g.Go(func() error {
			parts[i] = panPart(ins.renderVoice(v, overlay, sampleRate), left, right)
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	timeout := renderTimeout(longest)
	select {
	case <-done:
		return parts, nil
	case <-time.After(timeout):
		// The workers are abandoned; rendering is CPU-bound and has no
		// finer-grained cancellation.
		return nil, fmt.Errorf("score: parallel render of %q timed out after %s; use RenderParts instead", ins.name, timeout)
	}
}

// renderTimeout scales the allowed window with the longest voice: one
// minute per second of material, with a one minute floor.
func renderTimeout(longestSeconds float64) time.Duration {
	mins := int(longestSeconds + 0.5)
	if mins < 1 {
		mins = 1
	}
	return time.Duration(mins) * time.Minute
}

// renderVoice walks the voice's chords in order into a single mono
// buffer, tracking an absolute sample pointer so overlay lookups only
// ever move forward. The overlay segment is re-fetched only once
// playback time passes the current segment's span.
func (ins *Instrument) renderVoice(voice *Voice, overlay *direction.Piecewise, sampleRate float64) []float64 {
	out := make([]float64, sampleCount(voice.Duration(), sampleRate))
	pointer := 0

	var seg direction.Segment
	haveSeg := false

	for _, chord := range voice.Chords() {
		var samples []float64
		rest := chord.IsRest()
		if rest {
			samples = make([]float64, sampleCount(chord.Duration(), sampleRate))
		} else {
			samples = chord.Render(ins.generator, sampleRate)
		}

		for _, s := range samples {
			if pointer >= len(out) {
				break
			}
			adjust := 1.0
			if overlay != nil && !rest {
				t := float64(pointer) / sampleRate
				if !haveSeg || t > seg.Offset+seg.Direction.Length() {
					seg = overlay.Bucket(t)
					haveSeg = true
				}
				// The overlay supplies the effective target gain; the
				// chord's declared volume is normalized out. A multi-note
				// chord whose first note has volume 0 divides by zero here;
				// only single-note chords are classified as rests.
				adjust = seg.Direction.Value(t-seg.Offset) / chord.Volume()
			}
			out[pointer] = s * adjust
			pointer++
		}
	}
	return out
}

func panPart(mono []float64, left, right float64) Part {
	part := make(Part, len(mono))
	for i, s := range mono {
		part[i][0] = s * left
		part[i][1] = s * right
	}
	return part
}
