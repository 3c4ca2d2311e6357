package direction

import "math"

// Ramp marks how dynamics approach the next leveled event.
type Ramp int

const (
	// RampNone means the event sets a level directly.
	RampNone Ramp = iota
	// RampCrescendo opens a rising ramp toward the next level.
	RampCrescendo
	// RampDecrescendo opens a falling ramp toward the next level.
	RampDecrescendo
)

// Event is one dynamics change handed over by an external score reader:
// either a target level (as a MIDI key velocity) reached at an absolute
// position, or a crescendo/decrescendo marker shaping the ramp into the
// next leveled event.
type Event struct {
	Position float64
	Velocity float64
	Ramp     Ramp
}

// Build converts an ordered dynamics-event list into a piecewise
// overlay with linear ramps.
func Build(events []Event) *Piecewise {
	return BuildShaped(events, Linear)
}

// BuildShaped converts an ordered dynamics-event list into a piecewise
// overlay. Each leveled event closes a segment running from the
// previous level to its own. A pending crescendo whose target does not
// actually rise is lifted to 0.2 + 0.8·sqrt(g); a pending decrescendo
// whose target does not fall is lowered to 0.8·g², so the ramp always
// moves the way the marking says it should.
func BuildShaped(events []Event, shape ShapeFunc) *Piecewise {
	var dirs []Direction

	initialGain := 0.0
	initialPos := 0.0
	slope := 0
	for _, e := range events {
		switch e.Ramp {
		case RampCrescendo:
			slope = 1
			continue
		case RampDecrescendo:
			slope = -1
			continue
		}

		finalGain := VelocityGain(e.Velocity)
		if slope == 1 && initialGain >= finalGain {
			finalGain = 0.2 + 0.8*math.Sqrt(initialGain)
		}
		if slope == -1 && initialGain <= finalGain {
			finalGain = 0.8 * initialGain * initialGain
		}
		dirs = append(dirs, NewShaped(initialGain, finalGain, e.Position-initialPos, shape))

		initialGain = VelocityGain(e.Velocity)
		initialPos = e.Position
	}

	return NewPiecewise(dirs...)
}
