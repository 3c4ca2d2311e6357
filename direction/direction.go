// Package direction models time-varying dynamics: single gain ramps,
// their piecewise concatenation over a score's timeline, and the
// conversion of parsed dynamics events into an overlay the renderer can
// sample per audio frame.
package direction

// ShapeFunc shapes a direction's progress, mapping normalized position
// 0..1 to normalized gain progress 0..1. Implementations must satisfy
// f(0) = 0 and f(1) = 1; this contract is the caller's to uphold and is
// not checked.
type ShapeFunc func(t float64) float64

// Linear is the default shape.
func Linear(t float64) float64 { return t }

// Direction describes dynamics moving smoothly from an initial gain to
// a final gain over a fixed time distance. Immutable.
type Direction struct {
	initial float64
	final   float64
	length  float64
	shape   ShapeFunc
}

// New creates a linear direction.
func New(initial, final, distance float64) Direction {
	return NewShaped(initial, final, distance, Linear)
}

// NewShaped creates a direction with a caller-supplied shaping curve.
func NewShaped(initial, final, distance float64, shape ShapeFunc) Direction {
	return Direction{initial: initial, final: final, length: distance, shape: shape}
}

// Initial returns the gain at the start of the direction.
func (d Direction) Initial() float64 { return d.initial }

// Final returns the gain at the end of the direction.
func (d Direction) Final() float64 { return d.final }

// Length returns the time distance the direction spans.
func (d Direction) Length() float64 { return d.length }

// IsFlat reports whether the initial and final gains are equal.
func (d Direction) IsFlat() bool { return d.initial == d.final }

// IsZero reports whether the direction spans no time at all.
func (d Direction) IsZero() bool { return d.length == 0 }

// Value returns the gain at time t into the direction. t is expected
// in [0, Length()]; outside that span the result follows the shaping
// curve's extrapolation. A zero-length direction is always 0.
func (d Direction) Value(t float64) float64 {
	if d.length == 0 {
		return 0
	}
	return d.initial + (d.final-d.initial)*d.shape(t/d.length)
}
