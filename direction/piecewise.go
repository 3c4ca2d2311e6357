package direction

import "github.com/cwbudde/algo-score/avl"

// Segment is one Direction tagged with its absolute start offset on the
// overlay's timeline and its index in the list the overlay was built
// from. A synthetic placeholder segment carries index -1.
type Segment struct {
	Direction Direction
	Index     int
	Offset    float64
}

// Piecewise is a time-ordered concatenation of Directions indexed by a
// balanced search tree for O(log n) "which segment contains t" lookups.
// It is built once and never mutated, so it is safe for concurrent
// reads.
type Piecewise struct {
	initial float64
	final   float64
	length  float64

	tree    *avl.Tree[Segment]
	head    Segment
	hasHead bool
}

// NewPiecewise concatenates directions in order, skipping zero-length
// ones. Each surviving segment is keyed by the running sum of the
// lengths before it.
func NewPiecewise(directions ...Direction) *Piecewise {
	tree, _ := avl.New(compareSegments)
	p := &Piecewise{tree: tree}

	offset := 0.0
	for i, d := range directions {
		if d.IsZero() {
			continue
		}
		seg := Segment{Direction: d, Index: i, Offset: offset}
		tree.Insert(seg)
		if !p.hasHead {
			p.head = seg
			p.hasHead = true
			p.initial = d.Initial()
		}
		p.final = d.Final()
		offset += d.Length()
	}
	p.length = offset
	return p
}

// Initial returns the overlay's overall initial gain.
func (p *Piecewise) Initial() float64 { return p.initial }

// Final returns the overlay's overall final gain.
func (p *Piecewise) Final() float64 { return p.final }

// Length returns the overlay's total time span.
func (p *Piecewise) Length() float64 { return p.length }

// Size returns the number of indexed segments.
func (p *Piecewise) Size() int { return p.tree.Size() }

// Value returns the overlay gain at absolute time t: the containing
// segment evaluated at t relative to its start. Before the first
// segment the overall initial gain is returned unchanged. For tight
// per-sample loops prefer Bucket and evaluate the segment directly.
func (p *Piecewise) Value(t float64) float64 {
	seg, ok := p.lookup(t)
	if !ok {
		return p.initial
	}
	return seg.Direction.Value(t - seg.Offset)
}

// Bucket returns the segment covering absolute time t, letting callers
// that sample many consecutive frames reuse it without repeating the
// tree search. When no segment covers t, a synthetic flat zero-gain
// placeholder spanning the head segment is returned.
func (p *Piecewise) Bucket(t float64) Segment {
	if seg, ok := p.lookup(t); ok {
		return seg
	}
	span := 0.0
	if p.hasHead {
		span = p.head.Direction.Length()
	}
	return Segment{Direction: New(0, 0, span), Index: -1, Offset: 0}
}

// lookup finds the segment with the largest start offset <= t. An
// offset exactly equal to t is chosen directly.
func (p *Piecewise) lookup(t float64) (Segment, bool) {
	return p.tree.Floor(Segment{Offset: t})
}

func compareSegments(a, b Segment) int {
	switch {
	case a.Offset < b.Offset:
		return -1
	case a.Offset > b.Offset:
		return 1
	default:
		return 0
	}
}
