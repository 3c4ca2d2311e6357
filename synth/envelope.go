package synth

// EnvelopeFunc maps normalized time-in-note (0..1) and the four
// envelope shape parameters to a gain multiplier in [0, 1]. attack,
// decay, and release are fractions of the note duration; sustain is a
// gain level.
type EnvelopeFunc func(tNorm, attack, decay, sustain, release float64) float64

// LinearADSR is the default envelope: a linear rise to 1.0 over the
// attack span, a linear fall to the sustain level over the decay span,
// a flat sustain, and a linear fall to 0 over the release span. A
// sample landing exactly on a segment boundary belongs to the earlier
// segment.
func LinearADSR(tNorm, attack, decay, sustain, release float64) float64 {
	timeSustain := 1.0 - (attack + decay + release)

	var slope, xIntercept, yIntercept float64
	switch {
	case tNorm <= attack:
		slope = 1.0 / attack
	case tNorm-attack <= decay:
		slope = (sustain - 1.0) / decay
		xIntercept = attack
		yIntercept = 1.0
	case tNorm-attack-decay <= timeSustain:
		return sustain
	default:
		slope = -sustain / release
		xIntercept = timeSustain + decay + attack
		yIntercept = sustain
	}

	return slope*(tNorm-xIntercept) + yIntercept
}
