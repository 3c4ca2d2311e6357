package direction

import (
	"fmt"
	"math"
	"strings"
)

// Dynamic levels ppp through fff as linear gains, derived from the MIDI
// key velocities notation software conventionally assigns them.
var (
	PPP = VelocityGain(16)
	PP  = VelocityGain(32)
	P   = VelocityGain(48)
	MP  = VelocityGain(64)
	MF  = VelocityGain(80)
	F   = VelocityGain(96)
	FF  = VelocityGain(112)
	FFF = VelocityGain(127)
)

// VelocityGain converts a MIDI key velocity (1..127) to a linear gain
// using the 40·log10(v/127) dB loudness mapping.
func VelocityGain(velocity float64) float64 {
	db := 40.0 * math.Log10(velocity/127.0)
	return math.Pow(10.0, db/20.0)
}

// ParseDynamic resolves a dynamic marking such as "mf" or "fff" to its
// linear gain.
func ParseDynamic(name string) (float64, error) {
	switch strings.ToLower(name) {
	case "ppp":
		return PPP, nil
	case "pp":
		return PP, nil
	case "p":
		return P, nil
	case "mp":
		return MP, nil
	case "mf":
		return MF, nil
	case "f":
		return F, nil
	case "ff":
		return FF, nil
	case "fff":
		return FFF, nil
	}
	return 0, fmt.Errorf("direction: unknown dynamic marking %q", name)
}
