package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-score/synth"
)

// Rendering strategies selectable from a preset file.
const (
	StrategyExact    = "exact"
	StrategyLinear   = "linear"
	StrategyPeriodic = "periodic"
	StrategyMemory   = "memory"
)

// Memory backings selectable from a preset file.
const (
	BackingHashed  = "hashed"
	BackingOrdered = "ordered"
)

// Params describes a fully resolved sound generator configuration.
type Params struct {
	Waveform      string
	Attack        float64
	Decay         float64
	Sustain       float64
	Release       float64
	Strategy      string
	Greed         int
	MemoryBacking string
}

// NewDefaultParams returns the stock configuration: an exact sine
// generator with a gentle envelope.
func NewDefaultParams() *Params {
	return &Params{
		Waveform:      "sine",
		Attack:        0.1,
		Decay:         0.2,
		Sustain:       0.7,
		Release:       0.2,
		Strategy:      StrategyExact,
		Greed:         0,
		MemoryBacking: BackingHashed,
	}
}

// File is the JSON schema for generator presets. Absent fields leave
// the corresponding default untouched.
type File struct {
	Waveform      string   `json:"waveform"`
	Attack        *float64 `json:"attack"`
	Decay         *float64 `json:"decay"`
	Sustain       *float64 `json:"sustain"`
	Release       *float64 `json:"release"`
	Strategy      string   `json:"strategy"`
	Greed         *int     `json:"greed"`
	MemoryBacking string   `json:"memory_backing"`
}

// LoadJSON loads a preset JSON file and applies it on top of default params.
func LoadJSON(path string) (*Params, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}

	p := NewDefaultParams()
	if err := ApplyFile(p, &f); err != nil {
		return nil, err
	}
	return p, nil
}

// ApplyFile applies a parsed preset file onto an existing params object.
func ApplyFile(dst *Params, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination params")
	}
	if f == nil {
		return nil
	}

	if f.Waveform != "" {
		if _, err := synth.ParseWaveform(f.Waveform); err != nil {
			return err
		}
		dst.Waveform = strings.ToLower(strings.TrimSpace(f.Waveform))
	}
	if f.Attack != nil {
		if *f.Attack < 0 {
			return fmt.Errorf("attack must be >= 0")
		}
		dst.Attack = *f.Attack
	}
	if f.Decay != nil {
		if *f.Decay < 0 {
			return fmt.Errorf("decay must be >= 0")
		}
		dst.Decay = *f.Decay
	}
	if f.Sustain != nil {
		if *f.Sustain < 0 || *f.Sustain > 1 {
			return fmt.Errorf("sustain must be in [0,1]")
		}
		dst.Sustain = *f.Sustain
	}
	if f.Release != nil {
		if *f.Release < 0 {
			return fmt.Errorf("release must be >= 0")
		}
		dst.Release = *f.Release
	}
	if f.Strategy != "" {
		s := strings.ToLower(strings.TrimSpace(f.Strategy))
		switch s {
		case StrategyExact, StrategyLinear, StrategyPeriodic, StrategyMemory:
			dst.Strategy = s
		default:
			return fmt.Errorf("unknown strategy %q", f.Strategy)
		}
	}
	if f.Greed != nil {
		if *f.Greed < 0 {
			return fmt.Errorf("greed must be >= 0")
		}
		dst.Greed = *f.Greed
	}
	if f.MemoryBacking != "" {
		b := strings.ToLower(strings.TrimSpace(f.MemoryBacking))
		switch b {
		case BackingHashed, BackingOrdered:
			dst.MemoryBacking = b
		default:
			return fmt.Errorf("unknown memory_backing %q", f.MemoryBacking)
		}
	}
	return nil
}

// Build constructs the sound generator the params describe. A memory
// strategy wraps a linear generator with the configured greed so cache
// misses stay cheap on repeated notes.
func (p *Params) Build() (synth.Generator, error) {
	wf, err := synth.ParseWaveform(p.Waveform)
	if err != nil {
		return nil, err
	}

	switch p.Strategy {
	case StrategyExact:
		return synth.NewEntity(wf, p.Attack, p.Decay, p.Sustain, p.Release)
	case StrategyLinear:
		return synth.NewLinearGreedy(wf, p.Attack, p.Decay, p.Sustain, p.Release, p.Greed)
	case StrategyPeriodic:
		return synth.NewPeriodicGreedy(wf, p.Attack, p.Decay, p.Sustain, p.Release)
	case StrategyMemory:
		backing, err := synth.NewLinearGreedy(wf, p.Attack, p.Decay, p.Sustain, p.Release, p.Greed)
		if err != nil {
			return nil, err
		}
		if p.MemoryBacking == BackingOrdered {
			return synth.NewTreeMemory(backing), nil
		}
		return synth.NewHashMemory(backing), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", p.Strategy)
	}
}
