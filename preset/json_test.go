package preset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadJSONAppliesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	presetPath := filepath.Join(dir, "preset.json")
	content := `{
  "waveform": "sawtooth",
  "attack": 0.05,
  "sustain": 0.8,
  "strategy": "memory",
  "greed": 3,
  "memory_backing": "ordered"
}`
	if err := os.WriteFile(presetPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}

	p, err := LoadJSON(presetPath)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if p.Waveform != "sawtooth" || p.Strategy != StrategyMemory || p.MemoryBacking != BackingOrdered {
		t.Fatalf("selection fields mismatch: %+v", p)
	}
	if p.Attack != 0.05 || p.Sustain != 0.8 || p.Greed != 3 {
		t.Fatalf("numeric fields mismatch: %+v", p)
	}
	// Absent fields keep the defaults.
	def := NewDefaultParams()
	if p.Decay != def.Decay || p.Release != def.Release {
		t.Fatalf("defaults not preserved: %+v", p)
	}
}

func TestLoadJSONRejectsUnknownStrategy(t *testing.T) {
	dir := t.TempDir()
	presetPath := filepath.Join(dir, "preset.json")
	content := `{"strategy": "magic"}`
	if err := os.WriteFile(presetPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}
	if _, err := LoadJSON(presetPath); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}

func TestLoadJSONRejectsInvalidRanges(t *testing.T) {
	dir := t.TempDir()
	presetPath := filepath.Join(dir, "preset.json")
	for _, content := range []string{
		`{"attack": -0.1}`,
		`{"sustain": 1.5}`,
		`{"greed": -1}`,
		`{"waveform": "noise"}`,
		`{"memory_backing": "lru"}`,
	} {
		if err := os.WriteFile(presetPath, []byte(content), 0o644); err != nil {
			t.Fatalf("write preset: %v", err)
		}
		if _, err := LoadJSON(presetPath); err == nil {
			t.Fatalf("expected error for %s", content)
		}
	}
}

func TestBuildSelectsStrategy(t *testing.T) {
	cases := []struct {
		strategy string
		backing  string
	}{
		{StrategyExact, ""},
		{StrategyLinear, ""},
		{StrategyPeriodic, ""},
		{StrategyMemory, BackingHashed},
		{StrategyMemory, BackingOrdered},
	}
	for _, c := range cases {
		p := NewDefaultParams()
		p.Strategy = c.strategy
		if c.backing != "" {
			p.MemoryBacking = c.backing
		}
		gen, err := p.Build()
		if err != nil {
			t.Fatalf("Build(%s/%s): %v", c.strategy, c.backing, err)
		}
		data := gen.Render(440, 0.01, 0.5, 44100)
		if len(data) != 441 {
			t.Fatalf("Build(%s/%s): rendered %d samples, want 441", c.strategy, c.backing, len(data))
		}
	}
}

func TestBuildRejectsEnvelopeOverrun(t *testing.T) {
	p := NewDefaultParams()
	p.Attack = 0.5
	p.Decay = 0.4
	p.Release = 0.3
	if _, err := p.Build(); err == nil {
		t.Fatalf("expected error when attack+decay+release exceeds the note")
	}
}

func TestBuildDeterministicRender(t *testing.T) {
	p := NewDefaultParams()
	gen, err := p.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	a := gen.Render(220, 0.02, 0.5, 44100)
	b := gen.Render(220, 0.02, 0.5, 44100)
	if len(a) != len(b) {
		t.Fatalf("repeated renders disagree on length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("render is not deterministic at sample %d", i)
		}
	}
}
