package synth

import (
	"math"
	"sync"
	"testing"
)

const (
	testAttack  = 0.1
	testDecay   = 0.2
	testSustain = 0.7
	testRelease = 0.2
)

func newTestEntity(t *testing.T, wf Waveform) *Entity {
	t.Helper()
	e, err := NewEntity(wf, testAttack, testDecay, testSustain, testRelease)
	if err != nil {
		t.Fatalf("NewEntity: %v", err)
	}
	return e
}

func TestEnvelopeSumValidation(t *testing.T) {
	if _, err := NewEntity(Sine, 0.5, 0.4, 0.7, 0.2); err == nil {
		t.Fatalf("expected construction to fail for attack+decay+release > 1.0")
	}
	if _, err := NewEntity(Sine, 0.5, 0.3, 0.7, 0.2); err != nil {
		t.Fatalf("expected attack+decay+release == 1.0 to be accepted: %v", err)
	}
	if _, err := NewLinearGreedy(Sine, 0.5, 0.4, 0.7, 0.2, 3); err == nil {
		t.Fatalf("expected linear-greedy construction to fail for invalid envelope")
	}
	if _, err := NewPeriodicGreedy(Sine, 0.5, 0.4, 0.7, 0.2); err == nil {
		t.Fatalf("expected periodic-greedy construction to fail for invalid envelope")
	}
	if _, err := NewLinearGreedy(Sine, 0.1, 0.1, 0.7, 0.1, -1); err == nil {
		t.Fatalf("expected negative greed to be rejected")
	}
}

func TestLinearADSRSegments(t *testing.T) {
	const a, d, s, r = 0.25, 0.25, 0.5, 0.25
	cases := []struct {
		tNorm float64
		want  float64
	}{
		{0.0, 0.0},
		{0.125, 0.5},  // mid-attack
		{0.25, 1.0},   // attack peak
		{0.375, 0.75}, // mid-decay
		{0.5, 0.5},    // decay into sustain
		{0.6, 0.5},    // sustain hold
		{0.875, 0.25}, // mid-release
		{1.0, 0.0},
	}
	for _, c := range cases {
		got := LinearADSR(c.tNorm, a, d, s, r)
		if math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("LinearADSR(%g) = %g, want %g", c.tNorm, got, c.want)
		}
	}
}

func TestExactRenderLength(t *testing.T) {
	waveforms := []PeriodicWaveform{Sine, Triangle, Square, Sawtooth}
	frequencies := []float64{27.5, 261.63, 440, 1244.51, 4186.01}
	for _, wf := range waveforms {
		e := newTestEntity(t, wf)
		for _, f := range frequencies {
			const totalTime, sampleRate = 0.37, 44100.0
			got := e.Render(f, totalTime, 0.5, sampleRate)
			want := int(math.Round(totalTime * sampleRate))
			if len(got) != want {
				t.Fatalf("render length = %d, want %d (f=%g)", len(got), want, f)
			}
		}
	}
}

func TestWaveformRange(t *testing.T) {
	waveforms := []PeriodicWaveform{Sine, Triangle, Square, Sawtooth}
	for _, wf := range waveforms {
		for phase := -20.0; phase <= 20.0; phase += 0.013 {
			v := wf.Sample(phase)
			if v < -1 || v > 1 {
				t.Fatalf("sample %g at phase %g outside [-1, 1]", v, phase)
			}
			p := wf.Period()
			if d := math.Abs(wf.Sample(phase+p) - v); d > 1e-9 {
				t.Fatalf("waveform not periodic: |f(x+T)-f(x)| = %g at phase %g", d, phase)
			}
		}
	}
}

func TestLinearGreedyZeroGreedMatchesExact(t *testing.T) {
	exact := newTestEntity(t, Triangle)
	greedy, err := NewLinearGreedyFrom(exact, 0)
	if err != nil {
		t.Fatalf("NewLinearGreedyFrom: %v", err)
	}

	want := exact.Render(329.63, 0.25, 0.6, 44100)
	got := greedy.Render(329.63, 0.25, 0.6, 44100)
	if len(got) != len(want) {
		t.Fatalf("length mismatch: %d vs %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("sample %d differs with greed=0: %g vs %g", i, got[i], want[i])
		}
	}
}

func TestLinearGreedyAnchorsAreExact(t *testing.T) {
	const greed = 5
	exact := newTestEntity(t, Sine)
	greedy, err := NewLinearGreedyFrom(exact, greed)
	if err != nil {
		t.Fatalf("NewLinearGreedyFrom: %v", err)
	}

	want := exact.Render(440, 0.1, 0.8, 44100)
	got := greedy.Render(440, 0.1, 0.8, 44100)
	if len(got) != len(want) {
		t.Fatalf("length mismatch: %d vs %d", len(got), len(want))
	}
	step := greed + 1
	for i := 0; i < len(got); i += step {
		if got[i] != want[i] {
			t.Fatalf("anchor %d is not exact: %g vs %g", i, got[i], want[i])
		}
	}
	if last := len(got) - 1; got[last] != want[last] {
		t.Fatalf("clamped final anchor is not exact: %g vs %g", got[last], want[last])
	}
}

func TestLinearGreedyShortBuffer(t *testing.T) {
	greedy, err := NewLinearGreedy(Sine, testAttack, testDecay, testSustain, testRelease, 9)
	if err != nil {
		t.Fatalf("NewLinearGreedy: %v", err)
	}
	// 3 samples with a 10-sample anchor stride: the only anchor past 0
	// clamps to the final sample.
	got := greedy.Render(440, 3.0/44100.0, 0.5, 44100)
	if len(got) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(got))
	}
}

func TestPeriodicGreedyMatchesExact(t *testing.T) {
	// 441 Hz at 44.1 kHz gives exactly 100 samples per period, so the
	// table wrap lands on exact phase multiples.
	const frequency, totalTime, amplitude, sampleRate = 441.0, 0.5, 0.8, 44100.0
	for _, wf := range []PeriodicWaveform{Sine, Triangle, Square, Sawtooth} {
		exact := newTestEntity(t, wf)
		periodic, err := NewPeriodicGreedy(wf, testAttack, testDecay, testSustain, testRelease)
		if err != nil {
			t.Fatalf("NewPeriodicGreedy: %v", err)
		}

		want := exact.Render(frequency, totalTime, amplitude, sampleRate)
		got := periodic.Render(frequency, totalTime, amplitude, sampleRate)
		if len(got) != len(want) {
			t.Fatalf("length mismatch: %d vs %d", len(got), len(want))
		}
		for i := range got {
			if d := math.Abs(got[i] - want[i]); d > 1e-9 {
				t.Fatalf("sample %d differs by %g (periodic=%g exact=%g)", i, d, got[i], want[i])
			}
		}
	}
}

func TestPeriodicGreedyZeroFrequency(t *testing.T) {
	periodic, err := NewPeriodicGreedy(Sine, testAttack, testDecay, testSustain, testRelease)
	if err != nil {
		t.Fatalf("NewPeriodicGreedy: %v", err)
	}
	got := periodic.Render(0, 0.5, 0.8, 44100)
	if len(got) != 22050 {
		t.Fatalf("expected 22050 samples, got %d", len(got))
	}
	for i, v := range got {
		if v != 0 {
			t.Fatalf("expected silence for zero frequency, sample %d = %g", i, v)
		}
	}
}

func TestMemoryAmplitudeRescale(t *testing.T) {
	for name, mem := range map[string]*Memory{
		"hash": NewHashMemory(newTestEntity(t, Sine)),
		"tree": NewTreeMemory(newTestEntity(t, Sine)),
	} {
		first := mem.Render(440, 0.25, 0.2, 44100)
		second := mem.Render(440, 0.25, 0.5, 44100)
		if len(first) != len(second) {
			t.Fatalf("%s: length mismatch: %d vs %d", name, len(first), len(second))
		}
		const wantRatio = 0.5 / 0.2
		for i := range first {
			if first[i] == 0 {
				if second[i] != 0 {
					t.Fatalf("%s: sample %d: zero rescaled to %g", name, i, second[i])
				}
				continue
			}
			if ratio := second[i] / first[i]; math.Abs(ratio-wantRatio) > 1e-12 {
				t.Fatalf("%s: sample %d: ratio %g, want %g", name, i, ratio, wantRatio)
			}
		}
	}
}

func TestMemoryReturnsIndependentCopies(t *testing.T) {
	mem := NewTreeMemory(newTestEntity(t, Triangle))

	first := mem.Render(220, 0.1, 0.4, 44100)
	for i := range first {
		first[i] = 999
	}
	second := mem.Render(220, 0.1, 0.4, 44100)
	for i, v := range second {
		if v == 999 {
			t.Fatalf("cache corrupted through returned buffer at sample %d", i)
		}
	}
}

func TestMemoryHitAvoidsBackingGenerator(t *testing.T) {
	backing := &countingGenerator{inner: newTestEntity(t, Sine)}
	mem := NewHashMemory(backing)

	mem.Render(440, 0.2, 0.3, 44100)
	mem.Render(440, 0.2, 0.9, 44100) // same key, different amplitude
	mem.Render(440, 0.2, 0.3, 44100)
	if backing.calls != 1 {
		t.Fatalf("backing generator called %d times, want 1", backing.calls)
	}

	mem.Render(493.88, 0.2, 0.3, 44100)
	if backing.calls != 2 {
		t.Fatalf("backing generator called %d times after new key, want 2", backing.calls)
	}
}

func TestMemoryConcurrentRenders(t *testing.T) {
	mem := NewTreeMemory(newTestEntity(t, Sawtooth))

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				f := 220.0 + float64(i%5)*110.0
				out := mem.Render(f, 0.05, 0.5, 44100)
				if len(out) != 2205 {
					t.Errorf("worker %d: unexpected length %d", w, len(out))
					return
				}
			}
		}(w)
	}
	wg.Wait()
}

type countingGenerator struct {
	inner Generator
	calls int
}

func (c *countingGenerator) Render(frequency, totalTime, amplitude, sampleRate float64) []float64 {
	c.calls++
	return c.inner.Render(frequency, totalTime, amplitude, sampleRate)
}
