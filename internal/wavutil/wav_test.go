package wavutil

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-score/score"
)

func TestMixPartsSumsAndPads(t *testing.T) {
	a := score.Part{{0.5, 0.25}, {0.1, 0.1}}
	b := score.Part{{0.25, 0.25}}

	mix := MixParts([]score.Part{a, b})
	if len(mix) != 2 {
		t.Fatalf("mix length = %d, want length of longest part", len(mix))
	}
	if mix[0][0] != 0.75 || mix[0][1] != 0.5 {
		t.Fatalf("first frame = %v, want summed channels", mix[0])
	}
	if mix[1][0] != 0.1 || mix[1][1] != 0.1 {
		t.Fatalf("short part must pad with silence, got %v", mix[1])
	}
}

func TestNormalize(t *testing.T) {
	part := score.Part{{0.5, -2.0}, {0.25, 1.0}}
	Normalize(part, 0.9)

	max := 0.0
	for _, s := range part {
		if v := math.Abs(s[0]); v > max {
			max = v
		}
		if v := math.Abs(s[1]); v > max {
			max = v
		}
	}
	if math.Abs(max-0.9) > 1e-12 {
		t.Fatalf("peak after normalize = %f, want 0.9", max)
	}
	// Relative levels survive the rescale.
	if math.Abs(part[0][0]/part[1][0]-2.0) > 1e-12 {
		t.Fatalf("channel ratio changed: %v", part)
	}

	silent := score.Part{{0, 0}, {0, 0}}
	Normalize(silent, 0.9)
	for _, s := range silent {
		if s[0] != 0 || s[1] != 0 {
			t.Fatalf("silence must stay silent, got %v", s)
		}
	}
}

func TestResampleIfNeededPassthrough(t *testing.T) {
	in := []float64{0.1, 0.2, 0.3}
	out, err := ResampleIfNeeded(in, 44100, 44100)
	if err != nil {
		t.Fatalf("ResampleIfNeeded: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("matching rates must not change the length: %d", len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("matching rates must pass samples through, sample %d changed", i)
		}
	}
}

func TestResampleIfNeededChangesRate(t *testing.T) {
	in := make([]float64, 4800)
	for i := range in {
		in[i] = math.Sin(2 * math.Pi * 440 * float64(i) / 48000)
	}
	out, err := ResampleIfNeeded(in, 48000, 44100)
	if err != nil {
		t.Fatalf("ResampleIfNeeded: %v", err)
	}
	if len(out) == 0 || len(out) >= len(in) {
		t.Fatalf("downsampling 48k to 44.1k gave %d samples from %d", len(out), len(in))
	}
}

func TestResamplePart(t *testing.T) {
	part := make(score.Part, 4800)
	for i := range part {
		part[i][0] = math.Sin(2 * math.Pi * 220 * float64(i) / 48000)
		part[i][1] = -part[i][0]
	}

	same, err := ResamplePart(part, 48000, 48000)
	if err != nil {
		t.Fatalf("ResamplePart: %v", err)
	}
	if len(same) != len(part) {
		t.Fatalf("matching rates must pass the part through, got %d frames", len(same))
	}

	down, err := ResamplePart(part, 48000, 44100)
	if err != nil {
		t.Fatalf("ResamplePart: %v", err)
	}
	if len(down) == 0 || len(down) >= len(part) {
		t.Fatalf("downsampled part has %d frames from %d", len(down), len(part))
	}
	// The channels were mirrored going in and must stay mirrored.
	for i, s := range down {
		if math.Abs(s[0]+s[1]) > 1e-9 {
			t.Fatalf("channels resampled inconsistently at frame %d: %v", i, s)
		}
	}
}

func TestMonoWAVRoundTrip(t *testing.T) {
	const sampleRate = 44100
	data := make([]float32, 441)
	for i := range data {
		data[i] = 0.5 * float32(math.Sin(2*math.Pi*441*float64(i)/sampleRate))
	}

	path := filepath.Join(t.TempDir(), "note.wav")
	if err := WriteMonoWAV(path, data, sampleRate); err != nil {
		t.Fatalf("WriteMonoWAV: %v", err)
	}

	back, rate, err := ReadWAVMono(path)
	if err != nil {
		t.Fatalf("ReadWAVMono: %v", err)
	}
	if rate != sampleRate {
		t.Fatalf("sample rate = %d, want %d", rate, sampleRate)
	}
	if len(back) != len(data) {
		t.Fatalf("frame count = %d, want %d", len(back), len(data))
	}

	// The decoder hands back raw 16-bit integer samples, so a 0.5 peak
	// comes back in the neighborhood of 0.5 * 32768.
	peak := 0.0
	for _, v := range back {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak < 0.35*32768 || peak > 0.65*32768 {
		t.Fatalf("peak after round trip = %f, want about %f", peak, 0.5*32768)
	}
}
