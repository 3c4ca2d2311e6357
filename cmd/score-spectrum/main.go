package main

import (
	"flag"
	"fmt"
	"math"
	"math/cmplx"
	"os"
	"path/filepath"
	"sort"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/cwbudde/algo-score/internal/wavutil"
	"github.com/cwbudde/algo-score/score"
	"github.com/cwbudde/algo-score/synth"
)

// Compares the approximate rendering strategies against the exact
// generator for a single note, in both the time and frequency domain.
func main() {
	pitch := flag.String("pitch", "A4", "Scientific pitch name, e.g. A4 or C+5")
	duration := flag.Float64("duration", 2.0, "Note duration in seconds")
	sampleRate := flag.Int("sample-rate", 44100, "Sample rate in Hz")
	waveform := flag.String("waveform", "sawtooth", "Waveform: sine, triangle, square, sawtooth")
	greed := flag.Int("greed", 5, "Greed for the linear strategy")
	reference := flag.String("reference", "", "Reference WAV to report alongside the strategies (optional)")
	dumpDir := flag.String("dump", "", "Directory to write each strategy's render as a mono WAV (optional)")
	flag.Parse()

	frequency := score.ParsePitch(*pitch)
	if frequency == 0 {
		fmt.Fprintf(os.Stderr, "Error: %q is not a pitch name\n", *pitch)
		os.Exit(1)
	}

	wf, err := synth.ParseWaveform(*waveform)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	const attack, decay, sustain, release = 0.1, 0.2, 0.7, 0.2
	exact, err := synth.NewEntity(wf, attack, decay, sustain, release)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	linear, err := synth.NewLinearGreedy(wf, attack, decay, sustain, release, *greed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	periodic, err := synth.NewPeriodicGreedy(wf, attack, decay, sustain, release)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sr := float64(*sampleRate)
	ref := exact.Render(frequency, *duration, 1.0, sr)
	fmt.Printf("Note %s (%.2f Hz), %.2fs at %d Hz, %s waveform\n\n",
		*pitch, frequency, *duration, *sampleRate, *waveform)

	fftSize := 4096
	plan, err := algofft.NewPlanReal64(fftSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fft plan: %v\n", err)
		os.Exit(1)
	}

	hop := fftSize / 2
	hann := make([]float64, fftSize)
	for i := range hann {
		hann[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(fftSize-1))
	}
	spec := make([]complex128, fftSize/2+1)
	buf := make([]float64, fftSize)

	// Average hann-windowed STFT frames across the whole signal and
	// return per-bin magnitudes.
	magnitudeSpectrum := func(signal []float64) []float64 {
		avg := make([]float64, fftSize/2)
		frames := 0

		for pos := 0; pos+fftSize <= len(signal); pos += hop {
			for i := 0; i < fftSize; i++ {
				buf[i] = signal[pos+i] * hann[i]
			}
			plan.Forward(spec, buf)
			for k := 1; k < len(avg); k++ {
				avg[k] += cmplx.Abs(spec[k])
			}
			frames++
		}
		if frames == 0 {
			for i := range buf {
				buf[i] = 0
			}
			for i := 0; i < len(signal) && i < fftSize; i++ {
				buf[i] = signal[i] * hann[i]
			}
			plan.Forward(spec, buf)
			for k := 1; k < len(avg); k++ {
				avg[k] = cmplx.Abs(spec[k])
			}
			frames = 1
		}

		scale := 1.0 / float64(frames)
		for k := range avg {
			avg[k] *= scale
		}
		return avg
	}

	if *reference != "" {
		refWav, refRate, err := wavutil.ReadWAVMono(*reference)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reference: %v\n", err)
			os.Exit(1)
		}
		refWav, err = wavutil.ResampleIfNeeded(refWav, refRate, *sampleRate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reference resample: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Reference %s: %d frames (%.2fs after resampling from %d Hz)\n\n",
			*reference, len(refWav), float64(len(refWav))/sr, refRate)
		reportPeaks("reference", magnitudeSpectrum(refWav), sr, fftSize)
	}

	dump := func(name string, samples []float64) {
		if *dumpDir == "" {
			return
		}
		data := make([]float32, len(samples))
		for i, v := range samples {
			data[i] = float32(v)
		}
		path := filepath.Join(*dumpDir, name+".wav")
		if err := wavutil.WriteMonoWAV(path, data, *sampleRate); err != nil {
			fmt.Fprintf(os.Stderr, "dump %s: %v\n", path, err)
			os.Exit(1)
		}
	}

	refSpec := magnitudeSpectrum(ref)
	reportPeaks("exact", refSpec, sr, fftSize)
	dump("exact", ref)

	candidates := []struct {
		tag  string
		name string
		gen  synth.Generator
	}{
		{"linear", fmt.Sprintf("linear (greed %d)", *greed), linear},
		{"periodic", "periodic", periodic},
	}
	for _, c := range candidates {
		cand := c.gen.Render(frequency, *duration, 1.0, sr)
		candSpec := magnitudeSpectrum(cand)
		reportPeaks(c.name, candSpec, sr, fftSize)
		reportDeviation(c.name, ref, cand, refSpec, candSpec)
		dump(c.tag, cand)
	}
}

func reportPeaks(name string, spec []float64, sampleRate float64, fftSize int) {
	type peak struct {
		bin int
		mag float64
	}
	var peaks []peak
	for k := 2; k < len(spec)-1; k++ {
		if spec[k] > spec[k-1] && spec[k] >= spec[k+1] {
			peaks = append(peaks, peak{bin: k, mag: spec[k]})
		}
	}
	sort.Slice(peaks, func(i, j int) bool { return peaks[i].mag > peaks[j].mag })
	if len(peaks) > 5 {
		peaks = peaks[:5]
	}

	binHz := sampleRate / float64(fftSize)
	fmt.Printf("--- %s: strongest partials ---\n", name)
	for _, p := range peaks {
		fmt.Printf("  %8.1f Hz  %6.1f dB\n",
			float64(p.bin)*binHz, 20*math.Log10(math.Max(p.mag, 1e-12)))
	}
	fmt.Println()
}

func reportDeviation(name string, ref, cand []float64, refSpec, candSpec []float64) {
	n := len(ref)
	if len(cand) < n {
		n = len(cand)
	}
	maxDev := 0.0
	for i := 0; i < n; i++ {
		if d := math.Abs(ref[i] - cand[i]); d > maxDev {
			maxDev = d
		}
	}

	var sumSq float64
	cnt := 0
	for k := 1; k < len(refSpec) && k < len(candSpec); k++ {
		rDB := 20 * math.Log10(math.Max(refSpec[k], 1e-12))
		cDB := 20 * math.Log10(math.Max(candSpec[k], 1e-12))
		d := rDB - cDB
		sumSq += d * d
		cnt++
	}
	rmseDB := math.Sqrt(sumSq / float64(cnt))

	marker := ""
	if rmseDB > 15 {
		marker = " <<<"
	}
	fmt.Printf("  %s vs exact: max sample deviation %.4f, spectral RMSE %.1f dB%s\n\n",
		name, maxDev, rmseDB, marker)
}
