package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/algo-score/direction"
	"github.com/cwbudde/algo-score/internal/wavutil"
	"github.com/cwbudde/algo-score/preset"
	"github.com/cwbudde/algo-score/score"
	"github.com/cwbudde/algo-score/synth"
)

func main() {
	output := flag.String("output", "output.wav", "Output WAV file path")
	sampleRate := flag.Int("sample-rate", 44100, "Render sample rate in Hz")
	outputRate := flag.Int("output-rate", 0, "Output WAV sample rate in Hz (0 = same as -sample-rate)")
	presetPath := flag.String("preset", "", "Preset JSON file path (optional)")
	waveform := flag.String("waveform", "", "Waveform override: sine, triangle, square, sawtooth")
	strategy := flag.String("strategy", "", "Strategy override: exact, linear, periodic, memory")
	greed := flag.Int("greed", -1, "Greed override for the linear strategy (samples skipped between anchors)")
	tempo := flag.Float64("tempo", 96, "Tempo in beats per minute")
	sequential := flag.Bool("sequential", false, "Render voices sequentially instead of in parallel")
	flag.Parse()

	params := preset.NewDefaultParams()
	if *presetPath != "" {
		loaded, err := preset.LoadJSON(*presetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading preset %q: %v\n", *presetPath, err)
			os.Exit(1)
		}
		params = loaded
	}
	if *waveform != "" {
		params.Waveform = *waveform
	}
	if *strategy != "" {
		params.Strategy = *strategy
	}
	if *greed >= 0 {
		params.Greed = *greed
	}

	gen, err := params.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building generator: %v\n", err)
		os.Exit(1)
	}

	if *tempo <= 0 {
		fmt.Fprintf(os.Stderr, "Error: tempo must be positive, got %f\n", *tempo)
		os.Exit(1)
	}
	beat := 60.0 / *tempo

	s := demoScore(gen, beat)
	fmt.Printf("Rendering %d instruments at %d Hz (waveform: %s, strategy: %s)...\n",
		s.Len(), *sampleRate, params.Waveform, params.Strategy)

	var rendered [][]score.Part
	if *sequential {
		rendered = s.RenderAll(float64(*sampleRate))
	} else {
		rendered = s.RenderAllParallel(float64(*sampleRate))
	}

	var all []score.Part
	for _, parts := range rendered {
		all = append(all, parts...)
	}
	mix := wavutil.MixParts(all)
	wavutil.Normalize(mix, 0.89)

	fileRate := *outputRate
	if fileRate <= 0 {
		fileRate = *sampleRate
	}
	if fileRate != *sampleRate {
		converted, err := wavutil.ResamplePart(mix, *sampleRate, fileRate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resampling to %d Hz: %v\n", fileRate, err)
			os.Exit(1)
		}
		mix = converted
	}

	if err := wavutil.WriteStereoWAV(*output, mix, fileRate); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing WAV file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully wrote %s (%d frames, %.2fs)\n",
		*output, len(mix), float64(len(mix))/float64(fileRate))
}

// demoScore builds a short two-instrument chorale: a lead carrying the
// melody over a sustained bass line, with a crescendo into the cadence.
func demoScore(gen synth.Generator, beat float64) *score.Score {
	vol := direction.MF

	lead := score.NewInstrument("lead", gen, 2)
	lead.SetPan(math.Pi/8, 3*math.Pi/8)

	melody := score.NewVoice()
	for _, step := range []struct {
		pitch string
		beats float64
	}{
		{"E4", 1}, {"E4", 1}, {"F4", 1}, {"G4", 1},
		{"G4", 1}, {"F4", 1}, {"E4", 1}, {"D4", 1},
		{"C4", 1}, {"C4", 1}, {"D4", 1}, {"E4", 1},
		{"E4", 1.5}, {"D4", 0.5}, {"D4", 2},
	} {
		melody.AppendNote(score.NewNamedNote(step.pitch, step.beats*beat, vol))
	}
	lead.SetVoice(0, melody)

	alto := score.NewVoice()
	for _, step := range []struct {
		pitch string
		beats float64
	}{
		{"C4", 2}, {"D4", 2},
		{"E4", 2}, {"C4", 2},
		{"A3", 2}, {"B3", 2},
		{"C4", 2}, {"B3", 2},
	} {
		alto.AppendNote(score.NewNamedNote(step.pitch, step.beats*beat, vol))
	}
	lead.SetVoice(1, alto)

	bass := score.NewInstrument("bass", gen, 1)
	bass.SetPan(math.Pi/4, math.Pi/4)

	line := score.NewVoice()
	for _, step := range []struct {
		pitch string
		beats float64
	}{
		{"C3", 4}, {"G2", 4}, {"A2", 4}, {"G2", 4},
	} {
		line.AppendNote(score.NewNamedNote(step.pitch, step.beats*beat, vol))
	}
	bass.SetVoice(0, line)

	// Dynamics: hold mezzo-forte, swell into the cadence, settle back.
	overlay := direction.Build([]direction.Event{
		{Position: 8 * beat, Velocity: 80},
		{Ramp: direction.RampCrescendo},
		{Position: 13 * beat, Velocity: 112},
		{Ramp: direction.RampDecrescendo},
		{Position: 16 * beat, Velocity: 64},
	})

	s := score.NewScore()
	s.Add(lead, overlay)
	s.Add(bass, overlay)
	return s
}
