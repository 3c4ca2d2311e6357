package wavutil

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-score/score"
)

// MixParts sums stereo parts sample by sample into one part as long as
// the longest input. Summation can exceed [-1, 1]; callers normalize
// before writing.
func MixParts(parts []score.Part) score.Part {
	longest := 0
	for _, p := range parts {
		if len(p) > longest {
			longest = len(p)
		}
	}
	mix := make(score.Part, longest)
	for _, p := range parts {
		for i, s := range p {
			mix[i][0] += s[0]
			mix[i][1] += s[1]
		}
	}
	return mix
}

// Normalize scales the part in place so its loudest sample sits at the
// given peak. A silent part is returned unchanged.
func Normalize(part score.Part, peak float64) {
	max := 0.0
	for _, s := range part {
		if v := math.Abs(s[0]); v > max {
			max = v
		}
		if v := math.Abs(s[1]); v > max {
			max = v
		}
	}
	if max == 0 {
		return
	}
	gain := peak / max
	for i := range part {
		part[i][0] *= gain
		part[i][1] *= gain
	}
}

// WriteStereoWAV writes a stereo part as a 16-bit PCM WAV file.
func WriteStereoWAV(path string, part score.Part, sampleRate int) error {
	data := make([]float32, len(part)*2)
	for i, s := range part {
		data[i*2] = float32(s[0])
		data[i*2+1] = float32(s[1])
	}
	return WriteStereoInterleavedWAV(path, data, sampleRate)
}

// WriteStereoInterleavedWAV writes interleaved stereo float samples as
// a 16-bit PCM WAV file, creating parent directories as needed.
func WriteStereoInterleavedWAV(path string, samples []float32, sampleRate int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := wav.NewEncoder(f, sampleRate, 16, 2, 1)
	defer enc.Close()

	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 2,
		},
		Data:           samples,
		SourceBitDepth: 16,
	}
	return enc.Write(buf)
}

// WriteMonoWAV writes mono float samples as a 16-bit PCM WAV file.
func WriteMonoWAV(path string, data []float32, sampleRate int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	defer enc.Close()

	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	return enc.Write(buf)
}

// ReadWAVMono reads a WAV file and folds all channels down to one,
// returning the samples and the file's sample rate.
func ReadWAVMono(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("invalid wav buffer: %s", path)
	}
	ch := buf.Format.NumChannels
	frames := len(buf.Data) / ch
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < ch; c++ {
			sum += float64(buf.Data[i*ch+c])
		}
		out[i] = sum / float64(ch)
	}
	return out, buf.Format.SampleRate, nil
}

// ResampleIfNeeded converts samples between rates, passing the input
// through untouched when the rates already match.
func ResampleIfNeeded(in []float64, fromRate int, toRate int) ([]float64, error) {
	if fromRate == toRate {
		return in, nil
	}
	r, err := dspresample.NewForRates(
		float64(fromRate),
		float64(toRate),
		dspresample.WithQuality(dspresample.QualityBest),
	)
	if err != nil {
		return nil, err
	}
	return r.Process(in), nil
}

// ResamplePart converts a stereo part between rates channel by channel.
func ResamplePart(part score.Part, fromRate int, toRate int) (score.Part, error) {
	if fromRate == toRate {
		return part, nil
	}
	left := make([]float64, len(part))
	right := make([]float64, len(part))
	for i, s := range part {
		left[i] = s[0]
		right[i] = s[1]
	}
	left, err := ResampleIfNeeded(left, fromRate, toRate)
	if err != nil {
		return nil, err
	}
	right, err = ResampleIfNeeded(right, fromRate, toRate)
	if err != nil {
		return nil, err
	}
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	out := make(score.Part, n)
	for i := 0; i < n; i++ {
		out[i][0] = left[i]
		out[i][1] = right[i]
	}
	return out, nil
}
