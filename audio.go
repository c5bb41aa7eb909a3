package uniquify

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Audio comparison reference format and STFT geometry.
const (
	audioSampleRate = 22050 // mono reference rate for similarity extraction
	stftFrameSize   = 2048
	stftHopSize     = 512
)

// extractAudio decodes the asset's audio track to headerless 16-bit
// little-endian mono PCM at the reference rate.
func (cfg *Config) extractAudio(ctx context.Context, inputPath, pcmPath string) error {
	args := []string{
		"-i", inputPath,
		"-vn",
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", audioSampleRate),
		"-acodec", "pcm_s16le",
		"-f", "s16le",
		"-y", pcmPath,
	}
	if out, err := cfg.Runner.Run(ctx, cfg.FFmpegBin, args...); err != nil {
		return fmt.Errorf("extract audio from %s: %w: %s", inputPath, err, tail(out))
	}
	return nil
}

// audioDissimilarity compares the spectral magnitude of two raw PCM files.
// Both tracks are truncated to the shorter common sample count before the
// STFT. Returns a percentage in [0,100]; 0 means spectrally identical.
func audioDissimilarity(pcmPathA, pcmPathB string) (float64, error) {
	a, err := readPCM(pcmPathA)
	if err != nil {
		return 0, err
	}
	b, err := readPCM(pcmPathB)
	if err != nil {
		return 0, err
	}

	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n < stftFrameSize {
		return 0, fmt.Errorf("audio too short for spectral comparison: %d samples", n)
	}

	specA := spectrogram(a[:n])
	specB := spectrogram(b[:n])

	sim := cosineSimilarity(specA, specB)
	return clampRange((1-sim)*100, 0, 100), nil
}

// readPCM loads headerless s16le mono samples normalized to [-1,1).
func readPCM(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pcm: %w", err)
	}

	samples := make([]float64, len(data)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(data[2*i:]))
		samples[i] = float64(v) / 32768
	}
	return samples, nil
}

// spectrogram computes the flattened Hann-windowed STFT magnitude of the
// samples.
func spectrogram(samples []float64) []float64 {
	window := hannWindow(stftFrameSize)
	fft := fourier.NewFFT(stftFrameSize)

	binCount := stftFrameSize/2 + 1
	frames := 1 + (len(samples)-stftFrameSize)/stftHopSize

	flat := make([]float64, 0, frames*binCount)
	frame := make([]float64, stftFrameSize)

	for f := 0; f < frames; f++ {
		off := f * stftHopSize
		for i := 0; i < stftFrameSize; i++ {
			frame[i] = samples[off+i] * window[i]
		}
		for _, c := range fft.Coefficients(nil, frame) {
			flat = append(flat, math.Hypot(real(c), imag(c)))
		}
	}
	return flat
}

func hannWindow(size int) []float64 {
	w := make([]float64, size)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(size-1)))
	}
	return w
}

// cosineSimilarity returns the cosine of the angle between two equal-length
// vectors. Two all-zero vectors (pure silence on both sides) count as
// identical.
func cosineSimilarity(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		if normA == 0 && normB == 0 {
			return 1
		}
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
