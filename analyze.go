package uniquify

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
)

// maxKeyframeSamples caps how many time points the analyzer compares.
const maxKeyframeSamples = 10

// UniquenessReport aggregates the measured perceptual distance between an
// original and its processed counterpart.
type UniquenessReport struct {
	// PhashDiffPercent is the mean per-keyframe perceptual-hash difference,
	// in [0,100]. Defined as 0 when no keyframe sample succeeds.
	PhashDiffPercent float64

	// AudioDissimilarityPercent is nil when either asset has no audio track
	// or the audio comparison failed.
	AudioDissimilarityPercent *float64

	// Risk is the label derived from PhashDiffPercent.
	Risk string

	// SamplesCompared counts the keyframe comparisons that succeeded.
	SamplesCompared int
}

// AnalyzeVideoUniqueness compares the processed video against the original:
// up to 10 evenly spaced keyframes are hashed and averaged, and when both
// assets carry audio their spectral dissimilarity is measured too. A failed
// keyframe sample is skipped silently; the audio branch degrades to an
// absent score. Probe failures on either asset are fatal.
func (cfg *Config) AnalyzeVideoUniqueness(ctx context.Context, originalPath, processedPath string) (*UniquenessReport, error) {
	cfg.defaults()
	cfg.progress("analyze")

	orig, err := cfg.ProbeAsset(ctx, originalPath)
	if err != nil {
		return nil, err
	}
	proc, err := cfg.ProbeAsset(ctx, processedPath)
	if err != nil {
		return nil, err
	}

	work, err := cfg.newWorkDir()
	if err != nil {
		return nil, err
	}
	defer work.remove()

	duration := orig.Duration
	if proc.Duration < duration {
		duration = proc.Duration
	}

	var diffs []float64
	for i, t := range sampleTimes(duration) {
		frameA, err := cfg.extractFrame(ctx, originalPath, t, work.file(fmt.Sprintf("orig-%02d.png", i)))
		if err != nil {
			slog.Debug("uniquify: keyframe skipped", "time", t, "error", err)
			continue
		}
		frameB, err := cfg.extractFrame(ctx, processedPath, t, work.file(fmt.Sprintf("proc-%02d.png", i)))
		if err != nil {
			slog.Debug("uniquify: keyframe skipped", "time", t, "error", err)
			continue
		}
		diff, err := hashDifference(frameA, frameB)
		if err != nil {
			slog.Debug("uniquify: keyframe skipped", "time", t, "error", err)
			continue
		}
		diffs = append(diffs, diff)
	}

	report := &UniquenessReport{
		PhashDiffPercent: mean(diffs), // 0 when every sample failed
		SamplesCompared:  len(diffs),
	}

	if orig.HasAudio && proc.HasAudio {
		if dissim, err := cfg.compareAudio(ctx, originalPath, processedPath, work); err != nil {
			slog.Debug("uniquify: audio comparison skipped", "error", err)
		} else {
			report.AudioDissimilarityPercent = &dissim
		}
	}

	report.Risk = ClassifyRisk(report.PhashDiffPercent)
	return report, nil
}

// compareAudio extracts both tracks into the work dir and measures spectral
// dissimilarity. The intermediate waveforms are removed on every path by the
// work dir's deferred cleanup.
func (cfg *Config) compareAudio(ctx context.Context, pathA, pathB string, work *workDir) (float64, error) {
	pcmA := work.file("orig-audio.raw")
	pcmB := work.file("proc-audio.raw")
	defer os.Remove(pcmA)
	defer os.Remove(pcmB)

	if err := cfg.extractAudio(ctx, pathA, pcmA); err != nil {
		return 0, err
	}
	if err := cfg.extractAudio(ctx, pathB, pcmB); err != nil {
		return 0, err
	}
	return audioDissimilarity(pcmA, pcmB)
}

// extractFrame grabs the frame at time t into a PNG and decodes it.
func (cfg *Config) extractFrame(ctx context.Context, videoPath string, t float64, outPath string) (image.Image, error) {
	args := []string{
		"-ss", fmt.Sprintf("%.3f", t),
		"-i", videoPath,
		"-frames:v", "1",
		"-y", outPath,
	}
	if out, err := cfg.Runner.Run(ctx, cfg.FFmpegBin, args...); err != nil {
		return nil, fmt.Errorf("extract frame at %.3fs: %w: %s", t, err, tail(out))
	}
	return decodeImageFile(outPath)
}

// sampleTimes returns min(10, int(duration)) points evenly spaced across
// [0, duration], endpoints included. Durations under one time unit yield no
// samples.
func sampleTimes(duration float64) []float64 {
	n := int(duration)
	if n > maxKeyframeSamples {
		n = maxKeyframeSamples
	}
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{0}
	}

	times := make([]float64, n)
	step := duration / float64(n-1)
	for i := range times {
		times[i] = float64(i) * step
	}
	return times
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var s float64
	for _, v := range xs {
		s += v
	}
	return s / float64(len(xs))
}
