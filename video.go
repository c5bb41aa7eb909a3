package uniquify

import (
	"context"
	"fmt"
	"log/slog"
)

const audioBaseRate = 44100

// ProcessVideo re-encodes the video at inputPath with the tier's perturbation
// filter graph and writes the result to outputPath, overwriting it if
// present. The video chain composes a progressive zoom-and-pan (capped at
// 1.2x, continuously recentered) with temporal pixel noise. When the source
// has an audio stream, the audio chain shifts pitch by +2.3% and
// time-stretches by the inverse factor so duration tracks the source; a
// source without audio produces a video-only output. Probe and encode
// failures propagate uncaught.
func (cfg *Config) ProcessVideo(ctx context.Context, inputPath, outputPath string, level int) error {
	cfg.defaults()

	asset, err := cfg.ProbeAsset(ctx, inputPath)
	if err != nil {
		return err
	}
	if asset.Kind != KindVideo {
		return fmt.Errorf("%s is not a video", inputPath)
	}

	profile := cfg.VideoProfileFor(level)
	slog.Debug("uniquify: video profile",
		"tier", profile.Tier.String(),
		"zoom_rate", profile.ZoomRate,
		"crf", profile.CRF,
		"gop", profile.GOPSize,
		"has_audio", asset.HasAudio,
	)

	args := buildEncodeArgs(inputPath, outputPath, profile, asset.HasAudio)

	cfg.progress("encode")
	if out, err := cfg.Runner.Run(ctx, cfg.FFmpegBin, args...); err != nil {
		return fmt.Errorf("ffmpeg encode failed: %w: %s", err, tail(out))
	}
	return nil
}

// buildVideoFilter composes the zoom-and-pan drift with the jitter noise
// filter.
func buildVideoFilter(p VideoProfile) string {
	zoom := fmt.Sprintf(
		"zoompan=z='min(zoom+%g,1.2)':d=1:x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)'",
		p.ZoomRate,
	)
	noise := fmt.Sprintf("noise=alls=%g:allf=t+u", p.Jitter)
	return zoom + "," + noise
}

// buildAudioFilter resamples at the shifted rate, back to the base rate, and
// compensates tempo with the inverse pitch ratio.
func buildAudioFilter(p VideoProfile) string {
	return fmt.Sprintf(
		"asetrate=%.0f,aresample=%d,atempo=%.6f",
		audioBaseRate*p.PitchRatio, audioBaseRate, 1/p.PitchRatio,
	)
}

func buildEncodeArgs(inputPath, outputPath string, p VideoProfile, hasAudio bool) []string {
	args := []string{
		"-i", inputPath,
		"-vf", buildVideoFilter(p),
	}
	if hasAudio {
		args = append(args, "-af", buildAudioFilter(p))
	}
	args = append(args,
		"-c:v", "libx264",
		"-preset", "medium",
		"-crf", fmt.Sprintf("%d", p.CRF),
		"-g", fmt.Sprintf("%d", p.GOPSize),
		"-bf", "3",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		"-y", outputPath,
	)
	return args
}

// tail returns the last part of command output for error context.
func tail(out []byte) string {
	const max = 400
	if len(out) <= max {
		return string(out)
	}
	return "..." + string(out[len(out)-max:])
}
