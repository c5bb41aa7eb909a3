package uniquify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// previewSeconds is how much of a processed video the preview keeps.
const previewSeconds = 3

// GeneratePreview runs the transform at the given level and writes a short
// preview into outputDir: the full transformed image, or the first three
// seconds of the transformed video. The caller owns the returned file; all
// intermediates are cleaned up on every path.
func (cfg *Config) GeneratePreview(ctx context.Context, inputPath, outputDir string, level int) (string, error) {
	cfg.defaults()

	work, err := cfg.newWorkDir()
	if err != nil {
		return "", err
	}
	defer work.remove()

	switch kind := KindForPath(inputPath); kind {
	case KindImage:
		ext := strings.ToLower(filepath.Ext(inputPath))
		if ext == ".webp" {
			ext = ".png" // no webp encoder
		}
		preview := filepath.Join(outputDir, "preview"+ext)
		if err := cfg.ProcessImage(ctx, inputPath, preview, level); err != nil {
			return "", err
		}
		return preview, nil

	case KindVideo:
		full := work.file("preview-full.mp4")
		if err := cfg.ProcessVideo(ctx, inputPath, full, level); err != nil {
			return "", err
		}

		preview := filepath.Join(outputDir, "preview.mp4")
		args := []string{
			"-i", full,
			"-t", fmt.Sprintf("%d", previewSeconds),
			"-c", "copy",
			"-y", preview,
		}
		if out, err := cfg.Runner.Run(ctx, cfg.FFmpegBin, args...); err != nil {
			os.Remove(preview)
			return "", fmt.Errorf("cut preview: %w: %s", err, tail(out))
		}
		return preview, nil

	default:
		return "", fmt.Errorf("unrecognized media kind for %s", inputPath)
	}
}
