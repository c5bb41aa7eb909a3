package uniquify

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestGeneratePreviewImage(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	dir := t.TempDir()
	in := writePNG(t, dir, "in.png", gradientImage(120, 90))
	outDir := t.TempDir()

	path, err := cfg.GeneratePreview(context.Background(), in, outDir, 2)
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(outDir, "preview.png") {
		t.Errorf("preview path = %q", path)
	}

	img, err := decodeImageFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 90 {
		t.Errorf("preview is %dx%d, want 120x90", b.Dx(), b.Dy())
	}
}

func TestGeneratePreviewVideoCutsThreeSeconds(t *testing.T) {
	t.Parallel()

	var cutArgs []string
	runner := &stubRunner{
		handle: func(bin string, args []string) ([]byte, error) {
			switch {
			case hasArg(args, "-show_streams"):
				return probeJSON(640, 360, 12, true), nil
			case hasArg(args, "-c:v"):
				return nil, nil
			case hasArgPair(args, "-c", "copy"):
				cutArgs = args
				return nil, nil
			default:
				return nil, errors.New("unexpected invocation")
			}
		},
	}
	cfg := &Config{Runner: runner, WorkDir: t.TempDir()}
	outDir := t.TempDir()

	path, err := cfg.GeneratePreview(context.Background(), "clip.mp4", outDir, 3)
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(outDir, "preview.mp4") {
		t.Errorf("preview path = %q", path)
	}
	if !hasArgPair(cutArgs, "-t", "3") {
		t.Errorf("cut args missing -t 3: %v", cutArgs)
	}
	if !hasArgPair(cutArgs, "-y", path) {
		t.Errorf("cut args do not target %q: %v", path, cutArgs)
	}
}

func TestGeneratePreviewUnknownKind(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	if _, err := cfg.GeneratePreview(context.Background(), "song.mp3", t.TempDir(), 1); err == nil {
		t.Error("unknown kind: want error, got nil")
	}
}

func TestGeneratePreviewLeavesNoIntermediates(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	dir := t.TempDir()
	in := writePNG(t, dir, "in.png", solidImage(64, 64, color.RGBA{10, 120, 40, 255}))

	if _, err := cfg.GeneratePreview(context.Background(), in, t.TempDir(), 1); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(cfg.WorkDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("work dir not cleaned up: %v", entries)
	}
}
