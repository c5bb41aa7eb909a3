package uniquify

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// MediaKind classifies an asset by its container.
type MediaKind string

const (
	KindImage   MediaKind = "image"
	KindVideo   MediaKind = "video"
	KindUnknown MediaKind = "unknown"
)

// KindForPath classifies a path by filename extension, case-insensitive.
// Recognized images: jpg/jpeg/png/webp. Recognized videos:
// mp4/mov/avi/mkv/webm.
func KindForPath(path string) MediaKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".webp":
		return KindImage
	case ".mp4", ".mov", ".avi", ".mkv", ".webm":
		return KindVideo
	default:
		return KindUnknown
	}
}

// MediaAsset describes a probed input. Read-only once probed.
type MediaAsset struct {
	Path     string
	Kind     MediaKind
	Width    int
	Height   int
	Duration float64 // seconds; zero for images
	HasAudio bool
}

// ProbeAsset inspects the file at path: image dimensions come from the
// decoder, video geometry/duration/streams from ffprobe. Probe failures
// propagate to the caller.
func (cfg *Config) ProbeAsset(ctx context.Context, path string) (*MediaAsset, error) {
	cfg.defaults()
	cfg.progress("probe")

	switch kind := KindForPath(path); kind {
	case KindImage:
		return probeImage(path)
	case KindVideo:
		return cfg.probeVideo(ctx, path)
	default:
		return nil, fmt.Errorf("unrecognized media extension: %s", filepath.Ext(path))
	}
}

func probeImage(path string) (*MediaAsset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	imgCfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decode image config: %w", err)
	}

	return &MediaAsset{
		Path:   path,
		Kind:   KindImage,
		Width:  imgCfg.Width,
		Height: imgCfg.Height,
	}, nil
}

func (cfg *Config) probeVideo(ctx context.Context, path string) (*MediaAsset, error) {
	args := []string{"-v", "error", "-show_format", "-show_streams", "-of", "json", path}
	out, err := cfg.Runner.Run(ctx, cfg.FFprobeBin, args...)
	if err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var ff struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
		Streams []struct {
			CodecType string `json:"codec_type"`
			Width     int    `json:"width"`
			Height    int    `json:"height"`
		} `json:"streams"`
	}
	if err := json.Unmarshal(out, &ff); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}

	asset := &MediaAsset{
		Path:     path,
		Kind:     KindVideo,
		Duration: parseFloat(ff.Format.Duration),
	}
	for _, s := range ff.Streams {
		switch s.CodecType {
		case "video":
			if asset.Width == 0 {
				asset.Width = s.Width
				asset.Height = s.Height
			}
		case "audio":
			asset.HasAudio = true
		}
	}
	if asset.Width == 0 {
		return nil, fmt.Errorf("no video stream in %s", path)
	}
	return asset, nil
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
