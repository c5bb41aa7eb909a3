package uniquify

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
)

// AssetInspection summarizes a single asset before processing: its probed
// geometry, a perceptual hash of the image (or of a representative frame for
// video), and any identifying metadata the file carries.
type AssetInspection struct {
	Asset MediaAsset

	// Phash is the printable perceptual hash of the image or of the frame
	// at FrameTime.
	Phash string

	// FrameTime is the video timestamp the hash was taken at: min(3, d/2),
	// the first seconds or the middle of short clips. Zero for images.
	FrameTime float64

	// Metadata is nil when the asset embeds no identifying metadata.
	Metadata *AssetMetadata
}

// InspectAsset probes the asset and fingerprints it. For video, the hash is
// computed on a single extracted frame; for images, on the full image plus
// an identifying-metadata summary.
func (cfg *Config) InspectAsset(ctx context.Context, path string) (*AssetInspection, error) {
	cfg.defaults()

	asset, err := cfg.ProbeAsset(ctx, path)
	if err != nil {
		return nil, err
	}

	insp := &AssetInspection{Asset: *asset}

	switch asset.Kind {
	case KindImage:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		if insp.Phash, err = phashString(img); err != nil {
			return nil, err
		}
		insp.Metadata = ExtractAssetMetadata(data)

	case KindVideo:
		t := asset.Duration / 2
		if t > 3 {
			t = 3
		}
		insp.FrameTime = t

		work, err := cfg.newWorkDir()
		if err != nil {
			return nil, err
		}
		defer work.remove()

		frame, err := cfg.extractFrame(ctx, path, t, work.file("inspect.png"))
		if err != nil {
			return nil, err
		}
		if insp.Phash, err = phashString(frame); err != nil {
			return nil, err
		}
	}

	return insp, nil
}
