package uniquify

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	_ "golang.org/x/image/webp"
)

// jpegQuality matches the quality the original encoder defaulted to.
const jpegQuality = 95

// ProcessImage applies the uniqueness transform chain to the image at
// inputPath and writes the result to outputPath. The source file is never
// mutated and the output keeps the source dimensions. The transform order is
// fixed: random crop → resize back → centered scale → additive noise → HLS
// color shift. Fails loud: unreadable input, unsupported format, and encode
// errors propagate to the caller.
func (cfg *Config) ProcessImage(ctx context.Context, inputPath, outputPath string, level int) error {
	cfg.defaults()

	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := decodeImageFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input image: %w", err)
	}

	profile := cfg.ImageProfileFor(level)
	slog.Debug("uniquify: image profile",
		"tier", profile.Tier.String(),
		"crop", profile.CropFraction,
		"scale", profile.ScaleFactor,
	)

	img := toRGBA(src)
	img = cfg.randomCrop(img, profile.CropFraction)
	img = scaleCentered(img, profile.ScaleFactor)
	cfg.addNoise(img, profile.NoiseOpacity)
	applyColorShift(img, profile.HueShift, profile.LightShift, profile.SatShift)

	cfg.progress("encode")
	if err := encodeImageFile(outputPath, img); err != nil {
		return fmt.Errorf("write output image: %w", err)
	}
	return nil
}

// randomCrop removes fraction of each dimension at a uniformly sampled
// offset, then resizes the crop back to the original canvas with bilinear
// interpolation. The crop box always stays within source bounds.
func (cfg *Config) randomCrop(img *image.RGBA, fraction float64) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	cw := int(float64(w) * (1 - fraction))
	ch := int(float64(h) * (1 - fraction))
	if cw < 1 || ch < 1 {
		return img
	}

	x0 := cfg.Rand.Intn(w - cw + 1)
	y0 := cfg.Rand.Intn(h - ch + 1)
	crop := img.SubImage(image.Rect(b.Min.X+x0, b.Min.Y+y0, b.Min.X+x0+cw, b.Min.Y+y0+ch))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), crop, crop.Bounds(), xdraw.Src, nil)
	return dst
}

// scaleCentered applies a centered isotropic affine scale on the same
// canvas. Pixels newly exposed at the border stay black, the affine
// transform's default fill.
func scaleCentered(img *image.RGBA, factor float64) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	cx, cy := float64(w)/2, float64(h)/2

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	m := f64.Aff3{
		factor, 0, (1 - factor) * cx,
		0, factor, (1 - factor) * cy,
	}
	xdraw.BiLinear.Transform(dst, m, img, b, xdraw.Over, nil)
	return dst
}

// addNoise blends zero-mean gaussian noise (sigma = opacity*255) into the
// image with blend weight opacity, in place.
func (cfg *Config) addNoise(img *image.RGBA, opacity float64) {
	sigma := opacity * 255
	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		for c := 0; c < 3; c++ {
			n := cfg.Rand.NormFloat64() * sigma
			pix[i+c] = clampByte(float64(pix[i+c]) + opacity*n)
		}
	}
}

// applyColorShift converts each pixel to HLS, adds the channel deltas with
// clipping, and converts back, in place.
func applyColorShift(img *image.RGBA, dh, dl, ds float64) {
	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		h, l, s := rgbToHLS(pix[i], pix[i+1], pix[i+2])
		h, l, s = shiftHLS(h, l, s, dh, dl, ds)
		pix[i], pix[i+1], pix[i+2] = hlsToRGB(h, l, s)
	}
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// encodeImageFile writes img in the format implied by the output path's
// extension. WebP output is not supported (decode-only): callers get an
// explicit unsupported-format error.
func encodeImageFile(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
	case ".png":
		return png.Encode(f, img)
	default:
		return fmt.Errorf("unsupported output image format %q", ext)
	}
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
