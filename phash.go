package uniquify

import (
	"fmt"
	"image"

	"github.com/corona10/goimagehash"
)

// phashBits is the bit length of the 8x8 DCT perceptual hash.
const phashBits = 64

// HashDifference computes the normalized perceptual-hash difference between
// the two images, as a percentage in [0,100]. Both inputs must be valid
// images; any read or decode failure propagates to the caller.
func HashDifference(pathA, pathB string) (float64, error) {
	imgA, err := decodeImageFile(pathA)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", pathA, err)
	}
	imgB, err := decodeImageFile(pathB)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", pathB, err)
	}
	return hashDifference(imgA, imgB)
}

// hashDifference is the in-memory comparison used both standalone and per
// keyframe inside the video analyzer.
func hashDifference(imgA, imgB image.Image) (float64, error) {
	hashA, err := goimagehash.PerceptionHash(imgA)
	if err != nil {
		return 0, fmt.Errorf("hash image: %w", err)
	}
	hashB, err := goimagehash.PerceptionHash(imgB)
	if err != nil {
		return 0, fmt.Errorf("hash image: %w", err)
	}

	// Distance errors only on mismatched hash kinds, which is a programming
	// error here since both sides use the same algorithm.
	dist, err := hashA.Distance(hashB)
	if err != nil {
		return 0, fmt.Errorf("hash distance: %w", err)
	}

	return clampRange(float64(dist)/phashBits*100, 0, 100), nil
}

// phashString returns the printable perceptual hash of an image, used by
// asset inspection.
func phashString(img image.Image) (string, error) {
	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return "", err
	}
	return hash.ToString(), nil
}
