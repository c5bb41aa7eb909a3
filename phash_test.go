package uniquify

import (
	"image/color"
	"path/filepath"
	"testing"
)

func TestHashDifferenceIdenticalImage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	img := solidImage(120, 90, color.RGBA{40, 90, 160, 255})
	path := writePNG(t, dir, "x.png", img)

	diff, err := HashDifference(path, path)
	if err != nil {
		t.Fatal(err)
	}
	if diff != 0 {
		t.Errorf("HashDifference(x, x) = %v, want 0", diff)
	}
}

func TestHashDifferenceRange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", gradientImage(64, 64))
	b := writePNG(t, dir, "b.png", solidImage(64, 64, color.White))

	diff, err := HashDifference(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if diff < 0 || diff > 100 {
		t.Errorf("HashDifference = %v, want within [0,100]", diff)
	}
}

func TestHashDifferenceFailsLoud(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ok := writePNG(t, dir, "ok.png", solidImage(32, 32, color.Black))
	missing := filepath.Join(dir, "missing.png")

	if _, err := HashDifference(missing, ok); err == nil {
		t.Error("missing first input: want error, got nil")
	}
	if _, err := HashDifference(ok, missing); err == nil {
		t.Error("missing second input: want error, got nil")
	}
}
