package uniquify

import (
	"math/rand"
	"testing"
)

func TestTierForLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level int
		want  Tier
	}{
		{1, TierLow},
		{2, TierMedium},
		{3, TierHigh},
		// Levels 4 and 5 are intentionally indistinguishable from 3.
		{4, TierHigh},
		{5, TierHigh},
		// Anything that is not 1 or 2 lands on high.
		{0, TierHigh},
		{-1, TierHigh},
		{99, TierHigh},
	}

	for _, tc := range tests {
		if got := tierForLevel(tc.level); got != tc.want {
			t.Errorf("tierForLevel(%d) = %s, want %s", tc.level, got, tc.want)
		}
	}
}

func TestImageProfileRanges(t *testing.T) {
	t.Parallel()

	cfg := &Config{Rand: rand.New(rand.NewSource(1))}

	tests := []struct {
		level            int
		tier             Tier
		cropLo, cropHi   float64
		scaleLo, scaleHi float64
		noise            float64
		hue, sat, light  float64
	}{
		{1, TierLow, 0.02, 0.03, 0.995, 1.005, 0.002, 0.5, 1, 1.5},
		{2, TierMedium, 0.02, 0.04, 0.985, 1.015, 0.003, 0.8, 1.5, 2.5},
		{3, TierHigh, 0.03, 0.06, 0.97, 1.03, 0.004, 1.0, 2.0, 3.0},
		{5, TierHigh, 0.03, 0.06, 0.97, 1.03, 0.004, 1.0, 2.0, 3.0},
	}

	for _, tc := range tests {
		// Sampling is random: check the bounds hold over many draws.
		for i := 0; i < 200; i++ {
			p := cfg.ImageProfileFor(tc.level)

			if p.Tier != tc.tier {
				t.Fatalf("level %d: tier = %s, want %s", tc.level, p.Tier, tc.tier)
			}
			if p.CropFraction < tc.cropLo || p.CropFraction > tc.cropHi {
				t.Fatalf("level %d: crop %v outside [%v,%v]", tc.level, p.CropFraction, tc.cropLo, tc.cropHi)
			}
			if p.ScaleFactor < tc.scaleLo || p.ScaleFactor > tc.scaleHi {
				t.Fatalf("level %d: scale %v outside [%v,%v]", tc.level, p.ScaleFactor, tc.scaleLo, tc.scaleHi)
			}
			if p.NoiseOpacity != tc.noise {
				t.Fatalf("level %d: noise = %v, want %v", tc.level, p.NoiseOpacity, tc.noise)
			}
			if p.HueShift < -tc.hue || p.HueShift > tc.hue {
				t.Fatalf("level %d: hue shift %v outside ±%v", tc.level, p.HueShift, tc.hue)
			}
			if p.SatShift < -tc.sat || p.SatShift > tc.sat {
				t.Fatalf("level %d: sat shift %v outside ±%v", tc.level, p.SatShift, tc.sat)
			}
			if p.LightShift < -tc.light || p.LightShift > tc.light {
				t.Fatalf("level %d: light shift %v outside ±%v", tc.level, p.LightShift, tc.light)
			}
		}
	}
}

func TestImageProfileFreshPerCall(t *testing.T) {
	t.Parallel()

	cfg := &Config{Rand: rand.New(rand.NewSource(42))}

	a := cfg.ImageProfileFor(3)
	b := cfg.ImageProfileFor(3)
	if a == b {
		t.Error("two consecutive profiles are identical; sampling should be fresh per call")
	}
}

func TestVideoProfileFixedPerTier(t *testing.T) {
	t.Parallel()

	cfg := &Config{Rand: rand.New(rand.NewSource(1))}

	tests := []struct {
		level    int
		zoomRate float64
		jitter   float64
		gop      int
		crf      int
	}{
		{1, 0.002, 1, 30, 22},
		{2, 0.003, 1.5, 25, 21},
		{3, 0.005, 2, 20, 20},
		{4, 0.005, 2, 20, 20},
		{5, 0.005, 2, 20, 20},
	}

	for _, tc := range tests {
		p := cfg.VideoProfileFor(tc.level)
		if p.ZoomRate != tc.zoomRate || p.Jitter != tc.jitter || p.GOPSize != tc.gop || p.CRF != tc.crf {
			t.Errorf("level %d: got %+v, want zoom=%v jitter=%v gop=%d crf=%d",
				tc.level, p, tc.zoomRate, tc.jitter, tc.gop, tc.crf)
		}
		if p.PitchRatio != 1.023 {
			t.Errorf("level %d: pitch ratio = %v, want 1.023 for every tier", tc.level, p.PitchRatio)
		}
	}
}
