package uniquify

import "math/rand"

// Tier is a discretized perturbation intensity.
type Tier int

const (
	TierLow Tier = iota + 1
	TierMedium
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	default:
		return "high"
	}
}

// tierForLevel collapses a uniqueness level into a tier. Levels 3, 4, and 5
// are indistinguishable on purpose; anything that is not 1 or 2 lands on
// high, matching the original tiering.
func tierForLevel(level int) Tier {
	switch level {
	case 1:
		return TierLow
	case 2:
		return TierMedium
	default:
		return TierHigh
	}
}

// pitchRatio is the audio pitch shift applied to every video regardless of
// tier (+2.3%).
const pitchRatio = 1.023

// ImageProfile holds the sampled still-image transform parameters for one
// invocation. Parameters are drawn independently per call — two calls with
// the same level are not expected to produce identical output.
type ImageProfile struct {
	Tier         Tier
	CropFraction float64 // fraction of each dimension removed by the crop
	ScaleFactor  float64 // centered isotropic scale
	NoiseOpacity float64 // gaussian noise blend weight
	HueShift     float64 // added to H, clipped to [0,179]
	SatShift     float64 // added to S, clipped to [0,255]
	LightShift   float64 // added to L, clipped to [0,255]
}

// VideoProfile holds the sampled video transform parameters for one
// invocation. Zoom rate, jitter, GOP, and CRF are fixed per tier.
type VideoProfile struct {
	Tier       Tier
	ZoomRate   float64 // zoom increase per output frame, capped at 1.2x
	Jitter     float64 // pixel-noise jitter magnitude
	GOPSize    int
	CRF        int
	PitchRatio float64 // always pitchRatio
}

type imageRanges struct {
	cropLo, cropHi   float64
	scaleLo, scaleHi float64
	noise            float64
	hue, sat, light  float64 // symmetric ± bounds
}

var imageTiers = map[Tier]imageRanges{
	TierLow:    {cropLo: 0.02, cropHi: 0.03, scaleLo: 0.995, scaleHi: 1.005, noise: 0.002, hue: 0.5, sat: 1, light: 1.5},
	TierMedium: {cropLo: 0.02, cropHi: 0.04, scaleLo: 0.985, scaleHi: 1.015, noise: 0.003, hue: 0.8, sat: 1.5, light: 2.5},
	TierHigh:   {cropLo: 0.03, cropHi: 0.06, scaleLo: 0.97, scaleHi: 1.03, noise: 0.004, hue: 1.0, sat: 2.0, light: 3.0},
}

var videoTiers = map[Tier]VideoProfile{
	TierLow:    {Tier: TierLow, ZoomRate: 0.002, Jitter: 1, GOPSize: 30, CRF: 22, PitchRatio: pitchRatio},
	TierMedium: {Tier: TierMedium, ZoomRate: 0.003, Jitter: 1.5, GOPSize: 25, CRF: 21, PitchRatio: pitchRatio},
	TierHigh:   {Tier: TierHigh, ZoomRate: 0.005, Jitter: 2, GOPSize: 20, CRF: 20, PitchRatio: pitchRatio},
}

// ImageProfileFor samples a fresh image transform profile for the level.
func (cfg *Config) ImageProfileFor(level int) ImageProfile {
	cfg.defaults()

	tier := tierForLevel(level)
	r := imageTiers[tier]
	rng := cfg.Rand

	return ImageProfile{
		Tier:         tier,
		CropFraction: uniform(rng, r.cropLo, r.cropHi),
		ScaleFactor:  uniform(rng, r.scaleLo, r.scaleHi),
		NoiseOpacity: r.noise,
		HueShift:     uniform(rng, -r.hue, r.hue),
		SatShift:     uniform(rng, -r.sat, r.sat),
		LightShift:   uniform(rng, -r.light, r.light),
	}
}

// VideoProfileFor returns the video transform profile for the level. Video
// parameters are fixed per tier; only the tier collapse is level-dependent.
func (cfg *Config) VideoProfileFor(level int) VideoProfile {
	cfg.defaults()
	return videoTiers[tierForLevel(level)]
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
