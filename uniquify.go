// Package uniquify perturbs image, video, and audio assets with small,
// visually imperceptible geometric, color, noise, and encoding changes, then
// measures how far the perturbation moved the asset's perceptual
// fingerprint. Perturbation intensity is controlled by a discrete uniqueness
// level collapsed into three tiers (low/medium/high).
package uniquify

import (
	"math/rand"
	"net/http"
	"os"
	"time"
)

// Config holds all dependencies injected by the consumer. The zero value is
// usable: defaults() fills every unset field on first use.
type Config struct {
	FFmpegBin  string // path to ffmpeg (default: "ffmpeg")
	FFprobeBin string // path to ffprobe (default: "ffprobe")

	// WorkDir is the parent directory for per-job working directories.
	// Every job gets its own uuid-named subdirectory underneath it, removed
	// on every exit path. Default: os.TempDir().
	WorkDir string

	// Rand is the pseudorandom source for parameter sampling. Inject a
	// seeded source to make transform profiles reproducible in tests.
	// Default: time-seeded. Not safe for concurrent jobs sharing one Config.
	Rand *rand.Rand

	// Runner executes external tools (ffmpeg, ffprobe). Default: os/exec.
	Runner Runner

	StealthClient *http.Client // optional: TLS-fingerprinted client for remote inputs
	HTTPClient    *http.Client // optional: default http client (nil = http.DefaultClient)
	UserAgent     string       // default: "Mozilla/5.0 (compatible; go-uniquify/1.0)"

	// OnProgress, when set, receives coarse stage names ("probe", "encode",
	// "analyze") while a pipeline runs. Optional metrics/logging hook.
	OnProgress func(stage string)
}

// defaults fills zero-value fields with sensible defaults.
func (cfg *Config) defaults() {
	if cfg.FFmpegBin == "" {
		cfg.FFmpegBin = "ffmpeg"
	}
	if cfg.FFprobeBin == "" {
		cfg.FFprobeBin = "ffprobe"
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = os.TempDir()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Runner == nil {
		cfg.Runner = execRunner{}
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0 (compatible; go-uniquify/1.0)"
	}
}

// progress reports a stage to the optional OnProgress callback.
func (cfg *Config) progress(stage string) {
	if cfg.OnProgress != nil {
		cfg.OnProgress(stage)
	}
}
