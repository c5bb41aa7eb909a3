// Command uniquify perturbs an image or video so its perceptual fingerprint
// drifts from the original, then measures how far it moved.
//
// Usage:
//
//	uniquify [-level N] [-config file.yaml] <input> <output>
//	uniquify -inspect <input>
//
// The input may be a local path or an http(s) URL. The level (1-5) collapses
// into three tiers; it defaults to 3 when missing or unparsable.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	uniquify "github.com/anatolykoptev/go-uniquify"
)

const defaultLevel = 3

func main() {
	var (
		levelFlag   = flag.String("level", "", "uniqueness level 1-5 (default 3)")
		configFlag  = flag.String("config", "", "optional YAML config file")
		inspectFlag = flag.Bool("inspect", false, "inspect the input asset and exit")
	)
	flag.Usage = usage
	flag.Parse()

	cfg, level := buildConfig(*configFlag, *levelFlag)
	ctx := context.Background()

	if *inspectFlag {
		if flag.NArg() < 1 {
			usage()
			os.Exit(2)
		}
		if err := inspect(ctx, cfg, flag.Arg(0)); err != nil {
			fail("inspect failed: %v", err)
		}
		return
	}

	if flag.NArg() < 2 {
		usage()
		os.Exit(2)
	}
	input, output := flag.Arg(0), flag.Arg(1)

	if err := process(ctx, cfg, input, output, level); err != nil {
		fail("processing failed: %v", err)
	}
}

func buildConfig(configPath, levelArg string) (*uniquify.Config, int) {
	cfg := &uniquify.Config{}
	level := defaultLevel

	if configPath != "" {
		fc, err := loadConfig(configPath)
		if err != nil {
			fail("%v", err)
		}
		cfg.FFmpegBin = fc.FFmpegBin
		cfg.FFprobeBin = fc.FFprobeBin
		cfg.WorkDir = fc.WorkDir
		cfg.UserAgent = fc.UserAgent
		if fc.DefaultLevel != 0 {
			level = fc.DefaultLevel
		}
	}

	if levelArg != "" {
		if n, err := strconv.Atoi(levelArg); err == nil {
			level = n
		} else {
			fmt.Printf("unparsable level %q, using %d\n", levelArg, level)
		}
	}

	cfg.OnProgress = func(stage string) { fmt.Printf("... %s\n", stage) }
	return cfg, level
}

func process(ctx context.Context, cfg *uniquify.Config, input, output string, level int) error {
	// Remote inputs are fetched next to the output first.
	if uniquify.IsRemote(input) {
		fmt.Printf("Fetching: %s\n", input)
		dir, err := os.MkdirTemp("", "uniquify-fetch-")
		if err != nil {
			return err
		}
		defer os.RemoveAll(dir)

		local, err := cfg.Fetch(ctx, input, dir, uniquify.FetchOpts{})
		if err != nil {
			return err
		}
		input = local
	}

	kind := uniquify.KindForPath(input)
	if kind == uniquify.KindUnknown {
		return fmt.Errorf("unrecognized media extension: %s", filepath.Ext(input))
	}
	if kind == uniquify.KindImage && strings.EqualFold(filepath.Ext(output), ".webp") {
		output = strings.TrimSuffix(output, filepath.Ext(output)) + ".png"
		fmt.Printf("webp output is not supported, writing %s instead\n", output)
	}

	fmt.Printf("Processing: %s\n", input)
	fmt.Printf("Output: %s\n", output)
	fmt.Printf("Level: %d\n", level)

	result := <-cfg.RunJob(ctx, uniquify.Job{
		InputPath:  input,
		OutputPath: output,
		Kind:       kind,
		Level:      level,
	})
	if result.Err != nil {
		return result.Err
	}
	fmt.Println("Processing completed!")

	return report(ctx, cfg, kind, input, result.OutputPath)
}

// report re-measures the output against the original and prints the verdict.
func report(ctx context.Context, cfg *uniquify.Config, kind uniquify.MediaKind, original, processed string) error {
	switch kind {
	case uniquify.KindImage:
		diff, err := uniquify.HashDifference(original, processed)
		if err != nil {
			return err
		}
		fmt.Printf("Phash difference: %.2f%%\n", diff)
		fmt.Printf("Risk: %s\n", uniquify.ClassifyRisk(diff))

	case uniquify.KindVideo:
		rep, err := cfg.AnalyzeVideoUniqueness(ctx, original, processed)
		if err != nil {
			return err
		}
		fmt.Printf("Keyframe phash difference: %.2f%% (%d samples)\n", rep.PhashDiffPercent, rep.SamplesCompared)
		if rep.AudioDissimilarityPercent != nil {
			fmt.Printf("Audio dissimilarity: %.2f%%\n", *rep.AudioDissimilarityPercent)
		}
		fmt.Printf("Risk: %s\n", rep.Risk)
	}
	return nil
}

func inspect(ctx context.Context, cfg *uniquify.Config, input string) error {
	insp, err := cfg.InspectAsset(ctx, input)
	if err != nil {
		return err
	}

	a := insp.Asset
	fmt.Printf("Kind: %s\n", a.Kind)
	fmt.Printf("Dimensions: %dx%d\n", a.Width, a.Height)
	if a.Kind == uniquify.KindVideo {
		fmt.Printf("Duration: %.2fs (audio: %v)\n", a.Duration, a.HasAudio)
		fmt.Printf("Perceptual hash at %.1fs: %s\n", insp.FrameTime, insp.Phash)
	} else {
		fmt.Printf("Perceptual hash: %s\n", insp.Phash)
	}
	if m := insp.Metadata; !m.IsEmpty() {
		fmt.Println("Identifying metadata present:")
		printMeta("camera", strings.TrimSpace(m.CameraMake+" "+m.CameraModel))
		printMeta("software", m.Software)
		printMeta("created", m.CreateDate)
		printMeta("artist", m.Artist)
		printMeta("creator", m.Creator)
		printMeta("copyright", m.Copyright)
		if m.HasGPS {
			fmt.Println("  gps: coordinates embedded")
		}
	}
	return nil
}

func printMeta(name, value string) {
	if value != "" {
		fmt.Printf("  %s: %s\n", name, value)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: uniquify [-level N] [-config file.yaml] <input> <output>\n")
	fmt.Fprintf(os.Stderr, "       uniquify -inspect <input>\n")
	flag.PrintDefaults()
}

func fail(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "[-] "+format+"\n", a...)
	os.Exit(1)
}
