package uniquify

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"testing"
)

// stubRunner is a test double for the Runner interface. handle decides the
// behavior per invocation; every call is recorded.
type stubRunner struct {
	handle func(bin string, args []string) ([]byte, error)
	calls  [][]string
}

func (s *stubRunner) Run(_ context.Context, bin string, args ...string) ([]byte, error) {
	s.calls = append(s.calls, append([]string{bin}, args...))
	if s.handle == nil {
		return nil, nil
	}
	return s.handle(bin, args)
}

// probeJSON fabricates ffprobe output for a video asset.
func probeJSON(w, h int, duration float64, audio bool) []byte {
	streams := fmt.Sprintf(`{"codec_type":"video","width":%d,"height":%d}`, w, h)
	if audio {
		streams += `,{"codec_type":"audio"}`
	}
	return []byte(fmt.Sprintf(
		`{"format":{"duration":"%.3f"},"streams":[%s]}`, duration, streams,
	))
}

// writeFramePNG encodes img into the output path named by the last arg of an
// ffmpeg frame-extract invocation.
func writeFramePNG(t *testing.T, img image.Image, path string) {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

// hasArgPair reports whether args contains the flag immediately followed by
// the value.
func hasArgPair(args []string, flag, value string) bool {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}

func hasArg(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}
