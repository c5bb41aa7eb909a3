package uniquify

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
)

// Runner abstracts external tool invocation (ffmpeg, ffprobe) so tests can
// substitute a stub. Run returns the combined stdout+stderr output; a
// non-nil error means the tool exited unsuccessfully.
type Runner interface {
	Run(ctx context.Context, bin string, args ...string) ([]byte, error)
}

// execRunner is the default Runner backed by os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, bin string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	out, err := cmd.CombinedOutput()
	if err != nil {
		slog.Debug("uniquify: command failed", "bin", bin, "args", args, "error", err)
	}
	return out, err
}
