package uniquify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Job describes one transform request.
type Job struct {
	ID         string // assigned when empty
	InputPath  string
	OutputPath string
	Kind       MediaKind // sniffed from InputPath when empty
	Level      int
}

// JobResult is the single completion value delivered for a job. A non-nil
// Err marks failure; OutputPath is empty in that case.
type JobResult struct {
	Job        Job
	OutputPath string
	Err        error
}

// workDir is a job-scoped directory for intermediate files. Every job gets
// its own uuid-named subdirectory so concurrent jobs never collide on
// intermediate filenames.
type workDir struct {
	path string
}

// newWorkDir creates a fresh job directory under cfg.WorkDir.
func (cfg *Config) newWorkDir() (*workDir, error) {
	cfg.defaults()

	path := filepath.Join(cfg.WorkDir, "uniquify-"+uuid.NewString())
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	return &workDir{path: path}, nil
}

// file returns the path of a named intermediate inside the work dir.
func (w *workDir) file(name string) string {
	return filepath.Join(w.path, name)
}

// remove deletes the work dir and everything in it. Safe to defer; removal
// happens on every exit path, success or failure.
func (w *workDir) remove() {
	if err := os.RemoveAll(w.path); err != nil {
		slog.Debug("uniquify: work dir cleanup failed", "path", w.path, "error", err)
	}
}

// Process runs the job synchronously, dispatching on media kind.
func (cfg *Config) Process(ctx context.Context, job Job) JobResult {
	cfg.defaults()

	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Kind == "" {
		job.Kind = KindForPath(job.InputPath)
	}

	var err error
	switch job.Kind {
	case KindImage:
		err = cfg.ProcessImage(ctx, job.InputPath, job.OutputPath, job.Level)
	case KindVideo:
		err = cfg.ProcessVideo(ctx, job.InputPath, job.OutputPath, job.Level)
	default:
		err = fmt.Errorf("unrecognized media kind for %s", job.InputPath)
	}

	if err != nil {
		return JobResult{Job: job, Err: err}
	}
	return JobResult{Job: job, OutputPath: job.OutputPath}
}

// RunJob executes the job on a background goroutine and returns a channel
// that yields exactly one result. The job runs to completion or failure;
// no cancellation beyond ctx and no partial results are exposed.
func (cfg *Config) RunJob(ctx context.Context, job Job) <-chan JobResult {
	cfg.defaults()

	done := make(chan JobResult, 1)
	go func() {
		done <- cfg.Process(ctx, job)
		close(done)
	}()
	return done
}
