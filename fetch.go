package uniquify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// FetchOpts configures a remote-input download.
type FetchOpts struct {
	MaxBytes int64         // max response body size (default: 2GB)
	Timeout  time.Duration // per-request timeout (default: 5m)
}

const (
	defaultFetchMaxBytes = 2 << 30
	defaultFetchTimeout  = 5 * time.Minute
)

// IsRemote reports whether the input is an http(s) URL rather than a local
// path.
func IsRemote(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// Fetch downloads a remote input asset into destDir so the pipelines can
// process it like a local file. Tries cfg.StealthClient first (if set),
// falls back to cfg.HTTPClient. The caller owns destDir and the returned
// file.
func (cfg *Config) Fetch(ctx context.Context, rawURL, destDir string, opts FetchOpts) (string, error) {
	cfg.defaults()

	if opts.MaxBytes <= 0 {
		opts.MaxBytes = defaultFetchMaxBytes
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultFetchTimeout
	}

	name := remoteFileName(rawURL)
	if KindForPath(name) == KindUnknown {
		return "", fmt.Errorf("unrecognized media extension in url %s", rawURL)
	}
	dest := filepath.Join(destDir, name)

	if cfg.StealthClient != nil {
		if err := cfg.fetchTo(ctx, cfg.StealthClient, rawURL, dest, opts); err == nil {
			return dest, nil
		}
	}
	if err := cfg.fetchTo(ctx, cfg.HTTPClient, rawURL, dest, opts); err != nil {
		return "", err
	}
	return dest, nil
}

func (cfg *Config) fetchTo(ctx context.Context, client *http.Client, rawURL, dest string, opts FetchOpts) error {
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %s", rawURL, resp.Status)
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, io.LimitReader(resp.Body, opts.MaxBytes)); err != nil {
		return fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	return nil
}

// remoteFileName derives a local filename from the URL path.
func remoteFileName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return path.Base(rawURL)
	}
	return path.Base(u.Path)
}
