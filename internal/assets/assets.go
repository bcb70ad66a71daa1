// Package assets locates the xl binary and skill bundle, downloading them
// from the upstream GitHub release when missing.
package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const releaseURL = "https://api.github.com/repos/TJC-LP/xl/releases/latest"

const (
	binaryPattern = "xl-*-linux-amd64"
	bundlePattern = "xl-skill-*.zip"
)

// Paths are the resolved on-disk locations of the xl release assets.
type Paths struct {
	Binary string
	Bundle string
}

// Ensure returns the binary and bundle paths under dir, fetching whichever
// is missing from the latest upstream release. Downloads retry with
// exponential backoff; an existing file is never re-downloaded.
func Ensure(ctx context.Context, dir string) (*Paths, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating assets dir: %w", err)
	}

	binary, err := findAsset(dir, binaryPattern)
	if err != nil {
		return nil, err
	}
	bundle, err := findAsset(dir, bundlePattern)
	if err != nil {
		return nil, err
	}

	if binary != "" && bundle != "" {
		return &Paths{Binary: binary, Bundle: bundle}, nil
	}

	release, err := fetchLatestRelease(ctx)
	if err != nil {
		return nil, err
	}

	if binary == "" {
		binary, err = downloadMatching(ctx, release, dir, binaryPattern)
		if err != nil {
			return nil, err
		}
	}
	if bundle == "" {
		bundle, err = downloadMatching(ctx, release, dir, bundlePattern)
		if err != nil {
			return nil, err
		}
	}

	return &Paths{Binary: binary, Bundle: bundle}, nil
}

func findAsset(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("globbing %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", nil
	}
	return matches[0], nil
}

type release struct {
	TagName string `json:"tag_name"`
	Assets  []struct {
		Name        string `json:"name"`
		DownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

func fetchLatestRelease(ctx context.Context) (*release, error) {
	var rel *release

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, releaseURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/vnd.github+json")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("release lookup returned %s", resp.Status)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(err)
			}
			return err
		}

		rel = &release{}
		return json.NewDecoder(resp.Body).Decode(rel)
	}

	if err := backoff.Retry(operation, newBackoff(ctx)); err != nil {
		return nil, fmt.Errorf("fetching latest xl release: %w", err)
	}
	return rel, nil
}

func downloadMatching(ctx context.Context, rel *release, dir, pattern string) (string, error) {
	for _, asset := range rel.Assets {
		ok, err := filepath.Match(pattern, asset.Name)
		if err != nil {
			return "", fmt.Errorf("matching %s: %w", pattern, err)
		}
		if !ok {
			continue
		}

		dest := filepath.Join(dir, asset.Name)
		slog.Info("Downloading release asset", "asset", asset.Name, "release", rel.TagName)
		if err := downloadFile(ctx, asset.DownloadURL, dest); err != nil {
			return "", fmt.Errorf("downloading %s: %w", asset.Name, err)
		}
		return dest, nil
	}
	return "", fmt.Errorf("release %s has no asset matching %s", rel.TagName, pattern)
}

func downloadFile(ctx context.Context, url, dest string) error {
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("download returned %s", resp.Status)
		}

		tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
		if err != nil {
			return backoff.Permanent(err)
		}
		defer os.Remove(tmp.Name())

		if _, err := io.Copy(tmp, resp.Body); err != nil {
			tmp.Close()
			return err
		}
		if err := tmp.Close(); err != nil {
			return err
		}
		return os.Rename(tmp.Name(), dest)
	}

	return backoff.Retry(operation, newBackoff(ctx))
}

func newBackoff(ctx context.Context) backoff.BackOffContext {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.MaxElapsedTime = 2 * time.Minute
	return backoff.WithContext(bo, ctx)
}
