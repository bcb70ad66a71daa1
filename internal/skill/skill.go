// Package skill provisions the custom xl skill on the service.
package skill

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/tjc-lp/xlbench/internal/anthropic"
)

// DisplayTitle identifies the xl skill on the service. Provisioning is
// idempotent on this title.
const DisplayTitle = "xl-cli"

// maxBundleFile caps how large a single bundle member may be.
const maxBundleFile = 64 << 20

// GetOrCreate returns the ID of the xl skill, creating it from the local
// bundle zip when no custom skill with DisplayTitle exists yet.
func GetOrCreate(ctx context.Context, api anthropic.API, bundlePath string) (string, error) {
	skills, err := api.ListSkills(ctx, "custom")
	if err != nil {
		return "", fmt.Errorf("listing custom skills: %w", err)
	}

	for _, s := range skills {
		if s.DisplayTitle == DisplayTitle {
			slog.Debug("Found existing skill", "id", s.ID, "title", DisplayTitle)
			return s.ID, nil
		}
	}

	slog.Info("Creating skill from bundle", "title", DisplayTitle, "bundle", bundlePath)

	files, err := readBundle(bundlePath)
	if err != nil {
		return "", err
	}

	created, err := api.CreateSkill(ctx, DisplayTitle, files)
	if err != nil {
		return "", fmt.Errorf("creating skill %q: %w", DisplayTitle, err)
	}

	slog.Info("Created skill", "id", created.ID)
	return created.ID, nil
}

// readBundle extracts the zip's files, prefixing every path with the
// display title so the upload satisfies the common-root-directory
// requirement of the Skills API.
func readBundle(bundlePath string) ([]anthropic.SkillFile, error) {
	f, err := os.Open(bundlePath)
	if err != nil {
		return nil, fmt.Errorf("opening bundle: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("inspecting bundle: %w", err)
	}

	reader, err := zip.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("reading bundle zip: %w", err)
	}

	var files []anthropic.SkillFile
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		name := path.Clean(entry.Name)
		if name == ".." || strings.HasPrefix(name, "../") || path.IsAbs(name) {
			return nil, fmt.Errorf("bundle entry %q escapes the archive root", entry.Name)
		}

		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("opening bundle entry %s: %w", entry.Name, err)
		}
		data, err := io.ReadAll(io.LimitReader(rc, maxBundleFile))
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading bundle entry %s: %w", entry.Name, err)
		}

		files = append(files, anthropic.SkillFile{
			Path: DisplayTitle + "/" + name,
			Data: data,
		})
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("bundle %s contains no files", bundlePath)
	}
	return files, nil
}
