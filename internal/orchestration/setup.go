package orchestration

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tjc-lp/xlbench/internal/anthropic"
	"github.com/tjc-lp/xlbench/internal/assets"
	"github.com/tjc-lp/xlbench/internal/config"
	"github.com/tjc-lp/xlbench/internal/execution"
	"github.com/tjc-lp/xlbench/internal/skill"
)

// Provisioner prepares the service-side resources a run needs before any
// task is dispatched.
type Provisioner interface {
	// Provision uploads the sample workbook and, when needXl is set,
	// also provisions the xl skill and binary upload.
	Provision(ctx context.Context, needXl bool) (execution.Handles, error)
}

// StaticProvisioner hands back fixed handles without touching the
// service. It backs the mock engine, which ignores handles entirely.
type StaticProvisioner struct {
	Handles execution.Handles
}

// Provision implements [Provisioner].
func (p StaticProvisioner) Provision(ctx context.Context, needXl bool) (execution.Handles, error) {
	return p.Handles, nil
}

// ServiceProvisioner provisions against the real service: sample upload
// through the Files API, xl assets from disk (downloading on demand), the
// skill through get-or-create.
type ServiceProvisioner struct {
	cfg *config.RunConfig
	api anthropic.API
}

// NewServiceProvisioner creates a provisioner for the given run.
func NewServiceProvisioner(cfg *config.RunConfig, api anthropic.API) *ServiceProvisioner {
	return &ServiceProvisioner{cfg: cfg, api: api}
}

// Provision implements [Provisioner].
func (p *ServiceProvisioner) Provision(ctx context.Context, needXl bool) (execution.Handles, error) {
	var handles execution.Handles

	samplePath := p.cfg.SampleFile()
	slog.Info("Uploading sample workbook", "path", samplePath)

	sample, err := p.uploadPath(ctx, samplePath, "sample.xlsx")
	if err != nil {
		return handles, fmt.Errorf("uploading sample workbook: %w", err)
	}
	handles.SampleFileID = sample
	slog.Info("Uploaded sample workbook", "file_id", sample)

	if !needXl {
		return handles, nil
	}

	paths, err := assets.Ensure(ctx, p.cfg.AssetsDir())
	if err != nil {
		return handles, err
	}

	slog.Info("Provisioning xl skill", "bundle", paths.Bundle)
	skillID, err := skill.GetOrCreate(ctx, p.api, paths.Bundle)
	if err != nil {
		return handles, err
	}
	handles.SkillID = skillID

	slog.Info("Uploading xl binary", "path", paths.Binary)
	binary, err := p.uploadPath(ctx, paths.Binary, "xl-linux-amd64")
	if err != nil {
		return handles, fmt.Errorf("uploading xl binary: %w", err)
	}
	handles.BinaryFileID = binary
	slog.Info("Uploaded xl binary", "file_id", binary)

	return handles, nil
}

// uploadPath uploads a local file under a fixed service-side name. The
// names matter: the system prompts promise the container exactly
// /mnt/user/sample.xlsx and /mnt/user/xl-linux-amd64.
func (p *ServiceProvisioner) uploadPath(ctx context.Context, path, uploadName string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	file, err := p.api.UploadFile(ctx, uploadName, f)
	if err != nil {
		return "", err
	}
	return file.ID, nil
}
