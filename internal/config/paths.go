package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathsConfig contains the output directory layout for a run.
type PathsConfig struct {
	ArtifactsDir string `yaml:"artifacts_dir" envconfig:"ARTIFACTS_DIR" validate:"required"`
	ExportDir    string `yaml:"export_dir" envconfig:"EXPORT_DIR" validate:"required"`
	LogsDir      string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// EnsureDirectories creates every output directory that a run writes into.
func (p PathsConfig) EnsureDirectories() error {
	for _, dir := range []string{p.ArtifactsDir, p.ExportDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ModelPath returns the location of the full model artifact.
func (p PathsConfig) ModelPath() string {
	return filepath.Join(p.ArtifactsDir, "model.gob")
}

// PipelinePath returns the location of the feature-pipeline-only artifact.
func (p PathsConfig) PipelinePath() string {
	return filepath.Join(p.ArtifactsDir, "pipeline.gob")
}

// LogPath returns the path of a log file inside the logs directory.
func (p PathsConfig) LogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}
