// Package artifacts persists the fitted pipeline and model as opaque binary
// blobs, loadable later for inference without access to the training data.
package artifacts

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"homeprice/internal/boost"
	"homeprice/internal/features"
)

// Model is the full end-to-end artifact: the fitted feature pipeline plus
// the fitted booster, with enough metadata to trace the producing run.
type Model struct {
	RunID        string
	CreatedAt    time.Time
	FeatureNames []string
	Pipeline     *features.Pipeline
	Booster      *boost.Booster
}

// PipelineArtifact is the feature-pipeline-only artifact.
type PipelineArtifact struct {
	RunID     string
	CreatedAt time.Time
	Pipeline  *features.Pipeline
}

// SaveModel writes the full model artifact to path.
func SaveModel(path string, m *Model) error {
	if m == nil || m.Pipeline == nil || m.Booster == nil {
		return fmt.Errorf("model artifact is incomplete")
	}
	if !m.Pipeline.Fitted || !m.Booster.Fitted {
		return fmt.Errorf("refusing to persist an unfitted model")
	}
	return writeGob(path, m)
}

// LoadModel reads a full model artifact from path.
func LoadModel(path string) (*Model, error) {
	var m Model
	if err := readGob(path, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// SavePipeline writes the feature-pipeline-only artifact to path.
func SavePipeline(path string, p *PipelineArtifact) error {
	if p == nil || p.Pipeline == nil {
		return fmt.Errorf("pipeline artifact is incomplete")
	}
	if !p.Pipeline.Fitted {
		return fmt.Errorf("refusing to persist an unfitted pipeline")
	}
	return writeGob(path, p)
}

// LoadPipeline reads a feature-pipeline-only artifact from path.
func LoadPipeline(path string) (*PipelineArtifact, error) {
	var p PipelineArtifact
	if err := readGob(path, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// writeGob encodes v into a temporary file and renames it into place, so a
// failed run never leaves a partial artifact behind.
func writeGob(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("encode artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp artifact: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("finalize artifact %s: %w", path, err)
	}
	return nil
}

func readGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode artifact %s: %w", path, err)
	}
	return nil
}
