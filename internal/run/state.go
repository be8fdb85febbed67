package run

import (
	"time"

	"homeprice/internal/boost"
	"homeprice/internal/config"
	"homeprice/internal/dataset"
	"homeprice/internal/evaluate"
	"homeprice/internal/features"
)

// State carries the data flowing between steps of one training run. Each
// step reads the fields its predecessors filled in and writes its own.
type State struct {
	RunID     string
	StartedAt time.Time
	Config    *config.Config

	// Filled by the load step.
	Rows        []dataset.Listing
	Report      dataset.LoadReport
	AmenityCols []string

	// Filled by the outlier step.
	PriceFence features.Fence
	SizeFence  features.Fence

	// Filled by the split step.
	Train []dataset.Listing
	Test  []dataset.Listing

	// Filled by the fit step.
	Pipeline     *features.Pipeline
	Booster      *boost.Booster
	FeatureNames []string

	// Filled by the evaluate step.
	Metrics evaluate.Metrics

	// Filled by the persist and export steps.
	ModelPath    string
	PipelinePath string
	CleanedPath  string
	SummaryPath  string
}

// NewState prepares the state for a fresh run.
func NewState(runID string, cfg *config.Config) *State {
	return &State{
		RunID:     runID,
		StartedAt: time.Now(),
		Config:    cfg,
	}
}
