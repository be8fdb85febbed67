package artifacts

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"homeprice/internal/boost"
	"homeprice/internal/features"
)

func fittedPipeline(t *testing.T) *features.Pipeline {
	t.Helper()
	p, err := features.NewPipeline(features.ColumnGroups{
		Numeric:     []string{features.ColSize},
		Categorical: []string{features.ColMarket},
	}, "missing")
	require.NoError(t, err)

	table := &features.Table{
		N:           3,
		Numeric:     map[string][]float64{features.ColSize: {50, math.NaN(), 70}},
		Categorical: map[string][]string{features.ColMarket: {"wtórny", "", "pierwotny"}},
	}
	require.NoError(t, p.Fit(table))
	return p
}

func fittedBooster(t *testing.T) *boost.Booster {
	t.Helper()
	b, err := boost.New(boost.Params{
		Trees: 5, LearningRate: 0.1, MaxDepth: 2, MinLeaf: 1, Subsample: 1, Seed: 1,
	})
	require.NoError(t, err)

	x := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	require.NoError(t, b.Fit(x, []float64{1, 2, 3, 4}))
	return b
}

func TestModelRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.gob")

	original := &Model{
		RunID:        "run-1",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
		FeatureNames: []string{"size", "market=wtórny"},
		Pipeline:     fittedPipeline(t),
		Booster:      fittedBooster(t),
	}
	require.NoError(t, SaveModel(path, original))

	loaded, err := LoadModel(path)
	require.NoError(t, err)

	assert.Equal(t, original.RunID, loaded.RunID)
	assert.Equal(t, original.FeatureNames, loaded.FeatureNames)
	assert.True(t, loaded.Pipeline.Fitted)
	assert.True(t, loaded.Booster.Fitted)
	assert.Equal(t, original.Pipeline.ScaleMeans, loaded.Pipeline.ScaleMeans)
	assert.Equal(t, original.Pipeline.Categories, loaded.Pipeline.Categories)

	// The loaded booster predicts identically to the original.
	probe := []float64{2.5}
	assert.Equal(t, original.Booster.PredictRow(probe), loaded.Booster.PredictRow(probe))
}

func TestPipelineRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.gob")

	original := &PipelineArtifact{
		RunID:     "run-2",
		CreatedAt: time.Now().UTC(),
		Pipeline:  fittedPipeline(t),
	}
	require.NoError(t, SavePipeline(path, original))

	loaded, err := LoadPipeline(path)
	require.NoError(t, err)
	assert.Equal(t, "run-2", loaded.RunID)
	assert.Equal(t, original.Pipeline.ImputeValues, loaded.Pipeline.ImputeValues)
}

func TestSaveRejectsUnfitted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gob")

	unfitted, err := features.NewPipeline(features.ColumnGroups{Numeric: []string{features.ColSize}}, "missing")
	require.NoError(t, err)

	err = SavePipeline(path, &PipelineArtifact{Pipeline: unfitted})
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no partial artifact may exist")
}

func TestSaveRejectsIncomplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gob")
	assert.Error(t, SaveModel(path, nil))
	assert.Error(t, SaveModel(path, &Model{Pipeline: fittedPipeline(t)}))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "nope.gob"))
	assert.Error(t, err)
}
