package boost

import (
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Params holds the booster hyperparameters. Values are fixed per run; there
// is no online update, retraining replaces the whole ensemble.
type Params struct {
	Trees        int
	LearningRate float64
	MaxDepth     int
	MinLeaf      int
	Subsample    float64
	Seed         int64
}

// Validate checks the hyperparameters.
func (p Params) Validate() error {
	if p.Trees < 1 {
		return fmt.Errorf("trees must be at least 1, got %d", p.Trees)
	}
	if p.LearningRate <= 0 || p.LearningRate > 1 {
		return fmt.Errorf("learning rate must be in (0, 1], got %v", p.LearningRate)
	}
	if p.MaxDepth < 1 {
		return fmt.Errorf("max depth must be at least 1, got %d", p.MaxDepth)
	}
	if p.MinLeaf < 1 {
		return fmt.Errorf("min leaf must be at least 1, got %d", p.MinLeaf)
	}
	if p.Subsample <= 0 || p.Subsample > 1 {
		return fmt.Errorf("subsample must be in (0, 1], got %v", p.Subsample)
	}
	return nil
}

// Booster is an additive ensemble of regression trees trained by gradient
// boosting under squared loss. State is exported for gob encoding.
type Booster struct {
	Params Params
	Init   float64 // training-target mean, the ensemble's starting prediction
	Trees  []*Node
	Fitted bool
}

// New creates an unfitted booster with validated hyperparameters.
func New(p Params) (*Booster, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid booster params: %w", err)
	}
	return &Booster{Params: p}, nil
}

// Fit trains the ensemble on the feature matrix and the (log-scale) target.
// Each tree fits the residuals of the running prediction; the fit is
// deterministic for a fixed seed.
func (b *Booster) Fit(x *mat.Dense, y []float64) error {
	if b.Fitted {
		return fmt.Errorf("booster is already fitted")
	}

	n, _ := x.Dims()
	if n != len(y) {
		return fmt.Errorf("feature matrix has %d rows, target has %d", n, len(y))
	}
	if n < 2 {
		return fmt.Errorf("need at least 2 training rows, got %d", n)
	}

	var sum float64
	for _, v := range y {
		sum += v
	}
	b.Init = sum / float64(n)

	pred := make([]float64, n)
	for i := range pred {
		pred[i] = b.Init
	}

	rng := rand.New(rand.NewSource(b.Params.Seed))
	residual := make([]float64, n)
	b.Trees = make([]*Node, 0, b.Params.Trees)

	for t := 0; t < b.Params.Trees; t++ {
		for i := range residual {
			residual[i] = y[i] - pred[i]
		}

		samples := b.drawSamples(rng, n)
		builder := newTreeBuilder(x, residual, b.Params.MaxDepth, b.Params.MinLeaf)
		tree := builder.build(samples, 0)
		b.Trees = append(b.Trees, tree)

		for i := 0; i < n; i++ {
			pred[i] += b.Params.LearningRate * tree.predict(mat.Row(nil, i, x))
		}
	}

	b.Fitted = true
	return nil
}

// drawSamples returns the training row indices for one tree. With subsample
// below 1 the rows are drawn without replacement and re-sorted so tree
// construction sees them in a stable order.
func (b *Booster) drawSamples(rng *rand.Rand, n int) []int {
	if b.Params.Subsample >= 1 {
		samples := make([]int, n)
		for i := range samples {
			samples[i] = i
		}
		return samples
	}

	m := int(float64(n) * b.Params.Subsample)
	if m < 2 {
		m = 2
	}
	samples := rng.Perm(n)[:m]
	sort.Ints(samples)
	return samples
}

// Predict returns one log-scale estimate per row of x.
func (b *Booster) Predict(x *mat.Dense) ([]float64, error) {
	if !b.Fitted {
		return nil, fmt.Errorf("booster is not fitted")
	}

	n, cols := x.Dims()
	out := make([]float64, n)
	row := make([]float64, cols)
	for i := 0; i < n; i++ {
		mat.Row(row, i, x)
		out[i] = b.PredictRow(row)
	}
	return out, nil
}

// PredictRow returns the log-scale estimate for a single transformed
// feature row.
func (b *Booster) PredictRow(x []float64) float64 {
	pred := b.Init
	for _, tree := range b.Trees {
		pred += b.Params.LearningRate * tree.predict(x)
	}
	return pred
}
