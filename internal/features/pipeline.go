package features

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Pipeline is the two-branch column transformer. The numeric branch imputes
// missing values with the training-column mean and standardizes to zero mean
// and unit variance; the categorical branch fills missing values with an
// explicit token and one-hot encodes the categories seen during Fit. A
// category first seen at transform time encodes as all zeros.
//
// All state is exported so a fitted pipeline gob-encodes into the persisted
// artifact.
type Pipeline struct {
	NumericCols     []string
	CategoricalCols []string
	MissingToken    string

	// Frozen at fit time.
	ImputeValues []float64  // per numeric column: mean of observed values
	ScaleMeans   []float64  // per numeric column: mean after imputation
	ScaleStds    []float64  // per numeric column: std after imputation (1 for constant columns)
	Categories   [][]string // per categorical column: sorted fit-time vocabulary

	Fitted bool
}

// NewPipeline creates an unfitted pipeline over the given column groups.
func NewPipeline(groups ColumnGroups, missingToken string) (*Pipeline, error) {
	if len(groups.Numeric) == 0 && len(groups.Categorical) == 0 {
		return nil, fmt.Errorf("pipeline needs at least one column group")
	}
	if missingToken == "" {
		return nil, fmt.Errorf("missing-category token must not be empty")
	}
	return &Pipeline{
		NumericCols:     append([]string(nil), groups.Numeric...),
		CategoricalCols: append([]string(nil), groups.Categorical...),
		MissingToken:    missingToken,
	}, nil
}

// Fit computes and freezes the transformation statistics from t, which must
// be the training partition. Fitting twice is an error: the fit-once,
// transform-many contract is what keeps train and test encodings consistent.
func (p *Pipeline) Fit(t *Table) error {
	if p.Fitted {
		return fmt.Errorf("pipeline is already fitted")
	}

	p.ImputeValues = make([]float64, len(p.NumericCols))
	p.ScaleMeans = make([]float64, len(p.NumericCols))
	p.ScaleStds = make([]float64, len(p.NumericCols))

	for j, name := range p.NumericCols {
		col, ok := t.Numeric[name]
		if !ok {
			return fmt.Errorf("numeric column %q not present in table", name)
		}

		observed := make([]float64, 0, len(col))
		for _, v := range col {
			if !math.IsNaN(v) {
				observed = append(observed, v)
			}
		}

		imputeValue := 0.0
		if len(observed) > 0 {
			imputeValue = stat.Mean(observed, nil)
		}
		p.ImputeValues[j] = imputeValue

		imputed := make([]float64, len(col))
		for i, v := range col {
			if math.IsNaN(v) {
				v = imputeValue
			}
			imputed[i] = v
		}

		mean := stat.Mean(imputed, nil)
		std := populationStd(imputed, mean)
		if std < 1e-12 {
			std = 1 // constant column: center only
		}
		p.ScaleMeans[j] = mean
		p.ScaleStds[j] = std
	}

	p.Categories = make([][]string, len(p.CategoricalCols))
	for j, name := range p.CategoricalCols {
		col, ok := t.Categorical[name]
		if !ok {
			return fmt.Errorf("categorical column %q not present in table", name)
		}

		seen := make(map[string]struct{})
		for _, v := range col {
			if v == "" {
				v = p.MissingToken
			}
			seen[v] = struct{}{}
		}

		vocab := make([]string, 0, len(seen))
		for v := range seen {
			vocab = append(vocab, v)
		}
		sort.Strings(vocab)
		p.Categories[j] = vocab
	}

	p.Fitted = true
	return nil
}

// Transform encodes t using the frozen statistics. It never mutates the
// fitted state, so transforming the same table twice yields identical output.
func (p *Pipeline) Transform(t *Table) (*mat.Dense, error) {
	if !p.Fitted {
		return nil, fmt.Errorf("pipeline is not fitted")
	}

	width := p.Width()
	out := mat.NewDense(t.N, width, nil)

	for j, name := range p.NumericCols {
		col, ok := t.Numeric[name]
		if !ok {
			return nil, fmt.Errorf("numeric column %q not present in table", name)
		}
		if len(col) != t.N {
			return nil, fmt.Errorf("numeric column %q has %d values, table has %d rows", name, len(col), t.N)
		}
		for i, v := range col {
			if math.IsNaN(v) {
				v = p.ImputeValues[j]
			}
			out.Set(i, j, (v-p.ScaleMeans[j])/p.ScaleStds[j])
		}
	}

	offset := len(p.NumericCols)
	for j, name := range p.CategoricalCols {
		col, ok := t.Categorical[name]
		if !ok {
			return nil, fmt.Errorf("categorical column %q not present in table", name)
		}
		if len(col) != t.N {
			return nil, fmt.Errorf("categorical column %q has %d values, table has %d rows", name, len(col), t.N)
		}

		index := make(map[string]int, len(p.Categories[j]))
		for k, v := range p.Categories[j] {
			index[v] = k
		}

		for i, v := range col {
			if v == "" {
				v = p.MissingToken
			}
			// Unknown categories stay all-zero.
			if k, ok := index[v]; ok {
				out.Set(i, offset+k, 1)
			}
		}
		offset += len(p.Categories[j])
	}

	return out, nil
}

// FitTransform fits on t and returns its encoding.
func (p *Pipeline) FitTransform(t *Table) (*mat.Dense, error) {
	if err := p.Fit(t); err != nil {
		return nil, err
	}
	return p.Transform(t)
}

// Width returns the encoded feature count. Valid only after Fit.
func (p *Pipeline) Width() int {
	width := len(p.NumericCols)
	for _, vocab := range p.Categories {
		width += len(vocab)
	}
	return width
}

// FeatureNames returns the encoded column names in matrix order. Valid only
// after Fit.
func (p *Pipeline) FeatureNames() []string {
	names := make([]string, 0, p.Width())
	names = append(names, p.NumericCols...)
	for j, name := range p.CategoricalCols {
		for _, v := range p.Categories[j] {
			names = append(names, name+"="+v)
		}
	}
	return names
}

// populationStd computes the biased (population) standard deviation, matching
// the training-statistics convention of the standardizer.
func populationStd(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}
