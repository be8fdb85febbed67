package features

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"homeprice/internal/dataset"
)

// Fence is a quartile fence for one column, computed from the data it is
// applied to. No bound is ever a fixed constant: the fence scales with the
// input distribution.
type Fence struct {
	Q1    float64
	Q3    float64
	Lower float64
	Upper float64
}

// Contains reports whether v lies strictly inside the fence. NaN (a missing
// value) satisfies neither comparison and is therefore always outside.
func (f Fence) Contains(v float64) bool {
	return v > f.Lower && v < f.Upper
}

// IQRFence computes the quartile fence over the present (finite) values:
// [Q1 - multiplier*IQR, Q3 + multiplier*IQR].
func IQRFence(values []float64, multiplier float64) (Fence, error) {
	if multiplier <= 0 {
		return Fence{}, fmt.Errorf("fence multiplier must be positive, got %v", multiplier)
	}

	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return Fence{}, fmt.Errorf("no present values to compute quartiles from")
	}
	sort.Float64s(present)

	q1 := stat.Quantile(0.25, stat.LinInterp, present, nil)
	q3 := stat.Quantile(0.75, stat.LinInterp, present, nil)
	iqr := q3 - q1

	return Fence{
		Q1:    q1,
		Q3:    q3,
		Lower: q1 - multiplier*iqr,
		Upper: q3 + multiplier*iqr,
	}, nil
}

// FilterRows removes rows whose value (as extracted by value) falls outside
// the fence computed over the current row set. A row whose value is missing
// is removed as well: a missing value satisfies neither fence condition.
//
// The fence is recomputed on every call, so sequential applications (price
// first, then size) see the already-filtered distribution. The order of
// application is part of the pipeline's reproducibility contract.
func FilterRows(rows []dataset.Listing, value func(dataset.Listing) (float64, bool), multiplier float64) ([]dataset.Listing, Fence, error) {
	values := make([]float64, len(rows))
	for i, r := range rows {
		v, ok := value(r)
		if !ok {
			v = math.NaN()
		}
		values[i] = v
	}

	fence, err := IQRFence(values, multiplier)
	if err != nil {
		return nil, Fence{}, err
	}

	kept := make([]dataset.Listing, 0, len(rows))
	for i, r := range rows {
		if fence.Contains(values[i]) {
			kept = append(kept, r)
		}
	}

	return kept, fence, nil
}
