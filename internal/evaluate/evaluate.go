// Package evaluate computes held-out diagnostics for a fitted model.
// The metrics are reported only; nothing in the pipeline gates on them.
package evaluate

import (
	"fmt"
	"math"
)

// Metrics holds the held-out error diagnostics in original currency units.
type Metrics struct {
	MAE  float64
	RMSE float64
	Rows int
}

// Compute returns the error metrics over parallel sequences of predicted and
// actual prices, both already in original (non-log) units.
func Compute(predicted, actual []float64) (Metrics, error) {
	if len(predicted) != len(actual) {
		return Metrics{}, fmt.Errorf("predicted has %d values, actual has %d", len(predicted), len(actual))
	}
	if len(predicted) == 0 {
		return Metrics{}, fmt.Errorf("no values to evaluate")
	}

	var absSum, sqSum float64
	for i := range predicted {
		d := predicted[i] - actual[i]
		absSum += math.Abs(d)
		sqSum += d * d
	}

	n := float64(len(predicted))
	return Metrics{
		MAE:  absSum / n,
		RMSE: math.Sqrt(sqSum / n),
		Rows: len(predicted),
	}, nil
}

// MAE returns just the mean absolute error.
func MAE(predicted, actual []float64) (float64, error) {
	m, err := Compute(predicted, actual)
	if err != nil {
		return 0, err
	}
	return m.MAE, nil
}
