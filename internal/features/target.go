package features

import (
	"math"

	"homeprice/internal/dataset"
)

// LogPrice is the forward target transform. Price is guaranteed positive
// after cleaning and outlier filtering, so the logarithm is always finite.
func LogPrice(price float64) float64 {
	return math.Log(price)
}

// InversePrice reverses LogPrice. The two are exact mathematical inverses up
// to floating-point precision.
func InversePrice(logPrice float64) float64 {
	return math.Exp(logPrice)
}

// LogTargets extracts the log-price target vector from rows.
func LogTargets(rows []dataset.Listing) []float64 {
	y := make([]float64, len(rows))
	for i, r := range rows {
		y[i] = LogPrice(r.Price)
	}
	return y
}

// InversePrices maps a vector of log-price values back to currency units.
func InversePrices(logPrices []float64) []float64 {
	out := make([]float64, len(logPrices))
	for i, v := range logPrices {
		out[i] = InversePrice(v)
	}
	return out
}
