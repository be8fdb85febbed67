// Package features turns cleaned listing records into the matrix the booster
// consumes. It implements the IQR outlier fence, the log target transform,
// and a two-branch column transformer with a strict fit-once contract:
// Fit computes and freezes statistics from the training partition, Transform
// is a pure function of the frozen state and never recomputes anything.
//
//   - table.go:    column-oriented view of the cleaned rows
//   - outlier.go:  quartile fence filtering, recomputed per call
//   - target.go:   natural-log target transform and its inverse
//   - pipeline.go: numeric (impute+standardize) and categorical
//     (fill+one-hot) branches composed into one transformer
package features
