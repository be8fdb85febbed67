// Package cleaning implements the text-level feature extraction for scraped
// listing snapshots: locale-aware numeric field normalization, location
// decomposition and amenity indicator extraction.
//
// All vocabulary and sentinel strings are injected through configuration so
// the package carries no hidden locale constants.
//
//   - normalize.go:  size/rent/price text to float64 with missing markers
//   - location.go:   free-text location to city/neighborhood/region tokens
//   - amenities.go:  fixed-vocabulary substring matching to 0/1 indicators
package cleaning
