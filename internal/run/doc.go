// Package run orchestrates the training pipeline as a sequence of steps
// sharing a single State. Steps execute in order with per-step logging and
// fail-fast error handling.
package run
