// Package exporter writes run diagnostics to disk: the cleaned dataset as it
// entered training and a one-row run summary. Exports are read by humans and
// spreadsheets, never back by the pipeline.
package exporter
