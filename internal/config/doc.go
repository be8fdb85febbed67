// Package config provides centralized configuration management for the
// homeprice training pipeline. It handles loading configuration from multiple
// sources, validation, and a type-safe API for the rest of the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. A YAML configuration file (config.yaml by default)
//	3. Built-in defaults (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern HOMEPRICE_* for namespacing:
//
//	HOMEPRICE_DATA_INPUT_PATH=data/listings.csv
//	HOMEPRICE_MODEL_TREES=200
//	HOMEPRICE_LOGGING_LEVEL=debug
//
// # Defaults
//
// The defaults target the Warsaw apartment-listing snapshot: Polish header
// names (Czynsz, Informacje dodatkowe, ...), the "zł" currency suffix and the
// Otodom amenity vocabulary. All of them can be overridden per run, which is
// how the tests exercise the pipeline with synthetic schemas.
package config
