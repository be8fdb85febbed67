package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete training-run configuration.
type Config struct {
	Data     DataConfig     `yaml:"data" envconfig:"DATA"`
	Columns  ColumnsConfig  `yaml:"columns" envconfig:"COLUMNS"`
	Cleaning CleaningConfig `yaml:"cleaning" envconfig:"CLEANING"`
	Split    SplitConfig    `yaml:"split" envconfig:"SPLIT"`
	Outlier  OutlierConfig  `yaml:"outlier" envconfig:"OUTLIER"`
	Model    ModelConfig    `yaml:"model" envconfig:"MODEL"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// DataConfig describes the input snapshot.
type DataConfig struct {
	InputPath string `yaml:"input_path" envconfig:"INPUT_PATH" validate:"required"`
	Delimiter string `yaml:"delimiter" envconfig:"DELIMITER" validate:"required,len=1"`
}

// ColumnsConfig maps the source header names onto the fields the pipeline
// consumes. Defaults match the Otodom scrape schema, which mixes English and
// Polish header names.
type ColumnsConfig struct {
	Size       string `yaml:"size" envconfig:"SIZE" validate:"required"`
	Price      string `yaml:"price" envconfig:"PRICE" validate:"required"`
	Rent       string `yaml:"rent" envconfig:"RENT" validate:"required"`
	Location   string `yaml:"location" envconfig:"LOCATION" validate:"required"`
	Amenities  string `yaml:"amenities" envconfig:"AMENITIES" validate:"required"`
	Title      string `yaml:"title" envconfig:"TITLE"`
	Heating    string `yaml:"heating" envconfig:"HEATING" validate:"required"`
	Floor      string `yaml:"floor" envconfig:"FLOOR" validate:"required"`
	Finish     string `yaml:"finish" envconfig:"FINISH" validate:"required"`
	Market     string `yaml:"market" envconfig:"MARKET" validate:"required"`
	Ownership  string `yaml:"ownership" envconfig:"OWNERSHIP" validate:"required"`
	Advertiser string `yaml:"advertiser" envconfig:"ADVERTISER" validate:"required"`
}

// CleaningConfig holds the locale-specific text constants used by the field
// normalizer and the amenity extractor. These are configuration, not hidden
// package constants, so the pipeline stays testable with synthetic vocabularies.
type CleaningConfig struct {
	SizeUnit          string   `yaml:"size_unit" envconfig:"SIZE_UNIT" validate:"required"`
	CurrencySuffix    string   `yaml:"currency_suffix" envconfig:"CURRENCY_SUFFIX" validate:"required"`
	RentSentinel      string   `yaml:"rent_sentinel" envconfig:"RENT_SENTINEL" validate:"required"`
	PriceSentinel     string   `yaml:"price_sentinel" envconfig:"PRICE_SENTINEL" validate:"required"`
	MissingToken      string   `yaml:"missing_token" envconfig:"MISSING_TOKEN" validate:"required"`
	AmenityVocabulary []string `yaml:"amenity_vocabulary" envconfig:"AMENITY_VOCABULARY" validate:"required,min=1"`
}

// SplitConfig controls the train/test partition.
type SplitConfig struct {
	TestFraction float64 `yaml:"test_fraction" envconfig:"TEST_FRACTION" validate:"gt=0,lt=1"`
	Seed         int64   `yaml:"seed" envconfig:"SEED"`
}

// OutlierConfig controls the IQR fence.
type OutlierConfig struct {
	Multiplier float64 `yaml:"multiplier" envconfig:"MULTIPLIER" validate:"gt=0"`
}

// ModelConfig holds the booster hyperparameters.
type ModelConfig struct {
	Trees        int     `yaml:"trees" envconfig:"TREES" validate:"gte=1"`
	LearningRate float64 `yaml:"learning_rate" envconfig:"LEARNING_RATE" validate:"gt=0,lte=1"`
	MaxDepth     int     `yaml:"max_depth" envconfig:"MAX_DEPTH" validate:"gte=1"`
	MinLeaf      int     `yaml:"min_leaf" envconfig:"MIN_LEAF" validate:"gte=1"`
	Subsample    float64 `yaml:"subsample" envconfig:"SUBSAMPLE" validate:"gt=0,lte=1"`
	Seed         int64   `yaml:"seed" envconfig:"SEED"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// Default returns the configuration used when no file or environment
// overrides are present. The column and cleaning defaults match the Warsaw
// apartment snapshot this pipeline was built against.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			InputPath: "data/listings.csv",
			Delimiter: ",",
		},
		Columns: ColumnsConfig{
			Size:       "size",
			Price:      "price",
			Rent:       "Czynsz",
			Location:   "location",
			Amenities:  "Informacje dodatkowe",
			Title:      "title",
			Heating:    "Ogrzewanie",
			Floor:      "Piętro",
			Finish:     "Stan wykończenia",
			Market:     "Rynek",
			Ownership:  "Forma własności",
			Advertiser: "Typ ogłoszeniodawcy",
		},
		Cleaning: CleaningConfig{
			SizeUnit:       "m²",
			CurrencySuffix: "zł",
			RentSentinel:   "brak informacji",
			PriceSentinel:  "Zapytaj o cenę",
			MissingToken:   "missing",
			AmenityVocabulary: []string{
				"balkon",
				"taras",
				"garaż/miejsce parkingowe",
				"piwnica",
				"oddzielna kuchnia",
				"ogródek",
				"pom. użytkowe",
			},
		},
		Split: SplitConfig{
			TestFraction: 0.2,
			Seed:         42,
		},
		Outlier: OutlierConfig{
			Multiplier: 1.5,
		},
		Model: ModelConfig{
			Trees:        100,
			LearningRate: 0.1,
			MaxDepth:     3,
			MinLeaf:      2,
			Subsample:    1.0,
			Seed:         42,
		},
		Paths: PathsConfig{
			ArtifactsDir: "artifacts",
			ExportDir:    "exports",
			LogsDir:      "logs",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/homeprice.log",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file (if present),
// then environment overrides with the HOMEPRICE prefix, then validation.
// An explicitly named file that cannot be read is a fatal configuration error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := envconfig.Process("HOMEPRICE", cfg); err != nil {
		return nil, fmt.Errorf("apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks structural constraints on the configuration.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return err
	}

	seen := make(map[string]string, len(c.Cleaning.AmenityVocabulary))
	for _, phrase := range c.Cleaning.AmenityVocabulary {
		if strings.TrimSpace(phrase) == "" {
			return fmt.Errorf("amenity vocabulary contains an empty phrase")
		}
		key := strings.ToLower(phrase)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("amenity vocabulary has duplicate phrase %q (also %q)", phrase, prev)
		}
		seen[key] = phrase
	}

	return nil
}
