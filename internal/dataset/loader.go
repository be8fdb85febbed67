package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"homeprice/internal/cleaning"
	"homeprice/internal/config"
)

// Sentinel errors for structural input failures. All of them abort the run.
var (
	ErrEmptyFile     = errors.New("snapshot contains no data rows")
	ErrMissingColumn = errors.New("required column not found in header")
)

// LoadReport summarizes what the loader did to the snapshot.
type LoadReport struct {
	TotalRows      int
	Kept           int
	DroppedNoPrice int
}

// Loader reads a snapshot file and produces cleaned listing records.
// Cleaning is row-local: numeric normalization, location decomposition and
// amenity extraction happen while parsing, so downstream stages only ever see
// typed records.
type Loader struct {
	columns   config.ColumnsConfig
	delimiter rune
	norm      *cleaning.Normalizer
	amenities *cleaning.AmenitySet
	logger    *slog.Logger
}

// NewLoader builds a loader for the configured schema.
func NewLoader(cfg *config.Config, logger *slog.Logger) (*Loader, error) {
	if logger == nil {
		logger = slog.Default()
	}

	set, err := cleaning.NewAmenitySet(cfg.Cleaning.AmenityVocabulary)
	if err != nil {
		return nil, fmt.Errorf("build amenity set: %w", err)
	}

	delim := []rune(cfg.Data.Delimiter)
	if len(delim) != 1 {
		return nil, fmt.Errorf("delimiter must be a single character, got %q", cfg.Data.Delimiter)
	}

	return &Loader{
		columns:   cfg.Columns,
		delimiter: delim[0],
		norm:      cleaning.NewNormalizer(cfg.Cleaning),
		amenities: set,
		logger:    logger,
	}, nil
}

// AmenityColumns returns the indicator column names in vocabulary order.
func (l *Loader) AmenityColumns() []string {
	return l.amenities.Columns()
}

// Load reads the snapshot at path and returns the cleaned rows. Rows whose
// price cell does not parse are dropped; every other parse failure degrades
// to a missing value. Structural problems (unreadable file, missing required
// column, no data rows) are fatal.
func (l *Loader) Load(ctx context.Context, path string) ([]Listing, *LoadReport, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = l.readExcel(path)
	default:
		rows, err = l.readCSV(path)
	}
	if err != nil {
		return nil, nil, err
	}

	listings, report, err := l.parseRows(ctx, rows)
	if err != nil {
		return nil, nil, err
	}

	l.logger.InfoContext(ctx, "snapshot loaded",
		slog.String("path", path),
		slog.Int("total_rows", report.TotalRows),
		slog.Int("kept", report.Kept),
		slog.Int("dropped_no_price", report.DroppedNoPrice),
	)

	return listings, report, nil
}

func (l *Loader) readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = l.delimiter
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	return rows, nil
}

func (l *Loader) readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("snapshot %s: %w", path, ErrEmptyFile)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// mapHeader resolves the configured column names against the header row.
// Every column except the free-text title is required.
func (l *Loader) mapHeader(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		// A UTF-8 BOM survives csv parsing as part of the first cell.
		name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
		index[name] = i
	}

	required := map[string]string{
		"size":       l.columns.Size,
		"price":      l.columns.Price,
		"rent":       l.columns.Rent,
		"location":   l.columns.Location,
		"amenities":  l.columns.Amenities,
		"heating":    l.columns.Heating,
		"floor":      l.columns.Floor,
		"finish":     l.columns.Finish,
		"market":     l.columns.Market,
		"ownership":  l.columns.Ownership,
		"advertiser": l.columns.Advertiser,
	}

	columnMap := make(map[string]int, len(required)+1)
	for key, name := range required {
		idx, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s (%q)", ErrMissingColumn, key, name)
		}
		columnMap[key] = idx
	}

	if l.columns.Title != "" {
		if idx, ok := index[l.columns.Title]; ok {
			columnMap["title"] = idx
		}
	}

	return columnMap, nil
}

func (l *Loader) parseRows(ctx context.Context, rows [][]string) ([]Listing, *LoadReport, error) {
	if len(rows) == 0 {
		return nil, nil, ErrEmptyFile
	}

	columnMap, err := l.mapHeader(rows[0])
	if err != nil {
		return nil, nil, err
	}

	data := rows[1:]
	if len(data) == 0 {
		return nil, nil, ErrEmptyFile
	}

	cell := func(row []string, key string) string {
		idx, ok := columnMap[key]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	report := &LoadReport{TotalRows: len(data)}
	listings := make([]Listing, 0, len(data))

	for i, row := range data {
		price, ok := l.norm.Price(cell(row, "price"))
		if !ok || price <= 0 {
			report.DroppedNoPrice++
			l.logger.DebugContext(ctx, "dropped row without usable price",
				slog.Int("row", i+1),
				slog.String("raw_price", cell(row, "price")),
			)
			continue
		}

		listing := Listing{
			Title:      cell(row, "title"),
			Price:      price,
			Heating:    cell(row, "heating"),
			Floor:      cell(row, "floor"),
			Finish:     cell(row, "finish"),
			Market:     cell(row, "market"),
			Ownership:  cell(row, "ownership"),
			Advertiser: cell(row, "advertiser"),
			Amenities:  l.amenities.Extract(cell(row, "amenities")),
		}

		if size, ok := l.norm.Size(cell(row, "size")); ok && size > 0 {
			listing.Size = size
			listing.HasSize = true
			listing.PricePerArea = price / size
			listing.HasPricePerArea = true
		}

		if rent, ok := l.norm.Rent(cell(row, "rent")); ok {
			listing.Rent = rent
			listing.HasRent = true
		} else {
			listing.NoRentInfo = 1
		}

		loc := cleaning.DecomposeLocation(cell(row, "location"))
		listing.City = loc.City
		listing.Neighborhood = loc.Neighborhood
		listing.Region = loc.Region

		listings = append(listings, listing)
	}

	if len(listings) == 0 {
		return nil, nil, fmt.Errorf("no rows with a usable price: %w", ErrEmptyFile)
	}
	report.Kept = len(listings)

	return listings, report, nil
}
