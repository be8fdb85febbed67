package exporter

import (
	"strconv"
	"time"

	"homeprice/internal/dataset"
	"homeprice/internal/evaluate"
)

// ExportCleaned writes the cleaned dataset as it entered training. Amenity
// columns follow the vocabulary order used during extraction.
func (w *CSVWriter) ExportCleaned(name string, rows []dataset.Listing, amenityCols []string) (string, error) {
	headers := []string{
		"price", "size", "price_per_area", "rent", "no_rent_info",
		"city", "neighborhood", "region",
		"heating", "floor", "finish_condition", "market", "ownership", "advertiser",
	}
	headers = append(headers, amenityCols...)

	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		rec := []string{
			formatFloat(r.Price, 2),
			formatOptional(r.Size, r.HasSize, 2),
			formatOptional(r.PricePerArea, r.HasPricePerArea, 2),
			formatOptional(r.Rent, r.HasRent, 2),
			formatFloat(r.NoRentInfo, 0),
			r.City, r.Neighborhood, r.Region,
			r.Heating, r.Floor, r.Finish, r.Market, r.Ownership, r.Advertiser,
		}
		for _, a := range r.Amenities {
			rec = append(rec, formatFloat(a, 0))
		}
		records = append(records, rec)
	}

	return w.WriteCSV(name, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

// RunSummary captures the shape of one training run for the summary export.
type RunSummary struct {
	RunID          string
	StartedAt      time.Time
	InputPath      string
	TotalRows      int
	DroppedNoPrice int
	AfterFences    int
	TrainRows      int
	TestRows       int
	FeatureWidth   int
	Metrics        evaluate.Metrics
}

// ExportSummary writes a one-row summary of the run.
func (w *CSVWriter) ExportSummary(name string, s RunSummary) (string, error) {
	headers := []string{
		"run_id", "started_at", "input_path",
		"total_rows", "dropped_no_price", "after_fences",
		"train_rows", "test_rows", "feature_width",
		"mae", "rmse",
	}
	record := []string{
		s.RunID,
		s.StartedAt.Format(time.RFC3339),
		s.InputPath,
		strconv.Itoa(s.TotalRows),
		strconv.Itoa(s.DroppedNoPrice),
		strconv.Itoa(s.AfterFences),
		strconv.Itoa(s.TrainRows),
		strconv.Itoa(s.TestRows),
		strconv.Itoa(s.FeatureWidth),
		formatFloat(s.Metrics.MAE, 2),
		formatFloat(s.Metrics.RMSE, 2),
	}

	return w.WriteCSV(name, WriteOptions{
		Headers: headers,
		Records: [][]string{record},
	})
}

func formatFloat(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func formatOptional(v float64, present bool, precision int) string {
	if !present {
		return ""
	}
	return formatFloat(v, precision)
}
