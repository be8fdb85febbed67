package features

import (
	"fmt"
	"math"

	"homeprice/internal/dataset"
)

// Canonical column names produced from a Listing. Amenity indicator columns
// are appended to the numeric group in vocabulary order.
const (
	ColSize         = "size"
	ColRent         = "rent"
	ColNoRentInfo   = "no_rent_info"
	ColPricePerArea = "price_per_area"

	ColHeating      = "heating"
	ColFloor        = "floor"
	ColFinish       = "finish_condition"
	ColMarket       = "market"
	ColOwnership    = "ownership"
	ColAdvertiser   = "advertiser"
	ColNeighborhood = "neighborhood"
)

// ColumnGroups names the columns each pipeline branch consumes. Groups are
// explicit values handed to the pipeline rather than package constants so
// tests can run with synthetic schemas.
type ColumnGroups struct {
	Numeric     []string
	Categorical []string
}

// DefaultGroups returns the standard grouping: size, rent, the rent-missing
// indicator, price-per-area and all amenity indicators on the numeric branch;
// the six categorical source columns plus the derived neighborhood on the
// categorical branch. City and region stay on the record but outside the
// matrix.
func DefaultGroups(amenityCols []string) ColumnGroups {
	numeric := []string{ColSize, ColRent, ColNoRentInfo, ColPricePerArea}
	numeric = append(numeric, amenityCols...)
	return ColumnGroups{
		Numeric: numeric,
		Categorical: []string{
			ColHeating, ColFloor, ColFinish, ColMarket,
			ColOwnership, ColAdvertiser, ColNeighborhood,
		},
	}
}

// Table is a column-oriented view of cleaned rows. NaN marks a missing
// numeric value, the empty string a missing categorical one.
type Table struct {
	N           int
	Numeric     map[string][]float64
	Categorical map[string][]string
}

// BuildTable assembles the column view of rows. amenityCols must match the
// vocabulary the rows were extracted with.
func BuildTable(rows []dataset.Listing, amenityCols []string) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows to assemble")
	}

	n := len(rows)
	t := &Table{
		N:           n,
		Numeric:     make(map[string][]float64),
		Categorical: make(map[string][]string),
	}

	numeric := func(name string) []float64 {
		col := make([]float64, n)
		t.Numeric[name] = col
		return col
	}
	categorical := func(name string) []string {
		col := make([]string, n)
		t.Categorical[name] = col
		return col
	}

	size := numeric(ColSize)
	rent := numeric(ColRent)
	noRent := numeric(ColNoRentInfo)
	ppa := numeric(ColPricePerArea)
	amenities := make([][]float64, len(amenityCols))
	for j, name := range amenityCols {
		amenities[j] = numeric(name)
	}

	heating := categorical(ColHeating)
	floor := categorical(ColFloor)
	finish := categorical(ColFinish)
	market := categorical(ColMarket)
	ownership := categorical(ColOwnership)
	advertiser := categorical(ColAdvertiser)
	neighborhood := categorical(ColNeighborhood)

	for i, r := range rows {
		if len(r.Amenities) != len(amenityCols) {
			return nil, fmt.Errorf("row %d has %d amenity indicators, vocabulary has %d",
				i, len(r.Amenities), len(amenityCols))
		}

		size[i] = missingUnless(r.Size, r.HasSize)
		rent[i] = missingUnless(r.Rent, r.HasRent)
		noRent[i] = r.NoRentInfo
		ppa[i] = missingUnless(r.PricePerArea, r.HasPricePerArea)
		for j := range amenityCols {
			amenities[j][i] = r.Amenities[j]
		}

		heating[i] = r.Heating
		floor[i] = r.Floor
		finish[i] = r.Finish
		market[i] = r.Market
		ownership[i] = r.Ownership
		advertiser[i] = r.Advertiser
		neighborhood[i] = r.Neighborhood
	}

	return t, nil
}

func missingUnless(v float64, present bool) float64 {
	if !present {
		return math.NaN()
	}
	return v
}
