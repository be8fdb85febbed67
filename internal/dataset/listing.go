// Package dataset handles snapshot ingestion: reading the scraped listing
// file, applying row-level cleaning, and partitioning rows for training.
package dataset

// Listing is one cleaned row of the snapshot. Rows are constructed once by
// the loader and may only be removed afterwards (price parse failure at load,
// fence violation at the outlier stage), never re-created.
type Listing struct {
	Title string

	Size    float64
	HasSize bool

	Rent    float64
	HasRent bool
	// NoRentInfo is 1 when the rent cell did not parse to a number. The
	// indicator is derived before any imputation so the signal survives.
	NoRentInfo float64

	// Price is the training target; every retained row has Price > 0.
	Price float64

	PricePerArea    float64
	HasPricePerArea bool

	City         string
	Neighborhood string
	Region       string

	Heating    string
	Floor      string
	Finish     string
	Market     string
	Ownership  string
	Advertiser string

	// Amenities holds one 0/1 indicator per vocabulary phrase, in
	// vocabulary order.
	Amenities []float64
}
