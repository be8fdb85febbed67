package cleaning

import (
	"math"
	"strconv"
	"strings"

	"homeprice/internal/config"
)

// Normalizer parses locale-formatted numeric text cells into float64 values.
// A false second return value marks the cell as missing; the caller decides
// whether missing is imputable (size, rent) or drops the row (price).
type Normalizer struct {
	sizeUnit       string
	currencySuffix string
	rentSentinel   string
	priceSentinel  string
}

// NewNormalizer builds a normalizer from the cleaning configuration.
func NewNormalizer(cfg config.CleaningConfig) *Normalizer {
	return &Normalizer{
		sizeUnit:       cfg.SizeUnit,
		currencySuffix: cfg.CurrencySuffix,
		rentSentinel:   cfg.RentSentinel,
		priceSentinel:  cfg.PriceSentinel,
	}
}

// Size parses a size cell such as "52,5 m²" into square meters.
// Malformed input is reported as missing; such rows survive until the size
// outlier stage, where a missing value passes neither fence condition.
func (n *Normalizer) Size(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.TrimSuffix(s, n.sizeUnit)
	return parseLocaleFloat(s)
}

// Rent parses a rent cell such as "1 234,50 zł". The scrape uses a fixed
// sentinel phrase when the advertiser gave no rent information.
func (n *Normalizer) Rent(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, n.rentSentinel) {
		return 0, false
	}
	s = strings.TrimSuffix(s, n.currencySuffix)
	return parseLocaleFloat(s)
}

// Price parses a price cell. The "ask for price" sentinel and any other
// unparseable value are reported as missing; the loader drops such rows
// because an un-priced listing cannot supervise the model.
func (n *Normalizer) Price(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, n.priceSentinel) {
		return 0, false
	}
	s = strings.TrimSuffix(s, n.currencySuffix)
	return parseLocaleFloat(s)
}

// parseLocaleFloat handles the Polish formatting of the snapshot: interior
// spaces (including non-breaking variants) as thousands separators and a
// decimal comma.
func parseLocaleFloat(s string) (float64, bool) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', ' ', ' ':
			return -1
		}
		return r
	}, s)
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}
