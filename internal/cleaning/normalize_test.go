package cleaning

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"homeprice/internal/config"
)

func testNormalizer() *Normalizer {
	return NewNormalizer(config.Default().Cleaning)
}

func TestNormalizerSize(t *testing.T) {
	n := testNormalizer()

	tests := []struct {
		name    string
		raw     string
		want    float64
		present bool
	}{
		{"plain integer", "52 m²", 52, true},
		{"decimal comma", "52,5 m²", 52.5, true},
		{"no unit suffix", "47", 47, true},
		{"padded", "  61,30 m²  ", 61.3, true},
		{"thousands separator", "1 052,5 m²", 1052.5, true},
		{"empty", "", 0, false},
		{"malformed", "duży pokój", 0, false},
		{"negative", "-10 m²", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := n.Size(tt.raw)
			assert.Equal(t, tt.present, ok)
			if tt.present {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestNormalizerRent(t *testing.T) {
	n := testNormalizer()

	tests := []struct {
		name    string
		raw     string
		want    float64
		present bool
	}{
		{"typical", "650 zł", 650, true},
		{"thousands and decimal", "1 234,50 zł", 1234.50, true},
		{"sentinel", "brak informacji", 0, false},
		{"sentinel mixed case", "Brak Informacji", 0, false},
		{"empty", "", 0, false},
		{"garbage", "w cenie", 0, false},
		{"non-breaking space separator", "1 234,50 zł", 1234.50, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := n.Rent(tt.raw)
			assert.Equal(t, tt.present, ok)
			if tt.present {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestNormalizerPrice(t *testing.T) {
	n := testNormalizer()

	tests := []struct {
		name    string
		raw     string
		want    float64
		present bool
	}{
		{"round trip", "1 234,50 zł", 1234.50, true},
		{"large value", "1 250 000 zł", 1250000, true},
		{"ask sentinel", "Zapytaj o cenę", 0, false},
		{"ask sentinel lower", "zapytaj o cenę", 0, false},
		{"empty", "", 0, false},
		{"malformed", "ok. 500k", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := n.Price(tt.raw)
			assert.Equal(t, tt.present, ok)
			if tt.present {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}
