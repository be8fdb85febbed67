package cleaning

import (
	"fmt"
	"regexp"
	"strings"
)

var slugSeparators = regexp.MustCompile(`[ /]+`)

// AmenitySlug derives the indicator column name for an amenity phrase:
// lower-cased, with space and slash runs collapsed to a single underscore.
// The mapping is deterministic so repeated runs produce identical schemas.
func AmenitySlug(phrase string) string {
	s := strings.ToLower(strings.TrimSpace(phrase))
	return slugSeparators.ReplaceAllString(s, "_")
}

// AmenitySet scans a free-text amenities field for a fixed, ordered
// vocabulary of phrases and emits one 0/1 indicator per phrase.
type AmenitySet struct {
	phrases []string
	folded  []string
	columns []string
}

// NewAmenitySet validates the vocabulary and precomputes folded phrases and
// column names. Two phrases mapping to the same column are a configuration
// error.
func NewAmenitySet(phrases []string) (*AmenitySet, error) {
	if len(phrases) == 0 {
		return nil, fmt.Errorf("amenity vocabulary is empty")
	}

	set := &AmenitySet{
		phrases: make([]string, 0, len(phrases)),
		folded:  make([]string, 0, len(phrases)),
		columns: make([]string, 0, len(phrases)),
	}
	seen := make(map[string]string, len(phrases))

	for _, phrase := range phrases {
		p := strings.TrimSpace(phrase)
		if p == "" {
			return nil, fmt.Errorf("amenity vocabulary contains an empty phrase")
		}
		col := AmenitySlug(p)
		if prev, ok := seen[col]; ok {
			return nil, fmt.Errorf("amenity column %q produced by both %q and %q", col, prev, p)
		}
		seen[col] = p

		set.phrases = append(set.phrases, p)
		set.folded = append(set.folded, strings.ToLower(p))
		set.columns = append(set.columns, col)
	}

	return set, nil
}

// Columns returns the indicator column names in vocabulary order.
func (s *AmenitySet) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// Len returns the vocabulary size.
func (s *AmenitySet) Len() int {
	return len(s.phrases)
}

// Extract returns one indicator per vocabulary phrase: 1 if the phrase occurs
// as a case-insensitive substring of the field, 0 otherwise. A missing or
// empty field yields all zeros, never an error.
func (s *AmenitySet) Extract(raw string) []float64 {
	out := make([]float64, len(s.folded))

	field := strings.ToLower(strings.TrimSpace(raw))
	if field == "" {
		return out
	}

	for i, phrase := range s.folded {
		if strings.Contains(field, phrase) {
			out[i] = 1
		}
	}
	return out
}
