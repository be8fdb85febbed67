package cleaning

import "strings"

// Location holds the tokens extracted from a combined location field.
// An empty string marks a part that could not be extracted.
type Location struct {
	City         string
	Neighborhood string
	Region       string
}

// DecomposeLocation splits a comma-separated hierarchical location string
// ("<...>, <neighborhood>, <city>, <region>") into its trailing tokens.
// The transform is one-way and lossy; the combined field is discarded after
// extraction.
//
// With fewer than three tokens only the parts that still have an anchored
// position are extracted: two tokens yield city and region, a single token
// yields nothing (a bare string cannot be told apart from any of the levels).
func DecomposeLocation(raw string) Location {
	var loc Location

	s := strings.TrimSpace(raw)
	if s == "" || !strings.Contains(s, ",") {
		return loc
	}

	parts := strings.Split(s, ",")
	tokens := parts[:0]
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tokens = append(tokens, t)
		}
	}

	n := len(tokens)
	switch {
	case n >= 3:
		loc.Neighborhood = tokens[n-3]
		loc.City = tokens[n-2]
		loc.Region = tokens[n-1]
	case n == 2:
		loc.City = tokens[0]
		loc.Region = tokens[1]
	}

	return loc
}
