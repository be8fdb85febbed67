package cleaning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecomposeLocation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Location
	}{
		{
			name: "four tokens",
			raw:  "Mokotów, Śródmieście, Warszawa, mazowieckie",
			want: Location{City: "Warszawa", Neighborhood: "Śródmieście", Region: "mazowieckie"},
		},
		{
			name: "street prefix",
			raw:  "ul. Puławska 12, Stegny, Mokotów, Warszawa, mazowieckie",
			want: Location{City: "Warszawa", Neighborhood: "Mokotów", Region: "mazowieckie"},
		},
		{
			name: "three tokens",
			raw:  "Śródmieście, Warszawa, mazowieckie",
			want: Location{City: "Warszawa", Neighborhood: "Śródmieście", Region: "mazowieckie"},
		},
		{
			name: "two tokens",
			raw:  "Warszawa, mazowieckie",
			want: Location{City: "Warszawa", Region: "mazowieckie"},
		},
		{
			name: "single token",
			raw:  "Warszawa",
			want: Location{},
		},
		{
			name: "empty",
			raw:  "",
			want: Location{},
		},
		{
			name: "only commas",
			raw:  ", ,",
			want: Location{},
		},
		{
			name: "untrimmed tokens",
			raw:  "  Śródmieście ,  Warszawa ,  mazowieckie ",
			want: Location{City: "Warszawa", Neighborhood: "Śródmieście", Region: "mazowieckie"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecomposeLocation(tt.raw))
		})
	}
}
