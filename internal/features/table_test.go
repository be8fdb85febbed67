package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeprice/internal/dataset"
)

func TestBuildTable(t *testing.T) {
	amenityCols := []string{"balkon", "piwnica"}
	rows := []dataset.Listing{
		{
			Price: 500000, Size: 50, HasSize: true,
			Rent: 600, HasRent: true,
			PricePerArea: 10000, HasPricePerArea: true,
			Neighborhood: "Mokotów", Market: "wtórny",
			Amenities: []float64{1, 0},
		},
		{
			Price:      400000,
			NoRentInfo: 1,
			Amenities:  []float64{0, 1},
		},
	}

	table, err := BuildTable(rows, amenityCols)
	require.NoError(t, err)

	assert.Equal(t, 2, table.N)
	assert.Equal(t, 600.0, table.Numeric[ColRent][0])
	assert.True(t, math.IsNaN(table.Numeric[ColRent][1]))
	assert.True(t, math.IsNaN(table.Numeric[ColSize][1]))
	assert.True(t, math.IsNaN(table.Numeric[ColPricePerArea][1]))
	assert.Equal(t, []float64{0, 1}, table.Numeric[ColNoRentInfo])
	assert.Equal(t, []float64{1, 0}, table.Numeric["balkon"])
	assert.Equal(t, []float64{0, 1}, table.Numeric["piwnica"])
	assert.Equal(t, []string{"Mokotów", ""}, table.Categorical[ColNeighborhood])
	assert.Equal(t, []string{"wtórny", ""}, table.Categorical[ColMarket])
}

func TestBuildTableAmenityMismatch(t *testing.T) {
	rows := []dataset.Listing{{Price: 1, Amenities: []float64{1}}}
	_, err := BuildTable(rows, []string{"balkon", "piwnica"})
	assert.Error(t, err)
}

func TestBuildTableEmpty(t *testing.T) {
	_, err := BuildTable(nil, nil)
	assert.Error(t, err)
}

func TestDefaultGroups(t *testing.T) {
	g := DefaultGroups([]string{"balkon", "taras"})

	assert.Equal(t, []string{ColSize, ColRent, ColNoRentInfo, ColPricePerArea, "balkon", "taras"}, g.Numeric)
	assert.Contains(t, g.Categorical, ColNeighborhood)
	assert.NotContains(t, g.Categorical, "city")
	assert.NotContains(t, g.Categorical, "region")
}
