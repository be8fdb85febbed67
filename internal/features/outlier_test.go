package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeprice/internal/dataset"
)

func priceOf(r dataset.Listing) (float64, bool) { return r.Price, true }

func sizeOf(r dataset.Listing) (float64, bool) { return r.Size, r.HasSize }

func pricedRows(prices ...float64) []dataset.Listing {
	rows := make([]dataset.Listing, len(prices))
	for i, p := range prices {
		rows[i] = dataset.Listing{Price: p}
	}
	return rows
}

func TestIQRFenceScalesWithDistribution(t *testing.T) {
	small := []float64{10, 20, 30, 40, 50}
	large := []float64{1000, 2000, 3000, 4000, 5000}

	fenceSmall, err := IQRFence(small, 1.5)
	require.NoError(t, err)
	fenceLarge, err := IQRFence(large, 1.5)
	require.NoError(t, err)

	// Fences are recomputed per call from the data, never fixed constants.
	assert.NotEqual(t, fenceSmall.Lower, fenceLarge.Lower)
	assert.NotEqual(t, fenceSmall.Upper, fenceLarge.Upper)
	assert.Less(t, fenceSmall.Upper, fenceLarge.Upper)

	assert.Less(t, fenceSmall.Q1, fenceSmall.Q3)
	assert.InDelta(t, fenceSmall.Q1-1.5*(fenceSmall.Q3-fenceSmall.Q1), fenceSmall.Lower, 1e-9)
	assert.InDelta(t, fenceSmall.Q3+1.5*(fenceSmall.Q3-fenceSmall.Q1), fenceSmall.Upper, 1e-9)
}

func TestIQRFenceIgnoresMissing(t *testing.T) {
	withNaN := []float64{10, 20, math.NaN(), 30, 40, 50, math.Inf(1)}
	clean := []float64{10, 20, 30, 40, 50}

	a, err := IQRFence(withNaN, 1.5)
	require.NoError(t, err)
	b, err := IQRFence(clean, 1.5)
	require.NoError(t, err)

	assert.Equal(t, b, a)
}

func TestIQRFenceErrors(t *testing.T) {
	_, err := IQRFence(nil, 1.5)
	assert.Error(t, err)

	_, err = IQRFence([]float64{math.NaN()}, 1.5)
	assert.Error(t, err)

	_, err = IQRFence([]float64{1, 2, 3}, 0)
	assert.Error(t, err)
}

func TestFenceContainsIsStrictAndNaNSafe(t *testing.T) {
	f := Fence{Lower: 0, Upper: 10}

	assert.True(t, f.Contains(5))
	assert.False(t, f.Contains(0))
	assert.False(t, f.Contains(10))
	assert.False(t, f.Contains(math.NaN()))
}

func TestFilterRowsRemovesOutliers(t *testing.T) {
	rows := pricedRows(100, 110, 105, 95, 102, 98, 104, 99, 101, 106, 5000)

	kept, fence, err := FilterRows(rows, priceOf, 1.5)
	require.NoError(t, err)

	assert.Less(t, len(kept), len(rows))
	for _, r := range kept {
		assert.True(t, fence.Contains(r.Price))
	}
	for _, r := range kept {
		assert.NotEqual(t, 5000.0, r.Price)
	}
}

func TestFilterRowsDropsMissingValues(t *testing.T) {
	rows := []dataset.Listing{
		{Size: 50, HasSize: true},
		{Size: 55, HasSize: true},
		{Size: 60, HasSize: true},
		{HasSize: false},
		{Size: 52, HasSize: true},
	}

	kept, _, err := FilterRows(rows, sizeOf, 1.5)
	require.NoError(t, err)

	assert.Len(t, kept, 4)
	for _, r := range kept {
		assert.True(t, r.HasSize)
	}
}

func TestFilterRowsSequentialApplications(t *testing.T) {
	// The second application computes its quartiles on the already-filtered
	// set, so an extreme size that rides along with an extreme price is
	// judged against the post-price-filter distribution.
	rows := []dataset.Listing{
		{Price: 100, Size: 50, HasSize: true},
		{Price: 105, Size: 52, HasSize: true},
		{Price: 98, Size: 49, HasSize: true},
		{Price: 103, Size: 51, HasSize: true},
		{Price: 101, Size: 48, HasSize: true},
		{Price: 9000, Size: 800, HasSize: true},
	}

	afterPrice, _, err := FilterRows(rows, priceOf, 1.5)
	require.NoError(t, err)
	require.Len(t, afterPrice, 5)

	afterSize, sizeFence, err := FilterRows(afterPrice, sizeOf, 1.5)
	require.NoError(t, err)
	assert.Len(t, afterSize, 5)

	// Fence was computed without the 800 m² row.
	assert.False(t, sizeFence.Contains(800))
}
