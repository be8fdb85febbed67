package cleaning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeprice/internal/config"
)

func TestAmenitySlug(t *testing.T) {
	tests := []struct {
		phrase string
		want   string
	}{
		{"balkon", "balkon"},
		{"garaż/miejsce parkingowe", "garaż_miejsce_parkingowe"},
		{"oddzielna kuchnia", "oddzielna_kuchnia"},
		{"pom. użytkowe", "pom._użytkowe"},
		{"  Taras  ", "taras"},
		{"a / b", "a_b"},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			assert.Equal(t, tt.want, AmenitySlug(tt.phrase))
		})
	}
}

func TestNewAmenitySetValidation(t *testing.T) {
	_, err := NewAmenitySet(nil)
	assert.Error(t, err)

	_, err = NewAmenitySet([]string{"balkon", "  "})
	assert.Error(t, err)

	// Distinct phrases colliding on the same column name.
	_, err = NewAmenitySet([]string{"a b", "a/b"})
	assert.Error(t, err)
}

func TestAmenitySetExtract(t *testing.T) {
	set, err := NewAmenitySet(config.Default().Cleaning.AmenityVocabulary)
	require.NoError(t, err)
	require.Equal(t, 7, set.Len())

	cols := set.Columns()
	require.Equal(t, []string{
		"balkon",
		"taras",
		"garaż_miejsce_parkingowe",
		"piwnica",
		"oddzielna_kuchnia",
		"ogródek",
		"pom._użytkowe",
	}, cols)

	t.Run("missing field yields all zeros", func(t *testing.T) {
		assert.Equal(t, make([]float64, 7), set.Extract(""))
		assert.Equal(t, make([]float64, 7), set.Extract("   "))
	})

	t.Run("case-insensitive substring match", func(t *testing.T) {
		got := set.Extract("BALKON, piwnica, Ogródek")
		want := []float64{1, 0, 0, 1, 0, 1, 0}
		assert.Equal(t, want, got)
	})

	t.Run("multi-word phrase", func(t *testing.T) {
		got := set.Extract("garaż/miejsce parkingowe, oddzielna kuchnia")
		assert.Equal(t, 1.0, got[2])
		assert.Equal(t, 1.0, got[4])
	})

	t.Run("unrelated text yields zeros", func(t *testing.T) {
		assert.Equal(t, make([]float64, 7), set.Extract("winda, ochrona"))
	})

	t.Run("repeated runs produce identical schema", func(t *testing.T) {
		other, err := NewAmenitySet(config.Default().Cleaning.AmenityVocabulary)
		require.NoError(t, err)
		assert.Equal(t, cols, other.Columns())
	})
}
