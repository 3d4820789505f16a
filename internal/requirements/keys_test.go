package requirements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Oil Type":              "oil-type",
		"  Tire size (front) ":  "tire-size-front",
		"Pneus d'hiver été":     "pneus-d-hiver-ete",
		"oil-change":            "oil-change",
		"!!!":                   "",
		"Last  Change -- Date ": "last-change-date",
	}

	for input, want := range tests {
		assert.Equal(t, want, Slugify(input), input)
	}
}

func TestFinalizeKey(t *testing.T) {
	key, err := FinalizeKey("Oil Type", "oil-change", nil)
	require.NoError(t, err)
	assert.Equal(t, "oil-change_oil-type", key)
}

func TestFinalizeKey_CollisionGetsSuffix(t *testing.T) {
	existing := []string{"oil-change_oil-type"}

	key, err := FinalizeKey("Oil type!", "oil-change", existing)
	require.NoError(t, err)
	assert.Equal(t, "oil-change_oil-type_2", key)

	existing = append(existing, key)
	key, err = FinalizeKey("OIL TYPE", "oil-change", existing)
	require.NoError(t, err)
	assert.Equal(t, "oil-change_oil-type_3", key)
}

func TestFinalizeKey_EmptyLabel(t *testing.T) {
	_, err := FinalizeKey("???", "oil-change", nil)
	assert.ErrorIs(t, err, ErrEmptyKey)
}
