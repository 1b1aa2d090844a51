package randtool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt_StaysInRange(t *testing.T) {
	for range 200 {
		n, err := Int(-10, 10)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, int64(-10))
		assert.LessOrEqual(t, n, int64(10))
	}

	// Degenerate range is allowed.
	n, err := Int(5, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

func TestInt_InvalidRange(t *testing.T) {
	_, err := Int(10, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "low must be <= high")
}

func TestFloat_StaysInRange(t *testing.T) {
	for range 200 {
		f, err := Float(2.5, 7.5)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, f, 2.5)
		assert.Less(t, f, 7.5)
	}
}

func TestFloat_InvalidRange(t *testing.T) {
	_, err := Float(1.0, 0.0)
	assert.Error(t, err)
}

func TestChoices_Uniform(t *testing.T) {
	population := []any{"apple", "banana", "cherry"}

	chosen, err := Choices(population, 5, nil)
	require.NoError(t, err)
	require.Len(t, chosen, 5)

	for _, c := range chosen {
		assert.Contains(t, population, c)
	}
}

func TestChoices_WeightedNeverPicksZeroWeight(t *testing.T) {
	population := []any{"a", "b", "c"}
	weights := []float64{1, 0, 0}

	chosen, err := Choices(population, 50, weights)
	require.NoError(t, err)

	for _, c := range chosen {
		assert.Equal(t, "a", c)
	}
}

func TestChoices_Errors(t *testing.T) {
	tests := []struct {
		name       string
		population []any
		k          int
		weights    []float64
		wantMsg    string
	}{
		{"empty population", []any{}, 1, nil, "population must be non-empty"},
		{"k below one", []any{"a"}, 0, nil, "k must be >= 1"},
		{"weights length mismatch", []any{"a", "b"}, 1, []float64{1}, "does not match"},
		{"negative weight", []any{"a", "b"}, 1, []float64{1, -1}, "non-negative"},
		{"zero total weight", []any{"a", "b"}, 1, []float64{0, 0}, "greater than zero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Choices(tt.population, tt.k, tt.weights)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestShuffle_ReturnsPermutationWithoutMutatingInput(t *testing.T) {
	items := []any{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	original := make([]any, len(items))
	copy(original, items)

	shuffled := Shuffle(items)

	assert.Equal(t, original, items)
	assert.ElementsMatch(t, original, shuffled)
	assert.Len(t, shuffled, len(original))
}

func TestShuffle_Empty(t *testing.T) {
	assert.Empty(t, Shuffle(nil))
}

func TestTokenHex(t *testing.T) {
	token, err := TokenHex(16)
	require.NoError(t, err)
	assert.Len(t, token, 32)

	token2, err := TokenHex(16)
	require.NoError(t, err)
	assert.NotEqual(t, token, token2)
}

func TestTokenHex_InvalidBytes(t *testing.T) {
	_, err := TokenHex(-1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nbytes must be >= 1")

	_, err = TokenHex(0)
	assert.Error(t, err)
}

func TestSecureInt_StaysInRange(t *testing.T) {
	for range 200 {
		n, err := SecureInt(6)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, int64(0))
		assert.Less(t, n, int64(6))
	}
}

func TestSecureInt_InvalidBound(t *testing.T) {
	_, err := SecureInt(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upper_bound must be >= 1")
}
