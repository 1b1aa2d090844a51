// Package randtool implements the randomness tools served over the wire.
//
// The non-secure tools (Int, Float, Choices, Shuffle) use math/rand/v2;
// the secure tools (TokenHex, SecureInt) use crypto/rand.
package randtool

import (
	cryptorand "crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"math/rand/v2"
)

// DefaultTokenBytes is the token size when nbytes is omitted.
const DefaultTokenBytes = 32

// Int returns a uniform random integer in [low, high].
func Int(low, high int64) (int64, error) {
	if low > high {
		return 0, fmt.Errorf("low must be <= high, got low=%d high=%d", low, high)
	}

	return low + rand.Int64N(high-low+1), nil
}

// Float returns a uniform random float in [low, high).
func Float(low, high float64) (float64, error) {
	if low > high {
		return 0, fmt.Errorf("low must be <= high, got low=%v high=%v", low, high)
	}

	return low + rand.Float64()*(high-low), nil
}

// Choices returns k elements chosen from population with replacement.
//
// When weights is nil, choices are uniform. Otherwise weights must have one
// non-negative entry per population element and a positive total.
func Choices(population []any, k int, weights []float64) ([]any, error) {
	if len(population) == 0 {
		return nil, fmt.Errorf("population must be non-empty")
	}

	if k < 1 {
		return nil, fmt.Errorf("k must be >= 1, got %d", k)
	}

	if weights == nil {
		chosen := make([]any, k)
		for i := range chosen {
			chosen[i] = population[rand.IntN(len(population))]
		}

		return chosen, nil
	}

	if len(weights) != len(population) {
		return nil, fmt.Errorf("weights length %d does not match population length %d", len(weights), len(population))
	}

	// Cumulative distribution for weighted selection.
	cum := make([]float64, len(weights))
	total := 0.0

	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("weights must be non-negative, got %v at index %d", w, i)
		}

		total += w
		cum[i] = total
	}

	if total <= 0 {
		return nil, fmt.Errorf("total of weights must be greater than zero")
	}

	chosen := make([]any, k)

	for i := range chosen {
		r := rand.Float64() * total

		idx := 0
		for idx < len(cum)-1 && r >= cum[idx] {
			idx++
		}

		chosen[i] = population[idx]
	}

	return chosen, nil
}

// Shuffle returns a new slice holding a random permutation of items.
// The input slice is not modified.
func Shuffle(items []any) []any {
	shuffled := make([]any, len(items))
	copy(shuffled, items)

	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled
}

// TokenHex returns a cryptographically secure random hex token of nbytes
// bytes (2*nbytes hex characters).
func TokenHex(nbytes int) (string, error) {
	if nbytes < 1 {
		return "", fmt.Errorf("nbytes must be >= 1, got %d", nbytes)
	}

	buf := make([]byte, nbytes)
	if _, err := cryptorand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// SecureInt returns a cryptographically secure random integer in
// [0, upperBound).
func SecureInt(upperBound int64) (int64, error) {
	if upperBound < 1 {
		return 0, fmt.Errorf("upper_bound must be >= 1, got %d", upperBound)
	}

	n, err := cryptorand.Int(cryptorand.Reader, big.NewInt(upperBound))
	if err != nil {
		return 0, fmt.Errorf("read random int: %w", err)
	}

	return n.Int64(), nil
}
