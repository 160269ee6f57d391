// Package sampler draws bounded random recommendations.
package sampler

import "math/rand/v2"

// Sample returns min(k, len(candidates)) distinct elements drawn uniformly
// without replacement. The candidates slice is never mutated; the selection
// shuffles a copy. Callers inject the rand source so tests can pin the
// outcome.
func Sample[T any](rng *rand.Rand, candidates []T, k int) []T {
	if k <= 0 || len(candidates) == 0 {
		return nil
	}
	if k > len(candidates) {
		k = len(candidates)
	}

	picked := make([]T, len(candidates))
	copy(picked, candidates)

	// partial Fisher-Yates: only the first k positions need settling
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}

	return picked[:k:k]
}
