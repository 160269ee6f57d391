package sampler

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRng(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestSampleSize(t *testing.T) {
	candidates := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		k        int
		expected int
	}{
		{0, 0},
		{-1, 0},
		{1, 1},
		{3, 3},
		{5, 5},
		{10, 5},
	}

	for _, tc := range tests {
		got := Sample(newRng(1), candidates, tc.k)
		assert.Len(t, got, tc.expected, "k=%d", tc.k)
	}
}

func TestSampleEmptyCandidates(t *testing.T) {
	assert.Empty(t, Sample(newRng(1), []int(nil), 3))
	assert.Empty(t, Sample(newRng(1), []int{}, 3))
}

func TestSampleDistinctAndDrawnFromCandidates(t *testing.T) {
	candidates := []int{10, 20, 30, 40, 50, 60}

	for seed := uint64(1); seed <= 50; seed++ {
		got := Sample(newRng(seed), candidates, 4)
		require.Len(t, got, 4)

		seen := map[int]struct{}{}
		for _, v := range got {
			_, dup := seen[v]
			require.False(t, dup, "duplicate element %d (seed %d)", v, seed)
			seen[v] = struct{}{}
			assert.Contains(t, candidates, v)
		}
	}
}

func TestSampleDoesNotMutateCandidates(t *testing.T) {
	candidates := []string{"마피아", "스플렌더", "펭귄파티", "카탄"}
	before := make([]string, len(candidates))
	copy(before, candidates)

	for seed := uint64(1); seed <= 20; seed++ {
		Sample(newRng(seed), candidates, 3)
	}

	assert.Equal(t, before, candidates)
}

func TestSampleDeterministicForFixedSource(t *testing.T) {
	candidates := []int{1, 2, 3, 4, 5, 6, 7}

	first := Sample(newRng(42), candidates, 3)
	second := Sample(newRng(42), candidates, 3)
	assert.Equal(t, first, second)
}

func TestSampleCoversAllElements(t *testing.T) {
	// With enough seeds every candidate should appear at least once.
	candidates := []int{1, 2, 3, 4}
	seen := map[int]struct{}{}

	for seed := uint64(1); seed <= 100; seed++ {
		for _, v := range Sample(newRng(seed), candidates, 2) {
			seen[v] = struct{}{}
		}
	}

	assert.Len(t, seen, len(candidates))
}
