package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDealNumbers_DistinctAndInPool(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	participants := []string{"a", "b", "c", "d", "e"}

	numbers := dealNumbers(participants, rng)

	require.Len(t, numbers, 5)
	seen := map[int]bool{}
	for _, pid := range participants {
		n := numbers[pid]
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, NumberPoolSize)
		assert.False(t, seen[n], "number %d dealt twice", n)
		seen[n] = true
	}
}

func TestDealNumbers_FullTable(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	participants := make([]string, NumberPoolSize)
	for i := range participants {
		participants[i] = string(rune('a' + i))
	}

	numbers := dealNumbers(participants, rng)

	// With 10 participants the whole pool must be dealt exactly once.
	used := map[int]bool{}
	for _, n := range numbers {
		used[n] = true
	}
	assert.Len(t, used, NumberPoolSize)
}

func TestComputeTrueOrder_Ascending(t *testing.T) {
	participants := []string{"a", "b", "c"}
	numbers := map[string]int{"a": 7, "b": 2, "c": 9}

	order := computeTrueOrder(participants, numbers)

	assert.Equal(t, []string{"b", "a", "c"}, order)
	// Input slice untouched.
	assert.Equal(t, []string{"a", "b", "c"}, participants)
}

func TestValidateOrdering(t *testing.T) {
	participants := []string{"a", "b", "c"}

	assert.True(t, validateOrdering([]string{"c", "a", "b"}, participants))
	assert.False(t, validateOrdering([]string{"a", "b"}, participants), "size mismatch")
	assert.False(t, validateOrdering([]string{"a", "b", "b"}, participants), "duplicate")
	assert.False(t, validateOrdering([]string{"a", "b", "x"}, participants), "stranger")
	assert.False(t, validateOrdering([]string{"a", "b", "c", "c"}, participants))
}

func TestScoreOrdering_ExactMatchOnly(t *testing.T) {
	trueOrder := []string{"b", "a", "c"}

	assert.True(t, scoreOrdering([]string{"b", "a", "c"}, trueOrder))
	// Any adjacent swap loses.
	assert.False(t, scoreOrdering([]string{"a", "b", "c"}, trueOrder))
	assert.False(t, scoreOrdering([]string{"b", "c", "a"}, trueOrder))
}
