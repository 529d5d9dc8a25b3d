package game

import (
	"math/rand"
	"sort"
)

// NumberPoolSize is the size of the card pool numbers are dealt from.
// It must be at least HardMaxPlayers so every participant gets a card.
const NumberPoolSize = 10

// dealNumbers draws one distinct number per participant from 1..NumberPoolSize.
// A full shuffle truncated to the participant count guarantees injectivity;
// independent draws could repeat.
func dealNumbers(participants []string, rng *rand.Rand) map[string]int {
	perm := rng.Perm(NumberPoolSize)
	numbers := make(map[string]int, len(participants))
	for i, pid := range participants {
		numbers[pid] = perm[i] + 1
	}
	return numbers
}

// computeTrueOrder sorts participants ascending by dealt number. Numbers are
// distinct within a round so the order is total.
func computeTrueOrder(participants []string, numbers map[string]int) []string {
	order := make([]string, len(participants))
	copy(order, participants)
	sort.SliceStable(order, func(i, j int) bool {
		return numbers[order[i]] < numbers[order[j]]
	})
	return order
}

// validateOrdering reports whether submitted is a permutation of participants.
func validateOrdering(submitted, participants []string) bool {
	if len(submitted) != len(participants) {
		return false
	}
	seen := make(map[string]bool, len(participants))
	for _, pid := range participants {
		seen[pid] = true
	}
	dup := make(map[string]bool, len(submitted))
	for _, pid := range submitted {
		if !seen[pid] || dup[pid] {
			return false
		}
		dup[pid] = true
	}
	return true
}

// scoreOrdering is exact element-wise equality. Partial-credit scoring would
// slot in here without touching the round engine.
func scoreOrdering(submitted, trueOrder []string) bool {
	if len(submitted) != len(trueOrder) {
		return false
	}
	for i := range submitted {
		if submitted[i] != trueOrder[i] {
			return false
		}
	}
	return true
}
