package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlayer(id string, seat, lastGuessed int, connected bool) *Player {
	p := NewPlayer(id, id, seat)
	p.Connected = connected
	p.LastGuessedRound = lastGuessed
	return p
}

func TestPickGuesser_NeverReturnsDisconnected(t *testing.T) {
	players := []*Player{
		testPlayer("a", 0, -1, false),
		testPlayer("b", 1, -1, true),
		testPlayer("c", 2, 3, false),
	}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		g := pickGuesser(players, rng)
		require.NotNil(t, g)
		assert.Equal(t, "b", g.ID)
	}
}

func TestPickGuesser_PrefersNeverGuessed(t *testing.T) {
	players := []*Player{
		testPlayer("a", 0, 1, true),
		testPlayer("b", 1, -1, true),
		testPlayer("c", 2, 2, true),
	}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		assert.Equal(t, "b", pickGuesser(players, rng).ID)
	}
}

func TestPickGuesser_UniformAmongFresh(t *testing.T) {
	players := []*Player{
		testPlayer("a", 0, -1, true),
		testPlayer("b", 1, -1, true),
		testPlayer("c", 2, 5, true),
	}
	rng := rand.New(rand.NewSource(99))

	picked := map[string]int{}
	for i := 0; i < 200; i++ {
		picked[pickGuesser(players, rng).ID]++
	}
	// Both fresh players get picked, the veteran never does.
	assert.Positive(t, picked["a"])
	assert.Positive(t, picked["b"])
	assert.Zero(t, picked["c"])
}

func TestPickGuesser_LeastRecentlyGuessed(t *testing.T) {
	players := []*Player{
		testPlayer("a", 0, 4, true),
		testPlayer("b", 1, 2, true),
		testPlayer("c", 2, 7, true),
	}
	rng := rand.New(rand.NewSource(1))

	assert.Equal(t, "b", pickGuesser(players, rng).ID)
}

func TestPickGuesser_TieBrokenBySeat(t *testing.T) {
	players := []*Player{
		testPlayer("a", 0, 3, true),
		testPlayer("b", 1, 3, true),
	}
	rng := rand.New(rand.NewSource(1))

	// Deterministic given equal inputs.
	for i := 0; i < 20; i++ {
		assert.Equal(t, "a", pickGuesser(players, rng).ID)
	}
}

func TestPickGuesser_NoConnectedPlayers(t *testing.T) {
	players := []*Player{testPlayer("a", 0, -1, false)}
	rng := rand.New(rand.NewSource(1))

	assert.Nil(t, pickGuesser(players, rng))
}
