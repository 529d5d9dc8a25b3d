package game

import "math/rand"

// pickGuesser chooses the next guesser among connected players. Players who
// have never guessed win over everyone else, uniformly at random among
// themselves; otherwise the least-recently-guessed player wins, ties broken
// by seat order so equal inputs always give the same answer.
// Returns nil when no player is connected; the >=3 start guard makes that
// unreachable during normal play.
func pickGuesser(players []*Player, rng *rand.Rand) *Player {
	var fresh []*Player
	var best *Player
	for _, p := range players {
		if !p.Connected {
			continue
		}
		if p.LastGuessedRound < 0 {
			fresh = append(fresh, p)
			continue
		}
		if best == nil ||
			p.LastGuessedRound < best.LastGuessedRound ||
			(p.LastGuessedRound == best.LastGuessedRound && p.Seat < best.Seat) {
			best = p
		}
	}
	if len(fresh) > 0 {
		return fresh[rng.Intn(len(fresh))]
	}
	return best
}
