package game

import (
	"fmt"
	"hash/fnv"
)

// Player is one roster entry. All fields are owned by the room goroutine;
// other goroutines only ever see value copies handed out by the room.
type Player struct {
	ID               string
	Name             string
	Seat             int
	Connected        bool
	LastGuessedRound int // -1 means never been the guesser
	Color            string
}

var colorPalette = []string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#bcf60c", "#fabebe",
	"#008080", "#e6beff",
}

// colorFor buckets a player id into the palette so a reconnecting player
// keeps the same color without storing anything.
func colorFor(id string) string {
	h := fnv.New32a()
	h.Write([]byte(id))
	return colorPalette[h.Sum32()%uint32(len(colorPalette))]
}

func NewPlayer(id, name string, seat int) *Player {
	return &Player{
		ID:               id,
		Name:             name,
		Seat:             seat,
		Connected:        true,
		LastGuessedRound: -1,
		Color:            colorFor(id),
	}
}

// dedupeName appends " #2", " #3", ... until the name is unique in the roster.
func dedupeName(players []*Player, name string) string {
	taken := make(map[string]bool, len(players))
	for _, p := range players {
		taken[p.Name] = true
	}
	if !taken[name] {
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s #%d", name, i)
		if !taken[candidate] {
			return candidate
		}
	}
}

// repackSeats re-derives the dense 0..N-1 seat assignment, preserving the
// current seat order. Call after any removal.
func repackSeats(players []*Player) {
	for i, p := range players {
		p.Seat = i
	}
}
