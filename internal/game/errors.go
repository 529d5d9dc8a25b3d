package game

import "errors"

var (
	ErrRoomNotFound     = errors.New("Room not found")
	ErrRoomFull         = errors.New("Room full")
	ErrNotHost          = errors.New("Only the host can do that")
	ErrNotGuesser       = errors.New("Only the guesser can do that")
	ErrInvalidOrdering  = errors.New("Ordering is not a permutation of the round participants")
	ErrNotEnoughPlayers = errors.New("Not enough connected players to start")
	ErrTooManyPlayers   = errors.New("Too many connected players to start")
	ErrCannotKickHost   = errors.New("The host cannot be kicked")
	ErrRateLimited      = errors.New("Too many commands, slow down")
)

// ErrorCode maps a sentinel error to its wire code. Unknown errors map to
// UNKNOWN so a caller never sees a raw Go error string as a code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return "ROOM_NOT_FOUND"
	case errors.Is(err, ErrRoomFull):
		return "ROOM_FULL"
	case errors.Is(err, ErrNotHost):
		return "NOT_HOST"
	case errors.Is(err, ErrNotGuesser):
		return "NOT_GUESSER"
	case errors.Is(err, ErrInvalidOrdering):
		return "INVALID_ORDERING"
	case errors.Is(err, ErrNotEnoughPlayers):
		return "NOT_ENOUGH_PLAYERS"
	case errors.Is(err, ErrTooManyPlayers):
		return "TOO_MANY_PLAYERS"
	case errors.Is(err, ErrCannotKickHost):
		return "CANNOT_KICK_HOST"
	case errors.Is(err, ErrRateLimited):
		return "RATE_LIMITED"
	}
	return "UNKNOWN"
}
