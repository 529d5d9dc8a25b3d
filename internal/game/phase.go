package game

type Phase int

const (
	PHASE_LOBBY Phase = iota
	PHASE_ANSWERING
	PHASE_GUESSING
	PHASE_REVEAL
)

func (p Phase) String() string {
	switch p {
	case PHASE_LOBBY:
		return "lobby"
	case PHASE_ANSWERING:
		return "answering"
	case PHASE_GUESSING:
		return "guessing"
	case PHASE_REVEAL:
		return "reveal"
	}
	return "unknown"
}
