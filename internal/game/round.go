package game

import "time"

// Round is the state of one deal -> answer -> guess -> reveal cycle.
// The participant set and the dealt numbers are frozen at creation; only
// answers, the ordering preview and the deadline are mutated afterwards.
type Round struct {
	Index        int
	Prompt       string
	GuesserID    string
	Participants []string // player ids, seat order at deal time
	Numbers      map[string]int
	Answers      map[string]string
	Preview      []string
	Deadline     time.Time // zero when no answer timer is configured
}

func newRound(index int, prompt, guesserID string, participants []string, numbers map[string]int) *Round {
	return &Round{
		Index:        index,
		Prompt:       prompt,
		GuesserID:    guesserID,
		Participants: participants,
		Numbers:      numbers,
		Answers:      make(map[string]string, len(participants)),
	}
}

func (r *Round) IsParticipant(id string) bool {
	for _, pid := range r.Participants {
		if pid == id {
			return true
		}
	}
	return false
}

func (r *Round) AllAnswered() bool {
	for _, pid := range r.Participants {
		if r.Answers[pid] == "" {
			return false
		}
	}
	return true
}

// AnsweredIDs returns, in participant order, the ids that have submitted.
func (r *Round) AnsweredIDs() []string {
	ids := make([]string, 0, len(r.Participants))
	for _, pid := range r.Participants {
		if r.Answers[pid] != "" {
			ids = append(ids, pid)
		}
	}
	return ids
}
