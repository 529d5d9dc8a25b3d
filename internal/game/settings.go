package game

import "time"

const (
	// HardMaxPlayers is the ceiling on round participants regardless of what
	// the host configures; the number pool only has that many cards.
	HardMaxPlayers = 10
	MinPlayers     = 3
)

type Settings struct {
	MaxPlayers      int
	AnswerTimer     time.Duration // zero disables the answering deadline
	Scoring         bool
	ProfanityFilter bool
}

func DefaultSettings() Settings {
	return Settings{
		MaxPlayers: HardMaxPlayers,
		Scoring:    true,
	}
}

// SettingsPatch is a host-issued partial update; nil fields are untouched.
type SettingsPatch struct {
	MaxPlayers         *int  `json:"maxPlayers,omitempty"`
	AnswerTimerSeconds *int  `json:"answerTimerSeconds,omitempty"`
	Scoring            *bool `json:"scoring,omitempty"`
	ProfanityFilter    *bool `json:"profanityFilter,omitempty"`
}

func (s *Settings) Apply(patch SettingsPatch) {
	if patch.MaxPlayers != nil {
		mp := *patch.MaxPlayers
		if mp < MinPlayers {
			mp = MinPlayers
		}
		if mp > HardMaxPlayers {
			mp = HardMaxPlayers
		}
		s.MaxPlayers = mp
	}
	if patch.AnswerTimerSeconds != nil {
		secs := *patch.AnswerTimerSeconds
		if secs < 0 {
			secs = 0
		}
		s.AnswerTimer = time.Duration(secs) * time.Second
	}
	if patch.Scoring != nil {
		s.Scoring = *patch.Scoring
	}
	if patch.ProfanityFilter != nil {
		s.ProfanityFilter = *patch.ProfanityFilter
	}
}
