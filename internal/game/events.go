package game

// Event is the closed set of outbound events. The transport wraps each one
// in a {type, data} JSON frame using EventType as the tag.
type Event interface{ EventType() string }

// Dispatcher is the only capability the core needs from the transport:
// fan-out to a room's subscribers and private delivery to one player.
// Delivery is fire-and-forget; partial failure is the transport's concern.
type Dispatcher interface {
	Broadcast(roomCode string, ev Event)
	Unicast(playerID string, ev Event)
}

type SessionTokenIssued struct {
	Token string `json:"token"`
}

type RoundStarted struct {
	RoundID   int    `json:"roundId"`
	GuesserID string `json:"guesserId"`
	Prompt    string `json:"prompt"`
}

// PrivateDeal carries a participant's own number. It is only ever unicast.
type PrivateDeal struct {
	Number int `json:"number"`
}

type AnswerProgress struct {
	PlayerIDs []string `json:"playerIds"`
}

type OrderingPreviewState struct {
	Order []string `json:"order"`
}

type GuesserNeeded struct {
	GuesserID string `json:"guesserId"`
}

type RoundResult struct {
	TrueOrder []string       `json:"trueOrder"`
	Numbers   map[string]int `json:"numbers"`
	Submitted []string       `json:"submitted"`
	Win       bool           `json:"win"`
}

type TimerState struct {
	Phase    string `json:"phase"`
	Deadline int64  `json:"deadline"` // unix seconds
}

const (
	AbortReasonHostEnded     = "host_ended"
	AbortReasonRosterChanged = "roster_changed"
)

type RoundAborted struct {
	Reason string `json:"reason"`
}

type ErrorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PlayerView is the roster entry as seen in a snapshot. Answer is populated
// only when the viewer is allowed to see it.
type PlayerView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Seat        int    `json:"seat"`
	Connected   bool   `json:"connected"`
	Color       string `json:"color"`
	IsHost      bool   `json:"isHost"`
	HasAnswered bool   `json:"hasAnswered"`
	Answer      string `json:"answer,omitempty"`
}

type SettingsView struct {
	MaxPlayers         int  `json:"maxPlayers"`
	AnswerTimerSeconds int  `json:"answerTimerSeconds"`
	Scoring            bool `json:"scoring"`
	ProfanityFilter    bool `json:"profanityFilter"`
}

// RoundView never contains dealt numbers; those travel only via PrivateDeal
// and the final RoundResult.
type RoundView struct {
	Index        int      `json:"index"`
	Prompt       string   `json:"prompt"`
	GuesserID    string   `json:"guesserId"`
	Participants []string `json:"participants"`
	Preview      []string `json:"preview,omitempty"`
	Deadline     int64    `json:"deadline,omitempty"` // unix seconds, 0 when untimed
}

type RoomState struct {
	Code     string       `json:"code"`
	Phase    string       `json:"phase"`
	HostID   string       `json:"hostId"`
	Players  []PlayerView `json:"players"`
	Settings SettingsView `json:"settings"`
	Round    *RoundView   `json:"round,omitempty"`
	Wins     int          `json:"wins"`
	Losses   int          `json:"losses"`
}

func (SessionTokenIssued) EventType() string   { return "session-token-issued" }
func (RoomState) EventType() string            { return "room-state" }
func (RoundStarted) EventType() string         { return "round-started" }
func (PrivateDeal) EventType() string          { return "private-deal" }
func (AnswerProgress) EventType() string       { return "answer-progress" }
func (OrderingPreviewState) EventType() string { return "ordering-preview-state" }
func (GuesserNeeded) EventType() string        { return "guesser-needed" }
func (RoundResult) EventType() string          { return "round-result" }
func (TimerState) EventType() string           { return "timer-state" }
func (RoundAborted) EventType() string         { return "round-aborted" }
func (ErrorEvent) EventType() string           { return "error" }
