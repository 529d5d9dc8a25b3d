package game

// Command is the closed set of inbound room commands. Each variant is a
// struct so handling is exhaustive per phase instead of string-keyed dispatch.
type Command interface{ isCommand() }

// CommandEnvelope pairs a command with the resolved player id of its caller.
// Internal commands (timer fire, sweep reap) use an empty From.
type CommandEnvelope struct {
	From string
	Cmd  Command
}

type StartRound struct {
	Prompt string `json:"prompt"`
}

type SubmitAnswer struct {
	Text string `json:"text"`
}

type PreviewOrdering struct {
	Order []string `json:"order"`
}

type SubmitOrdering struct {
	Order []string `json:"order"`
}

type UpdateSettings struct {
	Patch SettingsPatch `json:"patch"`
}

type KickPlayer struct {
	TargetID string `json:"targetId"`
}

type ShuffleSeats struct{}

type EndRound struct{}

type AdvanceRound struct{}

type LeaveRoom struct{}

// SetConnected is posted by the transport on socket attach/detach. It never
// removes the player.
type SetConnected struct {
	Connected bool
}

// deadlineFired is posted by the answering timer. The generation lets the
// room ignore a stale fire that raced a user-triggered transition.
type deadlineFired struct {
	generation uint64
}

// reapIfEmpty is posted by the registry sweep; the room rechecks its own
// roster instead of the sweep trusting a stale snapshot.
type reapIfEmpty struct{}

// playerLookup resolves a player id to a roster copy, serialized through the
// room loop so reads never race mutations.
type playerLookup struct {
	id    string
	reply chan *Player
}

func (StartRound) isCommand()      {}
func (SubmitAnswer) isCommand()    {}
func (PreviewOrdering) isCommand() {}
func (SubmitOrdering) isCommand()  {}
func (UpdateSettings) isCommand()  {}
func (KickPlayer) isCommand()      {}
func (ShuffleSeats) isCommand()    {}
func (EndRound) isCommand()        {}
func (AdvanceRound) isCommand()    {}
func (LeaveRoom) isCommand()       {}
func (SetConnected) isCommand()    {}
func (deadlineFired) isCommand()   {}
func (reapIfEmpty) isCommand()     {}
func (playerLookup) isCommand()    {}
