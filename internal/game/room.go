package game

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"cardline/internal/shared/logger"
)

const maxAnswerLen = 200

// joinResult carries a value copy of the seated player; the live *Player
// stays owned by the room goroutine.
type joinResult struct {
	player Player
	err    error
}

type roomJoinRequest struct {
	name  string
	reply chan joinResult
}

// Room is one isolated game session. All mutable state below the channels is
// owned by the run goroutine; everything from outside comes in through the
// inbox or the join channel, so no two commands for the same room ever
// execute concurrently.
type Room struct {
	code         string
	hostID       string
	players      []*Player // seat order
	settings     Settings
	phase        Phase
	round        *Round
	roundCounter int
	wins         int
	losses       int

	// generation is bumped on every round start; the answering deadline
	// carries the value it was armed with so a stale fire is a no-op.
	generation uint64
	timer      *time.Timer

	rng        *rand.Rand
	dispatcher Dispatcher
	onEmpty    func(code string)

	inbox    chan CommandEnvelope
	joinReqs chan roomJoinRequest
	done     chan struct{}
	closed   bool
}

func NewRoom(code string, host *Player, settings Settings, dispatcher Dispatcher, onEmpty func(string)) *Room {
	r := &Room{
		code:       code,
		hostID:     host.ID,
		players:    []*Player{host},
		settings:   settings,
		phase:      PHASE_LOBBY,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		dispatcher: dispatcher,
		onEmpty:    onEmpty,
		inbox:      make(chan CommandEnvelope, 256),
		joinReqs:   make(chan roomJoinRequest),
		done:       make(chan struct{}),
	}
	host.Seat = 0
	return r
}

func (r *Room) Code() string { return r.code }

// Do posts a command for serialized execution. Commands posted after the
// room shut down are dropped.
func (r *Room) Do(env CommandEnvelope) {
	select {
	case r.inbox <- env:
	case <-r.done:
	}
}

// RequestJoin seats a new player, waiting for the room loop to process the
// request. Fails with ErrRoomNotFound if the room shut down meanwhile.
func (r *Room) RequestJoin(ctx context.Context, name string) (Player, error) {
	req := roomJoinRequest{name: name, reply: make(chan joinResult, 1)}
	select {
	case r.joinReqs <- req:
	case <-r.done:
		return Player{}, ErrRoomNotFound
	case <-ctx.Done():
		return Player{}, ctx.Err()
	}
	select {
	case res := <-req.reply:
		return res.player, res.err
	case <-ctx.Done():
		return Player{}, ctx.Err()
	}
}

// PlayerByID returns a copy of the roster entry, or false if absent.
func (r *Room) PlayerByID(ctx context.Context, id string) (Player, bool) {
	reply := make(chan *Player, 1)
	select {
	case r.inbox <- CommandEnvelope{Cmd: playerLookup{id: id, reply: reply}}:
	case <-r.done:
		return Player{}, false
	case <-ctx.Done():
		return Player{}, false
	}
	select {
	case p := <-reply:
		if p == nil {
			return Player{}, false
		}
		return *p, true
	case <-ctx.Done():
		return Player{}, false
	}
}

// Run is the room actor. It exits once the roster is empty.
func (r *Room) Run() {
	for {
		select {
		case env := <-r.inbox:
			r.dispatch(env)
		case req := <-r.joinReqs:
			r.handleJoin(req)
		}
		if r.closed {
			return
		}
	}
}

func (r *Room) dispatch(env CommandEnvelope) {
	switch cmd := env.Cmd.(type) {
	case playerLookup:
		p := r.playerByID(cmd.id)
		if p != nil {
			copied := *p
			cmd.reply <- &copied
		} else {
			cmd.reply <- nil
		}
		return
	case deadlineFired:
		r.handleDeadline(cmd.generation)
		return
	case reapIfEmpty:
		if len(r.players) == 0 {
			r.shutdown()
		}
		return
	}

	actor := r.playerByID(env.From)
	if actor == nil {
		// Caller already left or was kicked; stale command.
		return
	}

	switch cmd := env.Cmd.(type) {
	case StartRound:
		r.handleStartRound(actor, cmd.Prompt)
	case SubmitAnswer:
		r.handleSubmitAnswer(actor, cmd.Text)
	case PreviewOrdering:
		r.handlePreviewOrdering(actor, cmd.Order)
	case SubmitOrdering:
		r.handleSubmitOrdering(actor, cmd.Order)
	case UpdateSettings:
		r.handleUpdateSettings(actor, cmd.Patch)
	case KickPlayer:
		r.handleKick(actor, cmd.TargetID)
	case ShuffleSeats:
		r.handleShuffleSeats(actor)
	case EndRound:
		r.handleEndRound(actor)
	case AdvanceRound:
		r.handleAdvanceRound(actor)
	case LeaveRoom:
		r.removePlayer(actor)
	case SetConnected:
		actor.Connected = cmd.Connected
		r.broadcastState()
	}
}

func (r *Room) handleJoin(req roomJoinRequest) {
	if len(r.players) >= r.settings.MaxPlayers {
		req.reply <- joinResult{err: ErrRoomFull}
		return
	}
	name := dedupeName(r.players, req.name)
	p := NewPlayer(uuid.NewString(), name, len(r.players))
	r.players = append(r.players, p)
	logger.Infof("[Room %s] Player %s joined at seat %d", r.code, p.Name, p.Seat)
	r.broadcastState()
	req.reply <- joinResult{player: *p}
}

// --- phase transitions ---

func (r *Room) handleStartRound(actor *Player, promptOverride string) {
	if actor.ID != r.hostID {
		r.fail(actor, ErrNotHost)
		return
	}
	if r.phase != PHASE_LOBBY {
		return
	}
	connected := r.connectedPlayers()
	if len(connected) < MinPlayers {
		r.fail(actor, ErrNotEnoughPlayers)
		return
	}
	if len(connected) > HardMaxPlayers {
		r.fail(actor, ErrTooManyPlayers)
		return
	}

	participants := make([]string, len(connected))
	for i, p := range connected {
		participants[i] = p.ID
	}
	guesser := pickGuesser(r.players, r.rng)
	prompt := pickPrompt(promptOverride, r.rng)
	numbers := dealNumbers(participants, r.rng)

	r.roundCounter++
	r.round = newRound(r.roundCounter, prompt, guesser.ID, participants, numbers)
	r.phase = PHASE_ANSWERING
	r.generation++

	if d := r.settings.AnswerTimer; d > 0 {
		r.round.Deadline = time.Now().Add(d)
		r.armDeadline(d)
	}

	logger.Infof("[Room %s] Round %d started, guesser=%s, %d participants",
		r.code, r.round.Index, guesser.Name, len(participants))

	for _, pid := range participants {
		r.dispatcher.Unicast(pid, PrivateDeal{Number: numbers[pid]})
	}
	r.dispatcher.Broadcast(r.code, RoundStarted{
		RoundID:   r.round.Index,
		GuesserID: guesser.ID,
		Prompt:    prompt,
	})
	if !r.round.Deadline.IsZero() {
		r.dispatcher.Broadcast(r.code, TimerState{
			Phase:    r.phase.String(),
			Deadline: r.round.Deadline.Unix(),
		})
	}
	r.broadcastState()
}

func (r *Room) handleSubmitAnswer(actor *Player, text string) {
	if r.phase != PHASE_ANSWERING || !r.round.IsParticipant(actor.ID) {
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if runes := []rune(text); len(runes) > maxAnswerLen {
		text = string(runes[:maxAnswerLen])
	}
	r.round.Answers[actor.ID] = text
	r.dispatcher.Broadcast(r.code, AnswerProgress{PlayerIDs: r.round.AnsweredIDs()})
	if r.round.AllAnswered() {
		r.toGuessing()
		return
	}
	r.broadcastState()
}

func (r *Room) handleDeadline(generation uint64) {
	// A fire that raced an all-answered transition or a newer round carries
	// a stale generation and must do nothing.
	if r.phase != PHASE_ANSWERING || generation != r.generation {
		return
	}
	logger.Infof("[Room %s] Answering deadline elapsed for round %d", r.code, r.round.Index)
	r.toGuessing()
}

func (r *Room) toGuessing() {
	r.cancelDeadline()
	r.phase = PHASE_GUESSING
	preview := make([]string, len(r.round.Participants))
	copy(preview, r.round.Participants)
	r.round.Preview = preview
	r.dispatcher.Broadcast(r.code, GuesserNeeded{GuesserID: r.round.GuesserID})
	r.dispatcher.Broadcast(r.code, OrderingPreviewState{Order: preview})
	r.broadcastState()
}

func (r *Room) handlePreviewOrdering(actor *Player, order []string) {
	if r.phase != PHASE_GUESSING {
		return
	}
	if actor.ID != r.round.GuesserID {
		r.fail(actor, ErrNotGuesser)
		return
	}
	// Best effort: keep only known participants, drop the rest.
	filtered := make([]string, 0, len(order))
	for _, pid := range order {
		if r.round.IsParticipant(pid) {
			filtered = append(filtered, pid)
		}
	}
	r.round.Preview = filtered
	r.dispatcher.Broadcast(r.code, OrderingPreviewState{Order: filtered})
}

func (r *Room) handleSubmitOrdering(actor *Player, order []string) {
	if r.phase != PHASE_GUESSING {
		return
	}
	if actor.ID != r.round.GuesserID {
		r.fail(actor, ErrNotGuesser)
		return
	}
	if !validateOrdering(order, r.round.Participants) {
		r.fail(actor, ErrInvalidOrdering)
		return
	}

	trueOrder := computeTrueOrder(r.round.Participants, r.round.Numbers)
	win := scoreOrdering(order, trueOrder)
	if r.settings.Scoring {
		if win {
			r.wins++
		} else {
			r.losses++
		}
	}
	actor.LastGuessedRound = r.round.Index
	r.phase = PHASE_REVEAL

	logger.Infof("[Room %s] Round %d revealed, win=%v", r.code, r.round.Index, win)
	r.dispatcher.Broadcast(r.code, RoundResult{
		TrueOrder: trueOrder,
		Numbers:   r.round.Numbers,
		Submitted: order,
		Win:       win,
	})
	r.broadcastState()
}

func (r *Room) handleEndRound(actor *Player) {
	if actor.ID != r.hostID {
		r.fail(actor, ErrNotHost)
		return
	}
	if r.phase == PHASE_LOBBY {
		return
	}
	r.abortRound(AbortReasonHostEnded)
}

func (r *Room) handleAdvanceRound(actor *Player) {
	if actor.ID != r.hostID {
		r.fail(actor, ErrNotHost)
		return
	}
	if r.phase != PHASE_REVEAL {
		return
	}
	r.cancelDeadline()
	r.round = nil
	r.phase = PHASE_LOBBY
	r.broadcastState()
}

// abortRound discards the current round without a result. Used by the host
// abort and by mid-round roster changes; the reason tells observers apart.
func (r *Room) abortRound(reason string) {
	r.cancelDeadline()
	r.round = nil
	r.phase = PHASE_LOBBY
	logger.Infof("[Room %s] Round aborted (%s)", r.code, reason)
	r.dispatcher.Broadcast(r.code, RoundAborted{Reason: reason})
	r.broadcastState()
}

// --- roster commands ---

func (r *Room) handleUpdateSettings(actor *Player, patch SettingsPatch) {
	if actor.ID != r.hostID {
		r.fail(actor, ErrNotHost)
		return
	}
	r.settings.Apply(patch)
	r.broadcastState()
}

func (r *Room) handleKick(actor *Player, targetID string) {
	if actor.ID != r.hostID {
		r.fail(actor, ErrNotHost)
		return
	}
	if targetID == r.hostID {
		r.fail(actor, ErrCannotKickHost)
		return
	}
	target := r.playerByID(targetID)
	if target == nil {
		return
	}
	logger.Infof("[Room %s] Player %s kicked by host", r.code, target.Name)
	r.removePlayer(target)
}

func (r *Room) handleShuffleSeats(actor *Player) {
	if actor.ID != r.hostID {
		r.fail(actor, ErrNotHost)
		return
	}
	perm := r.rng.Perm(len(r.players))
	shuffled := make([]*Player, len(r.players))
	for i, j := range perm {
		shuffled[j] = r.players[i]
	}
	r.players = shuffled
	repackSeats(r.players)
	r.broadcastState()
}

// removePlayer drops the player from the roster, repacks seats, reassigns
// the host if needed, and aborts a live round the player participated in.
// The participant set is frozen per round, so membership changes invalidate
// the round rather than patching it.
func (r *Room) removePlayer(target *Player) {
	for i, p := range r.players {
		if p.ID == target.ID {
			r.players = append(r.players[:i], r.players[i+1:]...)
			break
		}
	}
	repackSeats(r.players)

	if len(r.players) == 0 {
		r.shutdown()
		return
	}
	if target.ID == r.hostID {
		r.hostID = r.players[0].ID
		logger.Infof("[Room %s] Host left, reassigned to %s", r.code, r.players[0].Name)
	}
	if r.phase != PHASE_LOBBY && r.round.IsParticipant(target.ID) {
		r.abortRound(AbortReasonRosterChanged)
		return
	}
	r.broadcastState()
}

// --- plumbing ---

func (r *Room) playerByID(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) connectedPlayers() []*Player {
	out := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		if p.Connected {
			out = append(out, p)
		}
	}
	return out
}

func (r *Room) armDeadline(d time.Duration) {
	r.cancelDeadline()
	generation := r.generation
	r.timer = time.AfterFunc(d, func() {
		r.Do(CommandEnvelope{Cmd: deadlineFired{generation: generation}})
	})
}

func (r *Room) cancelDeadline() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Room) fail(actor *Player, err error) {
	r.dispatcher.Unicast(actor.ID, ErrorEvent{Code: ErrorCode(err), Message: err.Error()})
}

// broadcastState unicasts a per-viewer snapshot to every roster member.
// Tailoring per viewer is what keeps answers hidden from non-hosts during
// the answering phase.
func (r *Room) broadcastState() {
	for _, p := range r.players {
		r.dispatcher.Unicast(p.ID, r.snapshotFor(p))
	}
}

func (r *Room) snapshotFor(viewer *Player) RoomState {
	answersVisible := r.phase == PHASE_GUESSING || r.phase == PHASE_REVEAL || viewer.ID == r.hostID

	players := make([]PlayerView, len(r.players))
	for i, p := range r.players {
		view := PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			Seat:      p.Seat,
			Connected: p.Connected,
			Color:     p.Color,
			IsHost:    p.ID == r.hostID,
		}
		if r.round != nil {
			answer := r.round.Answers[p.ID]
			view.HasAnswered = answer != ""
			if answersVisible {
				view.Answer = answer
			}
		}
		players[i] = view
	}

	state := RoomState{
		Code:    r.code,
		Phase:   r.phase.String(),
		HostID:  r.hostID,
		Players: players,
		Settings: SettingsView{
			MaxPlayers:         r.settings.MaxPlayers,
			AnswerTimerSeconds: int(r.settings.AnswerTimer / time.Second),
			Scoring:            r.settings.Scoring,
			ProfanityFilter:    r.settings.ProfanityFilter,
		},
		Wins:   r.wins,
		Losses: r.losses,
	}
	if r.round != nil {
		view := &RoundView{
			Index:        r.round.Index,
			Prompt:       r.round.Prompt,
			GuesserID:    r.round.GuesserID,
			Participants: r.round.Participants,
			Preview:      r.round.Preview,
		}
		if !r.round.Deadline.IsZero() {
			view.Deadline = r.round.Deadline.Unix()
		}
		state.Round = view
	}
	return state
}

func (r *Room) shutdown() {
	if r.closed {
		return
	}
	r.closed = true
	r.cancelDeadline()
	close(r.done)
	logger.Infof("[Room %s] Empty, shutting down", r.code)
	if r.onEmpty != nil {
		r.onEmpty(r.code)
	}
}
