package game

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"cardline/internal/shared/logger"
)

const (
	roomCodeLen   = 6
	sweepInterval = 60 * time.Second
)

const roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Registry owns every live room. It is created at process start, injected
// into the transport, and torn down with the process; there is no ambient
// global state.
type Registry struct {
	mu       sync.RWMutex
	rooms    map[string]*Room
	sessions *SessionRegistry

	dispatcher Dispatcher
	codeRng    *rand.Rand
}

func NewRegistry(sessions *SessionRegistry, dispatcher Dispatcher) *Registry {
	return &Registry{
		rooms:      make(map[string]*Room),
		sessions:   sessions,
		dispatcher: dispatcher,
		codeRng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateRoom allocates a fresh code, seats the caller as host at seat 0 and
// starts the room actor. token is the opaque session credential the
// transport issued for this client.
func (g *Registry) CreateRoom(hostName, token string) (*Room, Player, error) {
	host := NewPlayer(uuid.NewString(), hostName, 0)

	g.mu.Lock()
	code := g.newCodeLocked()
	room := NewRoom(code, host, DefaultSettings(), g.dispatcher, g.remove)
	g.rooms[code] = room
	g.mu.Unlock()

	go room.Run()
	g.sessions.Issue(token, code, host.ID)
	logger.Infof("[Registry] Room %s created by %s", code, host.Name)
	return room, *host, nil
}

// JoinRoom seats a new player in an existing room, deduplicating the display
// name and issuing a session for the token.
func (g *Registry) JoinRoom(ctx context.Context, code, name, token string) (*Room, Player, error) {
	room, ok := g.Get(code)
	if !ok {
		return nil, Player{}, ErrRoomNotFound
	}
	p, err := room.RequestJoin(ctx, name)
	if err != nil {
		return nil, Player{}, err
	}
	g.sessions.Issue(token, code, p.ID)
	return room, p, nil
}

// Resume resolves a session token back to its live (room, player) pair.
// Unknown, expired or orphaned tokens fail silently; the caller starts fresh.
func (g *Registry) Resume(ctx context.Context, token string) (*Room, Player, bool) {
	sess, ok := g.sessions.Resolve(token)
	if !ok {
		return nil, Player{}, false
	}
	room, ok := g.Get(sess.RoomCode)
	if !ok {
		g.sessions.Invalidate(token)
		return nil, Player{}, false
	}
	p, ok := room.PlayerByID(ctx, sess.PlayerID)
	if !ok {
		g.sessions.Invalidate(token)
		return nil, Player{}, false
	}
	return room, p, true
}

func (g *Registry) Get(code string) (*Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	room, ok := g.rooms[code]
	return room, ok
}

func (g *Registry) RoomCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

// Run drives the periodic sweep until ctx is cancelled. Rooms recheck their
// own emptiness inside their serialized loop; the sweep never deletes from
// a stale snapshot.
func (g *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.sweep()
		}
	}
}

func (g *Registry) sweep() {
	dropped := g.sessions.PurgeExpired(func(code string) bool {
		_, ok := g.Get(code)
		return ok
	})
	if dropped > 0 {
		logger.Debugf("[Registry] Sweep purged %d sessions", dropped)
	}

	g.mu.RLock()
	rooms := make([]*Room, 0, len(g.rooms))
	for _, room := range g.rooms {
		rooms = append(rooms, room)
	}
	g.mu.RUnlock()
	for _, room := range rooms {
		room.Do(CommandEnvelope{Cmd: reapIfEmpty{}})
	}
}

func (g *Registry) remove(code string) {
	g.mu.Lock()
	delete(g.rooms, code)
	g.mu.Unlock()
	logger.Infof("[Registry] Room %s removed", code)
}

// newCodeLocked draws short codes until one is free. The alphabet skips
// 0/O/1/I to keep codes readable over voice chat.
func (g *Registry) newCodeLocked() string {
	for {
		buf := make([]byte, roomCodeLen)
		for i := range buf {
			buf[i] = roomCodeAlphabet[g.codeRng.Intn(len(roomCodeAlphabet))]
		}
		code := string(buf)
		if _, taken := g.rooms[code]; !taken {
			return code
		}
	}
}
