package ws

import (
	"encoding/json"
	"sync"

	"cardline/internal/game"
	"cardline/internal/shared/logger"
)

// Hub tracks which client speaks for which player and fans events out to a
// room's subscribers. It implements game.Dispatcher; delivery is
// fire-and-forget and a slow client just drops frames.
type Hub struct {
	mu       sync.RWMutex
	byPlayer map[string]*client
	byRoom   map[string]map[string]*client
}

func NewHub() *Hub {
	return &Hub{
		byPlayer: make(map[string]*client),
		byRoom:   make(map[string]map[string]*client),
	}
}

func (h *Hub) register(roomCode, playerID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.byPlayer[playerID]; ok && old != c {
		// A reconnect replaces the previous socket for this player.
		old.closeSend()
	}
	h.byPlayer[playerID] = c
	room := h.byRoom[roomCode]
	if room == nil {
		room = make(map[string]*client)
		h.byRoom[roomCode] = room
	}
	room[playerID] = c
}

// unregister drops the registration and reports whether c was still the
// player's current socket. A reconnect that already replaced c leaves the
// new registration untouched and returns false.
func (h *Hub) unregister(roomCode, playerID string, c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if current, ok := h.byPlayer[playerID]; !ok || current != c {
		return false
	}
	delete(h.byPlayer, playerID)
	if room, ok := h.byRoom[roomCode]; ok {
		delete(room, playerID)
		if len(room) == 0 {
			delete(h.byRoom, roomCode)
		}
	}
	return true
}

func (h *Hub) Broadcast(roomCode string, ev game.Event) {
	data, err := encodeEvent(ev)
	if err != nil {
		logger.Criticalf("[Hub] Failed to encode %s event: %v", ev.EventType(), err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.byRoom[roomCode] {
		c.enqueue(data)
	}
}

func (h *Hub) Unicast(playerID string, ev game.Event) {
	data, err := encodeEvent(ev)
	if err != nil {
		logger.Criticalf("[Hub] Failed to encode %s event: %v", ev.EventType(), err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.byPlayer[playerID]; ok {
		c.enqueue(data)
	}
}

type eventFrame struct {
	Type string     `json:"type"`
	Data game.Event `json:"data"`
}

func encodeEvent(ev game.Event) ([]byte, error) {
	return json.Marshal(eventFrame{Type: ev.EventType(), Data: ev})
}
