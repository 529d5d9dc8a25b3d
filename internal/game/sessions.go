package game

import (
	"sync"
	"time"
)

// SessionTTL is how long a token resumes its (room, player) pair.
const SessionTTL = 7 * 24 * time.Hour

type Session struct {
	RoomCode string
	PlayerID string
	IssuedAt time.Time
}

// SessionRegistry maps opaque tokens to the (room, player) they resume.
// Pure lookup/issue/expire; it knows nothing about game state.
type SessionRegistry struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]Session
}

func NewSessionRegistry(ttl time.Duration) *SessionRegistry {
	if ttl <= 0 {
		ttl = SessionTTL
	}
	return &SessionRegistry{
		ttl:      ttl,
		sessions: make(map[string]Session),
	}
}

// Issue binds token to (roomCode, playerID). A live token is never rebound
// to a different pair; Issue reports whether the binding took effect.
func (s *SessionRegistry) Issue(token, roomCode, playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[token]; ok && !s.expired(existing, time.Now()) {
		if existing.RoomCode != roomCode || existing.PlayerID != playerID {
			return false
		}
	}
	s.sessions[token] = Session{RoomCode: roomCode, PlayerID: playerID, IssuedAt: time.Now()}
	return true
}

// Resolve fails silently on unknown or expired tokens; the caller treats
// that as "start fresh".
func (s *SessionRegistry) Resolve(token string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	if !ok || s.expired(sess, time.Now()) {
		return Session{}, false
	}
	return sess, true
}

func (s *SessionRegistry) Invalidate(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// PurgeExpired removes expired sessions and sessions whose room is gone,
// returning how many were dropped. alive may be nil to skip the room check.
func (s *SessionRegistry) PurgeExpired(alive func(roomCode string) bool) int {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	dropped := 0
	for token, sess := range s.sessions {
		if s.expired(sess, now) || (alive != nil && !alive(sess.RoomCode)) {
			delete(s.sessions, token)
			dropped++
		}
	}
	return dropped
}

func (s *SessionRegistry) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionRegistry) expired(sess Session, now time.Time) bool {
	return now.Sub(sess.IssuedAt) > s.ttl
}
