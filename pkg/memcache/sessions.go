package mem

import (
	"sync"
	"time"
)

// SessionStore keeps per-session values with a TTL. Values are opaque;
// callers own the concrete type.
type SessionStore interface {
	Put(id string, v any, ttl time.Duration)
	Get(id string) (any, bool)
	Delete(id string)
	Len() int
}

type entry struct {
	value     any
	expiresAt time.Time
}

type Sessions struct {
	mu   sync.RWMutex
	data map[string]entry
}

func NewSessions() *Sessions {
	return &Sessions{data: make(map[string]entry)}
}

func (s *Sessions) Put(id string, v any, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = entry{value: v, expiresAt: time.Now().Add(ttl)}
}

func (s *Sessions) Get(id string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.data, id) // cleanup expired
		return nil, false
	}
	return e.value, true
}

func (s *Sessions) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
