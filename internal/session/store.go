package session

import (
	"sync"
	"time"
)

// Store hands out sessions keyed by conversation id.
type Store interface {
	GetOrCreate(id string) *Session
}

// MemoryStore is the in-process Store. Sessions live until swept.
type MemoryStore struct {
	sessions sync.Map // id -> *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) GetOrCreate(id string) *Session {
	if v, ok := m.sessions.Load(id); ok {
		return v.(*Session)
	}
	v, _ := m.sessions.LoadOrStore(id, newSession(id))
	return v.(*Session)
}

// Len counts live sessions.
func (m *MemoryStore) Len() int {
	n := 0
	m.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// SweepIdle drops sessions idle for longer than ttl and reports how many
// were removed.
func (m *MemoryStore) SweepIdle(ttl time.Duration) int {
	removed := 0
	cutoff := time.Now().Add(-ttl)
	m.sessions.Range(func(k, v any) bool {
		if v.(*Session).LastSeen().Before(cutoff) {
			m.sessions.Delete(k)
			removed++
		}
		return true
	})
	return removed
}
