package app

import (
	"sync"

	"github.com/dkeye/Live/internal/core"
	"github.com/dkeye/Live/internal/domain"
)

// MemoryStore keeps sessions in a process-local map. It has no capacity bound.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]domain.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[domain.SessionID]domain.Session)}
}

var _ core.SessionStore = (*MemoryStore)(nil)

func (m *MemoryStore) Put(s domain.Session) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, replaced := m.sessions[s.ID]
	m.sessions[s.ID] = s.Clone()
	return replaced
}

func (m *MemoryStore) Get(id domain.SessionID) (domain.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return domain.Session{}, false
	}
	return s.Clone(), true
}

func (m *MemoryStore) Update(id domain.SessionID, fn func(*domain.Session)) (domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return domain.Session{}, false
	}
	fn(&s)
	m.sessions[id] = s
	return s.Clone(), true
}

func (m *MemoryStore) Delete(id domain.SessionID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	return ok
}

func (m *MemoryStore) List() []domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s.Clone())
	}
	return out
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
