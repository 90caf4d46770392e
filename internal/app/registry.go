package app

import (
	"fmt"
	"time"

	"github.com/dkeye/Live/internal/core"
	"github.com/dkeye/Live/internal/domain"
	"github.com/rs/zerolog/log"
)

// SessionRegistry is the single source of truth for which sessions exist.
type SessionRegistry struct {
	store    core.SessionStore
	notifier core.Notifier

	newID func() domain.SessionID
	now   func() time.Time
}

func NewSessionRegistry(store core.SessionStore, notifier core.Notifier) *SessionRegistry {
	return &SessionRegistry{
		store:    store,
		notifier: notifier,
		newID:    domain.NewSessionID,
		now:      time.Now,
	}
}

// Create registers a new session and announces it to every connected client.
// A requested id that is already live replaces the existing entry.
func (r *SessionRegistry) Create(owner domain.UserID, label string, requested domain.SessionID) (domain.Session, error) {
	if owner == "" {
		return domain.Session{}, fmt.Errorf("owner id missing: %w", domain.ErrInvalidRequest)
	}
	id := requested
	if id == "" {
		id = r.newID()
	}
	s := domain.NewSession(id, owner, label, r.now())
	if replaced := r.store.Put(s); replaced {
		log.Warn().Str("module", "app.registry").Str("session", string(id)).Msg("session id collision, previous session overwritten")
	}
	log.Info().Str("module", "app.registry").Str("session", string(id)).Str("owner", string(owner)).Msg("session created")

	if f, err := core.Encode(core.SessionStarted{Type: core.EvSessionStarted, Session: s}); err == nil {
		r.notifier.Broadcast(f)
	} else {
		log.Error().Err(err).Str("module", "app.registry").Msg("encode session-started")
	}
	return s.Clone(), nil
}

// End notifies the session room and removes the entry. Unknown ids are a no-op.
func (r *SessionRegistry) End(id domain.SessionID) bool {
	if _, ok := r.store.Get(id); !ok {
		log.Debug().Str("module", "app.registry").Str("session", string(id)).Msg("end of unknown session ignored")
		return false
	}
	if f, err := core.Encode(core.SessionEnded{Type: core.EvSessionEnded, SessionID: id}); err == nil {
		res := r.notifier.EmitRoom(id, f)
		log.Debug().Str("module", "app.registry").Str("session", string(id)).Int("notified", res.SendTo).Msg("session-ended emitted")
	} else {
		log.Error().Err(err).Str("module", "app.registry").Msg("encode session-ended")
	}
	r.store.Delete(id)
	log.Info().Str("module", "app.registry").Str("session", string(id)).Msg("session ended")
	return true
}

func (r *SessionRegistry) Get(id domain.SessionID) (domain.Session, bool) {
	return r.store.Get(id)
}

// List returns a snapshot with no ordering guarantee.
func (r *SessionRegistry) List() []domain.Session {
	return r.store.List()
}

func (r *SessionRegistry) Len() int { return r.store.Len() }

func (r *SessionRegistry) AddViewer(id domain.SessionID, viewer domain.UserID) (domain.Session, error) {
	s, ok := r.store.Update(id, func(s *domain.Session) { s.AddViewer(viewer) })
	if !ok {
		return domain.Session{}, fmt.Errorf("join %s: %w", id, domain.ErrSessionNotFound)
	}
	return s, nil
}

func (r *SessionRegistry) RemoveViewer(id domain.SessionID, viewer domain.UserID) bool {
	removed := false
	r.store.Update(id, func(s *domain.Session) { removed = s.RemoveViewer(viewer) })
	return removed
}
