package orch

import (
	"fmt"

	"github.com/dkeye/Live/internal/core"
	"github.com/dkeye/Live/internal/domain"
	"github.com/rs/zerolog/log"
)

// claim ties asserted to the connection when authorization is on.
func (o *Orchestrator) claim(conn core.ConnID, asserted domain.UserID) error {
	if !o.authorize {
		return nil
	}
	return o.Conns.Claim(conn, asserted)
}

// caller is the identity used for capability checks.
func (o *Orchestrator) caller(conn core.ConnID) domain.UserID {
	id, _, _ := o.Conns.Identity(conn)
	return id
}

func (o *Orchestrator) StartSession(conn core.ConnID, owner domain.UserID, label string, requested domain.SessionID) (domain.Session, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	sc, ok := o.Conns.Get(conn)
	if !ok {
		return domain.Session{}, core.ErrConnClosed
	}
	if owner == "" {
		return domain.Session{}, fmt.Errorf("owner id missing: %w", domain.ErrInvalidRequest)
	}
	if err := o.claim(conn, owner); err != nil {
		return domain.Session{}, err
	}
	if requested != "" {
		// An overwritten session keeps nobody routed from its old room.
		if _, ok := o.Sessions.Get(requested); ok {
			o.Rooms.StopRoom(requested)
		}
	}
	s, err := o.Sessions.Create(owner, label, requested)
	if err != nil {
		return domain.Session{}, err
	}
	o.Members.Enter(s.ID, core.NewMemberSession(domain.NewMember(owner, domain.RoleOwner), sc))
	return s, nil
}

func (o *Orchestrator) JoinSession(conn core.ConnID, id domain.SessionID, viewer domain.UserID) (domain.Session, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	sc, ok := o.Conns.Get(conn)
	if !ok {
		return domain.Session{}, core.ErrConnClosed
	}
	if id == "" || viewer == "" {
		return domain.Session{}, fmt.Errorf("session and viewer ids required: %w", domain.ErrInvalidRequest)
	}
	if _, ok := o.Sessions.Get(id); !ok {
		return domain.Session{}, fmt.Errorf("join %s: %w", id, domain.ErrSessionNotFound)
	}
	if err := o.claim(conn, viewer); err != nil {
		return domain.Session{}, err
	}
	return o.Members.Join(id, viewer, sc)
}

// EndSession is a no-op for unknown ids.
func (o *Orchestrator) EndSession(conn core.ConnID, id domain.SessionID) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	s, ok := o.Sessions.Get(id)
	if !ok {
		return nil
	}
	if !o.Auth.CanEnd(s, o.caller(conn)) {
		return fmt.Errorf("end %s: %w", id, domain.ErrForbidden)
	}
	o.endLocked(id)
	return nil
}

func (o *Orchestrator) endLocked(id domain.SessionID) {
	if o.Sessions.End(id) {
		o.Rooms.StopRoom(id)
	}
}

func (o *Orchestrator) Signal(conn core.ConnID, env domain.Envelope) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if env.SessionID == "" {
		return fmt.Errorf("session id missing: %w", domain.ErrInvalidRequest)
	}
	s, ok := o.Sessions.Get(env.SessionID)
	if !ok {
		log.Debug().Str("module", "orch").Str("session", string(env.SessionID)).Msg("signal for unknown session dropped")
		return nil
	}
	if !o.Auth.CanRelay(s, o.caller(conn)) {
		return fmt.Errorf("signal %s: %w", env.SessionID, domain.ErrForbidden)
	}
	o.Relay.Forward(conn, env)
	return nil
}

func (o *Orchestrator) ActiveSessions() []domain.Session {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.Sessions.List()
}

func (o *Orchestrator) Session(id domain.SessionID) (domain.Session, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.Sessions.Get(id)
}

// Identity reports the user bound to conn and the sessions it is routed into.
func (o *Orchestrator) Identity(conn core.ConnID) (domain.UserID, bool, []domain.SessionID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	id, verified, _ := o.Conns.Identity(conn)
	var rooms []domain.SessionID
	for _, r := range o.Rooms.RoomsOf(conn) {
		rooms = append(rooms, r.ID())
	}
	return id, verified, rooms
}

// OnDisconnect tears down routing membership of conn. Sessions it owns stay
// live unless EndOnOwnerDisconnect is set.
func (o *Orchestrator) OnDisconnect(conn core.ConnID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, dep := range o.Members.Leave(conn) {
		if dep.Member.Role != domain.RoleOwner || !o.endOnOwnerDisconnect {
			continue
		}
		log.Info().Str("module", "orch").Str("session", string(dep.Session)).Str("owner", string(dep.Member.User)).Msg("owner disconnected, ending session")
		o.endLocked(dep.Session)
	}
	o.Conns.Unbind(conn)
}
