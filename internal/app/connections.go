package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/dkeye/Live/internal/core"
	"github.com/dkeye/Live/internal/domain"
	"github.com/rs/zerolog/log"
)

type connEntry struct {
	Conn     core.SignalConnection
	Identity domain.UserID
	Verified bool
	Cancel   context.CancelFunc
}

// Connections is the table of open client transports and the identity bound to each.
type Connections struct {
	mu    sync.RWMutex
	conns map[core.ConnID]*connEntry
}

func NewConnections() *Connections {
	return &Connections{conns: make(map[core.ConnID]*connEntry)}
}

// Bind registers conn. A non-empty identity is treated as verified by the caller.
func (r *Connections) Bind(conn core.SignalConnection, identity domain.UserID, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[conn.ID()] = &connEntry{
		Conn:     conn,
		Identity: identity,
		Verified: identity != "",
		Cancel:   cancel,
	}
	log.Info().Str("module", "app.connections").Str("conn", string(conn.ID())).Str("identity", string(identity)).Msg("bound connection")
}

func (r *Connections) Get(id core.ConnID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.conns[id]; ok {
		return e.Conn, true
	}
	return nil, false
}

// Identity returns the user bound to the connection, if any.
func (r *Connections) Identity(id core.ConnID) (domain.UserID, bool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[id]
	if !ok || e.Identity == "" {
		return "", false, false
	}
	return e.Identity, e.Verified, true
}

// Claim binds asserted to the connection on first use and rejects a different
// identity afterwards.
func (r *Connections) Claim(id core.ConnID, asserted domain.UserID) error {
	if err := domain.ValidUserID(asserted); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[id]
	if !ok {
		return core.ErrConnClosed
	}
	switch e.Identity {
	case "":
		e.Identity = asserted
		log.Info().Str("module", "app.connections").Str("conn", string(id)).Str("identity", string(asserted)).Msg("identity claimed")
		return nil
	case asserted:
		return nil
	default:
		return fmt.Errorf("connection bound to %s, asserted %s: %w", e.Identity, asserted, domain.ErrForbidden)
	}
}

func (r *Connections) Unbind(id core.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, id)
	log.Info().Str("module", "app.connections").Str("conn", string(id)).Msg("unbind connection")
}

func (r *Connections) All() []core.SignalConnection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.SignalConnection, 0, len(r.conns))
	for _, e := range r.conns {
		out = append(out, e.Conn)
	}
	return out
}

func (r *Connections) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

func (r *Connections) Cancel(id core.ConnID) bool {
	r.mu.RLock()
	e, ok := r.conns[id]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.connections").Str("conn", string(id)).Msg("canceled connection")
	return true
}
