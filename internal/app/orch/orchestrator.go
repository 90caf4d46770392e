package orch

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dkeye/Live/internal/app"
	"github.com/dkeye/Live/internal/core"
	"github.com/dkeye/Live/internal/domain"
)

type Options struct {
	Authorize                bool
	PruneViewersOnDisconnect bool
	EndOnOwnerDisconnect     bool
	Policy                   app.Policy
	Store                    core.SessionStore
	Classify                 func(json.RawMessage) string
}

// Orchestrator serializes every live-session handler so each one runs to
// completion before the next observes registry or room state.
type Orchestrator struct {
	mu sync.Mutex

	Conns    *app.Connections
	Rooms    core.RoomManager
	Notifier core.Notifier
	Sessions *app.SessionRegistry
	Members  *app.Tracker
	Relay    *app.Relay
	Auth     app.Authorizer

	authorize            bool
	endOnOwnerDisconnect bool
}

func New(opts Options) *Orchestrator {
	conns := app.NewConnections()
	rooms := app.NewRoomManager()
	hub := app.NewHub(conns, rooms)

	store := opts.Store
	if store == nil {
		store = app.NewMemoryStore()
	}
	policy := opts.Policy
	if policy == nil {
		policy = app.SimplePolicy{}
	}

	sessions := app.NewSessionRegistry(store, hub)
	members := app.NewTracker(sessions, rooms, hub)
	members.PruneOnLeave = opts.PruneViewersOnDisconnect
	relay := app.NewRelay(hub, policy)
	relay.Classify = opts.Classify

	var auth app.Authorizer = app.AllowAll{}
	if opts.Authorize {
		auth = app.MembershipAuthorizer{}
	}

	return &Orchestrator{
		Conns:                conns,
		Rooms:                rooms,
		Notifier:             hub,
		Sessions:             sessions,
		Members:              members,
		Relay:                relay,
		Auth:                 auth,
		authorize:            opts.Authorize,
		endOnOwnerDisconnect: opts.EndOnOwnerDisconnect,
	}
}

// Connect registers a transport. identity is the verified user, or empty.
func (o *Orchestrator) Connect(conn core.SignalConnection, identity domain.UserID, cancel context.CancelFunc) {
	o.Conns.Bind(conn, identity, cancel)
}
