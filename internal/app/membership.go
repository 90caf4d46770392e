package app

import (
	"github.com/dkeye/Live/internal/core"
	"github.com/dkeye/Live/internal/domain"
	"github.com/rs/zerolog/log"
)

// Departure records one room a connection was removed from.
type Departure struct {
	Session domain.SessionID
	Member  domain.Member
}

// Tracker maintains each session's viewer set and the routing group of its connections.
type Tracker struct {
	sessions *SessionRegistry
	rooms    core.RoomManager
	notifier core.Notifier

	// PruneOnLeave removes a viewer id from the session when its connection leaves.
	// Off by default: the viewer count means "ever joined".
	PruneOnLeave bool
}

func NewTracker(sessions *SessionRegistry, rooms core.RoomManager, notifier core.Notifier) *Tracker {
	return &Tracker{sessions: sessions, rooms: rooms, notifier: notifier}
}

// Enter places a connection into the routing group of a session.
func (t *Tracker) Enter(id domain.SessionID, ms core.MemberSession) {
	t.rooms.GetOrCreate(id).AddMember(ms)
}

// Join adds viewer to the session, routes conn into its room and announces the
// new viewer count to the room.
func (t *Tracker) Join(id domain.SessionID, viewer domain.UserID, conn core.SignalConnection) (domain.Session, error) {
	s, err := t.sessions.AddViewer(id, viewer)
	if err != nil {
		return domain.Session{}, err
	}
	t.Enter(id, core.NewMemberSession(domain.NewMember(viewer, domain.RoleViewer), conn))

	ev := core.ViewerJoined{
		Type:        core.EvViewerJoined,
		SessionID:   id,
		UserID:      viewer,
		ViewerCount: s.ViewerCount(),
	}
	if f, err := core.Encode(ev); err == nil {
		t.notifier.EmitRoom(id, f)
	} else {
		log.Error().Err(err).Str("module", "app.membership").Msg("encode viewer-joined")
	}
	log.Info().Str("module", "app.membership").Str("session", string(id)).Str("viewer", string(viewer)).Int("viewers", s.ViewerCount()).Msg("viewer joined")
	return s, nil
}

// Leave removes conn from every routing group it belongs to.
func (t *Tracker) Leave(conn core.ConnID) []Departure {
	var out []Departure
	for _, room := range t.rooms.RoomsOf(conn) {
		ms, ok := room.RemoveMember(conn)
		if !ok {
			continue
		}
		meta := *ms.Meta()
		out = append(out, Departure{Session: room.ID(), Member: meta})
		if t.PruneOnLeave && meta.Role == domain.RoleViewer && !t.stillConnected(room, meta.User) {
			if t.sessions.RemoveViewer(room.ID(), meta.User) {
				log.Info().Str("module", "app.membership").Str("session", string(room.ID())).Str("viewer", string(meta.User)).Msg("viewer pruned")
			}
		}
	}
	return out
}

func (t *Tracker) stillConnected(room core.RoomService, user domain.UserID) bool {
	for _, m := range room.MembersSnapshot() {
		if m.User == user {
			return true
		}
	}
	return false
}
