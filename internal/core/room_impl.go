package core

import (
	"sync"

	"github.com/dkeye/Live/internal/domain"
	"github.com/rs/zerolog/log"
)

// roomImpl is a threadsafe in-memory room.
// It never closes adapter-owned resources.
type roomImpl struct {
	id     domain.SessionID
	mu     sync.RWMutex
	byConn map[ConnID]MemberSession
}

func NewRoomService(id domain.SessionID) RoomService {
	return &roomImpl{
		id:     id,
		byConn: make(map[ConnID]MemberSession),
	}
}

func (r *roomImpl) ID() domain.SessionID { return r.id }

func (r *roomImpl) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byConn)
}

func (r *roomImpl) Has(conn ConnID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byConn[conn]
	return ok
}

func (r *roomImpl) AddMember(ms MemberSession) {
	conn := ms.Signal().ID()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byConn[conn] = ms
	log.Info().Str("module", "core.room").Str("room", string(r.id)).Str("conn", string(conn)).Str("user", string(ms.Meta().User)).Msg("member added")
}

func (r *roomImpl) RemoveMember(conn ConnID) (MemberSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ms, ok := r.byConn[conn]
	if !ok {
		return nil, false
	}
	delete(r.byConn, conn)
	log.Info().Str("module", "core.room").Str("room", string(r.id)).Str("conn", string(conn)).Msg("member removed")
	return ms, true
}

func (r *roomImpl) Broadcast(from ConnID, data Frame) PublishResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := PublishResult{}
	for conn, m := range r.byConn {
		if from != "" && conn == from {
			continue
		}
		if err := m.Signal().TrySend(data); err != nil {
			res.Dropped = append(res.Dropped, m)
			continue
		}
		res.SendTo++
	}
	log.Debug().Str("module", "core.room").Str("room", string(r.id)).Str("from", string(from)).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}

func (r *roomImpl) MembersSnapshot() []MemberDTO {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]MemberDTO, 0, len(r.byConn))
	for _, ms := range r.byConn {
		m := ms.Meta()
		out = append(out, MemberDTO{User: m.User, Role: m.Role})
	}
	return out
}
