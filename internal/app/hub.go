package app

import (
	"github.com/dkeye/Live/internal/core"
	"github.com/dkeye/Live/internal/domain"
	"github.com/rs/zerolog/log"
)

// Hub implements core.Notifier over the connection table and the session rooms.
type Hub struct {
	conns *Connections
	rooms core.RoomManager
}

func NewHub(conns *Connections, rooms core.RoomManager) *Hub {
	return &Hub{conns: conns, rooms: rooms}
}

var _ core.Notifier = (*Hub)(nil)

func (h *Hub) Broadcast(f core.Frame) {
	sent, dropped := 0, 0
	for _, c := range h.conns.All() {
		if err := c.TrySend(f); err != nil {
			dropped++
			continue
		}
		sent++
	}
	log.Debug().Str("module", "app.hub").Int("sent_to", sent).Int("dropped", dropped).Msg("broadcast to all")
}

func (h *Hub) EmitRoom(room domain.SessionID, f core.Frame) core.PublishResult {
	return h.EmitRoomExcept(room, "", f)
}

func (h *Hub) EmitRoomExcept(room domain.SessionID, except core.ConnID, f core.Frame) core.PublishResult {
	r, ok := h.rooms.Get(room)
	if !ok {
		return core.PublishResult{}
	}
	return r.Broadcast(except, f)
}

func (h *Hub) EmitTo(conn core.ConnID, f core.Frame) error {
	c, ok := h.conns.Get(conn)
	if !ok {
		return core.ErrConnClosed
	}
	return c.TrySend(f)
}
