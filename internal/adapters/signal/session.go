package signal

import (
	"encoding/json"
	"fmt"

	"github.com/dkeye/Live/internal/core"
	"github.com/dkeye/Live/internal/domain"
	"github.com/rs/zerolog/log"
)

type startPayload struct {
	OwnerID   domain.UserID    `json:"ownerId" validate:"required,max=64"`
	Label     string           `json:"label" validate:"max=200"`
	SessionID domain.SessionID `json:"sessionId" validate:"max=128"`
}

type joinPayload struct {
	SessionID domain.SessionID `json:"sessionId" validate:"required"`
	ViewerID  domain.UserID    `json:"viewerId" validate:"required,max=64"`
}

type endPayload struct {
	SessionID domain.SessionID `json:"sessionId" validate:"required"`
}

type relayPayload struct {
	SessionID domain.SessionID `json:"sessionId" validate:"required"`
	From      domain.UserID    `json:"from"`
	Initiator bool             `json:"initiator"`
	Signal    json.RawMessage  `json:"signal"`
}

func (ctl *SignalWSController) handleStart(c *WsSignalConn, data []byte) {
	var p startPayload
	if err := ctl.decode(data, &p); err != nil {
		ctl.sendError(c, fmt.Errorf("failed to start live session: %w", err))
		return
	}
	s, err := ctl.Orch.StartSession(c.id, p.OwnerID, p.Label, p.SessionID)
	if err != nil {
		ctl.sendError(c, fmt.Errorf("failed to start live session: %w", err))
		return
	}
	log.Info().Str("module", "signal").Str("conn", string(c.id)).Str("session", string(s.ID)).Msg("session started")
	ctl.sendJSON(c, core.SessionCreated{Type: core.EvSessionCreated, SessionID: s.ID})
}

func (ctl *SignalWSController) handleJoin(c *WsSignalConn, data []byte) {
	var p joinPayload
	if err := ctl.decode(data, &p); err != nil {
		ctl.sendError(c, err)
		return
	}
	s, err := ctl.Orch.JoinSession(c.id, p.SessionID, p.ViewerID)
	if err != nil {
		ctl.sendError(c, err)
		return
	}
	log.Info().Str("module", "signal").Str("conn", string(c.id)).Str("session", string(s.ID)).Str("viewer", string(p.ViewerID)).Int("viewers", s.ViewerCount()).Msg("join")
}

func (ctl *SignalWSController) handleEnd(c *WsSignalConn, data []byte) {
	var p endPayload
	if err := ctl.decode(data, &p); err != nil {
		ctl.sendError(c, err)
		return
	}
	if err := ctl.Orch.EndSession(c.id, p.SessionID); err != nil {
		ctl.sendError(c, err)
		return
	}
	log.Info().Str("module", "signal").Str("conn", string(c.id)).Str("session", string(p.SessionID)).Msg("end")
}

func (ctl *SignalWSController) handleRelay(c *WsSignalConn, data []byte) {
	var p relayPayload
	if err := ctl.decode(data, &p); err != nil {
		ctl.sendError(c, err)
		return
	}
	if p.From == "" {
		p.From, _, _ = ctl.Orch.Identity(c.id)
	}
	env := domain.Envelope{
		SessionID: p.SessionID,
		SenderID:  p.From,
		Initiator: p.Initiator,
		Payload:   p.Signal,
	}
	if err := ctl.Orch.Signal(c.id, env); err != nil {
		ctl.sendError(c, err)
	}
}

func (ctl *SignalWSController) handleActive(c *WsSignalConn) {
	sessions := ctl.Orch.ActiveSessions()
	if sessions == nil {
		sessions = []domain.Session{}
	}
	log.Debug().Str("module", "signal").Int("count", len(sessions)).Msg("active sessions")
	ctl.sendJSON(c, core.ActiveSessions{Type: core.EvActiveSessions, Sessions: sessions})
}
