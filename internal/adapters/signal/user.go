package signal

import (
	"github.com/dkeye/Live/internal/core"
	"github.com/dkeye/Live/internal/domain"
)

func (ctl *SignalWSController) handleWhoAmI(c *WsSignalConn) {
	uid, verified, rooms := ctl.Orch.Identity(c.id)
	resp := struct {
		Type     core.EventType     `json:"type"`
		ConnID   core.ConnID        `json:"connId"`
		UserID   domain.UserID      `json:"userId,omitempty"`
		Verified bool               `json:"verified"`
		Sessions []domain.SessionID `json:"sessions"`
	}{
		Type:     core.EvWhoAmI,
		ConnID:   c.id,
		UserID:   uid,
		Verified: verified,
		Sessions: rooms,
	}
	if resp.Sessions == nil {
		resp.Sessions = []domain.SessionID{}
	}
	ctl.sendJSON(c, resp)
}
