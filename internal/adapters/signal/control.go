package signal

import (
	"errors"
	"fmt"

	"github.com/dkeye/Live/internal/core"
	"github.com/dkeye/Live/internal/domain"
	"github.com/rs/zerolog/log"
)

var (
	errBadPayload   = fmt.Errorf("bad payload: %w", domain.ErrInvalidRequest)
	errUnknownEvent = fmt.Errorf("unknown event: %w", domain.ErrInvalidRequest)
	errRateLimited  = errors.New("too many messages, slow down")
)

func invalidField(name string) error {
	return fmt.Errorf("%s is required: %w", name, domain.ErrInvalidRequest)
}

// errorEvent maps an application error onto the wire error event.
func errorEvent(err error) core.ErrorEvent {
	ev := core.ErrorEvent{Type: core.EvError}
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		ev.Code, ev.Message = "session_not_found", "Session not found or has ended"
	case errors.Is(err, domain.ErrForbidden):
		ev.Code, ev.Message = "forbidden", "Not allowed for this session"
	case errors.Is(err, domain.ErrInvalidRequest):
		ev.Code, ev.Message = "invalid_request", err.Error()
	case errors.Is(err, errRateLimited):
		ev.Code, ev.Message = "rate_limited", err.Error()
	default:
		ev.Code, ev.Message = "internal", "Internal error"
	}
	return ev
}

func (ctl *SignalWSController) sendError(c *WsSignalConn, err error) {
	ev := errorEvent(err)
	log.Debug().Err(err).Str("module", "signal").Str("conn", string(c.id)).Str("code", ev.Code).Msg("error event")
	ctl.sendJSON(c, ev)
}

func (ctl *SignalWSController) handlePing(c *WsSignalConn) {
	ctl.sendJSON(c, struct {
		Type core.EventType `json:"type"`
	}{Type: core.EvPong})
}
