package signal

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dkeye/Live/internal/core"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) writePump(ctx context.Context, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.settings.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Str("conn", string(c.id)).Msg("writePump ctx done")
			c.Close()
			return
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.settings.WriteWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("module", "signal").Str("conn", string(c.id)).Msg("writePump ping")
				return
			}
		case data, ok := <-c.send:
			if !ok {
				log.Debug().Str("module", "signal").Str("conn", string(c.id)).Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.settings.WriteWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Str("conn", string(c.id)).Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, cancel context.CancelFunc, c *WsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("conn", string(c.id)).Msg("readPump closing")
		cancel()
		ctl.limiter.Forget(c.id)
		ctl.Orch.OnDisconnect(c.id)
		c.Close()
	}()

	c.conn.SetReadLimit(ctl.settings.ReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(ctl.settings.pongWait()))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(ctl.settings.pongWait()))
	})

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("conn", string(c.id)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warn().Err(err).Str("module", "signal").Str("conn", string(c.id)).Msg("readPump read error")
				}
				return
			}
			ctl.handleSignal(ctx, c, data)
		}
	}
}

func (ctl *SignalWSController) handleSignal(ctx context.Context, c *WsSignalConn, data []byte) {
	var env struct {
		Type core.EventType `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad json")
		ctl.sendError(c, errBadPayload)
		return
	}

	switch env.Type {
	case core.EvStartSession:
		ctl.handleStart(c, data)
	case core.EvJoinSession:
		ctl.handleJoin(c, data)
	case core.EvEndSession:
		ctl.handleEnd(c, data)
	case core.EvSignal:
		ctl.handleRelay(c, data)
	case core.EvGetActiveSessions:
		ctl.handleActive(c)
	case core.EvChatMessage:
		ctl.handleChat(ctx, c, data)
	case core.EvPing:
		ctl.handlePing(c)
	case core.EvWhoAmI:
		ctl.handleWhoAmI(c)
	default:
		log.Warn().Str("module", "signal").Str("type", string(env.Type)).Msg("unknown event")
		ctl.sendError(c, errUnknownEvent)
	}
}

// decode unmarshals data into p and runs struct validation.
func (ctl *SignalWSController) decode(data []byte, p any) error {
	if err := json.Unmarshal(data, p); err != nil {
		return errBadPayload
	}
	if err := ctl.validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return invalidField(verrs[0].Field())
		}
		return errBadPayload
	}
	return nil
}

func (ctl *SignalWSController) sendJSON(c *WsSignalConn, v any) {
	b, err := core.Encode(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	if err := c.TrySend(b); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("conn", string(c.id)).Msg("sendJSON dropped")
	}
}
