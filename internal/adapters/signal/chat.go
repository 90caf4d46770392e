package signal

import (
	"context"

	"github.com/dkeye/Live/internal/app/chat"
	"github.com/dkeye/Live/internal/core"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleChat(ctx context.Context, c *WsSignalConn, data []byte) {
	if !ctl.limiter.Allow(c.id) {
		ctl.sendError(c, errRateLimited)
		ctl.sendJSON(c, core.ChatStreamEnd{Type: core.EvChatStreamEnd})
		return
	}
	var req chat.Request
	if err := ctl.decode(data, &req); err != nil {
		ctl.sendError(c, err)
		ctl.sendJSON(c, core.ChatStreamEnd{Type: core.EvChatStreamEnd})
		return
	}
	// The read pump keeps serving signaling while the answer streams.
	go ctl.runTurn(ctx, c, req)
}

// runTurn queues behind any turn still streaming on c.
func (ctl *SignalWSController) runTurn(ctx context.Context, c *WsSignalConn, req chat.Request) {
	c.turnMu.Lock()
	defer c.turnMu.Unlock()
	outcome := ctl.Turn.Handle(ctx, c.id, req)
	log.Info().Str("module", "signal").Str("conn", string(c.id)).Str("outcome", outcome.String()).Msg("chat turn done")
}
