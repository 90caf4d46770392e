package chat

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/dkeye/Live/internal/core"
	"github.com/rs/zerolog/log"
)

// Forwarder emits a chunk sequence to one connection and always closes the
// stream with a single chat-stream-end.
type Forwarder struct {
	notifier core.Notifier
	pacer    Pacer
}

func NewForwarder(notifier core.Notifier, pacer Pacer) *Forwarder {
	if pacer == nil {
		pacer = FixedDelay(DefaultChunkDelay)
	}
	return &Forwarder{notifier: notifier, pacer: pacer}
}

// Stream returns the number of chunks delivered. A closed target or a cancelled
// ctx stops delivery without an error.
func (f *Forwarder) Stream(ctx context.Context, conn core.ConnID, chunks iter.Seq[string]) int {
	logger := log.With().Str("module", "chat.forwarder").Str("conn", string(conn)).Logger()
	sent := 0
	defer func() {
		end, err := core.Encode(core.ChatStreamEnd{Type: core.EvChatStreamEnd})
		if err != nil {
			logger.Error().Err(err).Msg("encode stream end")
			return
		}
		if err := f.emit(context.WithoutCancel(ctx), conn, end); err != nil {
			logger.Debug().Err(err).Msg("stream end not delivered")
		}
	}()

	for chunk := range chunks {
		if err := f.pacer.Wait(ctx); err != nil {
			logger.Debug().Err(err).Int("sent", sent).Msg("stream cancelled")
			return sent
		}
		frame, err := core.Encode(core.ChatChunk{Type: core.EvChatChunk, Text: chunk})
		if err != nil {
			logger.Error().Err(err).Msg("encode chunk")
			return sent
		}
		if err := f.emit(ctx, conn, frame); err != nil {
			logger.Warn().Err(err).Int("sent", sent).Msg("target gone, aborting stream")
			return sent
		}
		sent++
	}
	logger.Debug().Int("sent", sent).Msg("stream complete")
	return sent
}

const (
	retryDelay = 5 * time.Millisecond
	maxRetries = 40
)

// emit retries while the connection queue is full; any other error is final.
func (f *Forwarder) emit(ctx context.Context, conn core.ConnID, frame core.Frame) error {
	for attempt := 0; ; attempt++ {
		err := f.notifier.EmitTo(conn, frame)
		if err == nil || !errors.Is(err, core.ErrBackpressure) || attempt == maxRetries {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay):
		}
	}
}
