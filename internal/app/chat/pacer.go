package chat

import (
	"context"
	"time"
)

const DefaultChunkDelay = 30 * time.Millisecond

// Pacer decides how long to hold each chunk before it is emitted.
type Pacer interface {
	Wait(ctx context.Context) error
}

type FixedDelay time.Duration

func (d FixedDelay) Wait(ctx context.Context) error {
	t := time.NewTimer(time.Duration(d))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type NoDelay struct{}

func (NoDelay) Wait(ctx context.Context) error { return ctx.Err() }
