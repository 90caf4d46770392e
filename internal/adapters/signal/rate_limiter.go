package signal

import (
	"sync"

	"github.com/dkeye/Live/internal/core"
	"golang.org/x/time/rate"
)

// ChatRateLimiter holds one token bucket per connection.
type ChatRateLimiter struct {
	mu       sync.Mutex
	limiters map[core.ConnID]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewChatRateLimiter allows perSecond messages with the given burst.
// A non-positive rate disables limiting.
func NewChatRateLimiter(perSecond float64, burst int) *ChatRateLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &ChatRateLimiter{
		limiters: make(map[core.ConnID]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

func (rl *ChatRateLimiter) Allow(id core.ConnID) bool {
	rl.mu.Lock()
	l, ok := rl.limiters[id]
	if !ok {
		l = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[id] = l
	}
	rl.mu.Unlock()
	return l.Allow()
}

func (rl *ChatRateLimiter) Forget(id core.ConnID) {
	rl.mu.Lock()
	delete(rl.limiters, id)
	rl.mu.Unlock()
}
