package app

import (
	"encoding/json"

	"github.com/dkeye/Live/internal/core"
	"github.com/dkeye/Live/internal/domain"
	"github.com/rs/zerolog/log"
)

// Relay forwards signal envelopes to the other connections of a session room.
type Relay struct {
	notifier core.Notifier
	policy   Policy
	// Classify names the payload kind for logs; the payload itself is never altered.
	Classify func(json.RawMessage) string
}

func NewRelay(notifier core.Notifier, policy Policy) *Relay {
	return &Relay{notifier: notifier, policy: policy}
}

func (r *Relay) Forward(from core.ConnID, env domain.Envelope) core.PublishResult {
	logger := log.With().
		Str("module", "app.relay").
		Str("session", string(env.SessionID)).
		Str("from", string(env.SenderID)).
		Bool("initiator", env.Initiator).
		Logger()
	if r.Classify != nil {
		logger = logger.With().Str("kind", r.Classify(env.Payload)).Logger()
	}

	f, err := core.Encode(core.SignalRelayed{Type: core.EvSignal, Envelope: env})
	if err != nil {
		logger.Error().Err(err).Msg("encode signal")
		return core.PublishResult{}
	}

	res := r.notifier.EmitRoomExcept(env.SessionID, from, f)
	if res.SendTo == 0 && len(res.Dropped) == 0 {
		logger.Debug().Msg("no peers to relay to")
		return res
	}
	logger.Debug().Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("signal relayed")

	if r.policy == nil {
		return res
	}
	for _, slow := range res.Dropped {
		switch r.policy.OnBackPressure(env.SessionID, slow) {
		case KickMember:
			logger.Warn().Str("conn", string(slow.Signal().ID())).Msg("slow peer kicked")
			slow.Signal().Close()
		case NoAction:
		}
	}
	return res
}
