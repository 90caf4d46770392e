package chat

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/dkeye/Live/internal/core"
	"github.com/dkeye/Live/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	EmptyRequestMessage = "Please provide a message or image."
	FallbackMessage     = "Sorry, I encountered an error processing your request. Please try again later."

	AttachmentErrorNote = "Note: There was an error processing the attached file."
	UnsupportedFileNote = "Note: The attached file type is not supported and was ignored."
)

// Request is one chat-message as received from the client.
type Request struct {
	Text     string    `json:"text"`
	File     string    `json:"file"`
	FileType string    `json:"fileType"`
	History  []Message `json:"history"`
}

func (r Request) Empty() bool {
	return strings.TrimSpace(r.Text) == "" && r.File == ""
}

// Outcome is the path a turn took before reaching stream end.
type Outcome int

const (
	OutcomeStreamed Outcome = iota
	OutcomeEmpty
	OutcomeFallback
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStreamed:
		return "streamed"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFallback:
		return "fallback"
	}
	return "unknown"
}

// Turn runs one chat turn: acquire the answer, then stream it or a fallback.
type Turn struct {
	assistant Assistant
	forwarder *Forwarder
	// Timeout bounds the upstream call; zero means no bound.
	Timeout time.Duration
	// Split turns an answer into chunks.
	Split func(string) iter.Seq[string]
}

func NewTurn(assistant Assistant, forwarder *Forwarder) *Turn {
	if assistant == nil {
		assistant = Unavailable{}
	}
	return &Turn{assistant: assistant, forwarder: forwarder}
}

// Handle always ends with exactly one chat-stream-end on conn.
func (t *Turn) Handle(ctx context.Context, conn core.ConnID, req Request) Outcome {
	logger := log.With().Str("module", "chat.turn").Str("conn", string(conn)).Logger()

	if req.Empty() {
		t.forwarder.Stream(ctx, conn, Whole(EmptyRequestMessage))
		return OutcomeEmpty
	}

	answer, err := t.acquire(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("upstream failed, sending fallback")
		t.forwarder.Stream(ctx, conn, Whole(FallbackMessage))
		return OutcomeFallback
	}

	split := t.Split
	if split == nil {
		split = Chars
	}
	n := t.forwarder.Stream(ctx, conn, split(answer))
	logger.Info().Int("chunks", n).Int("chars", len(answer)).Msg("answer streamed")
	return OutcomeStreamed
}

func (t *Turn) acquire(ctx context.Context, req Request) (string, error) {
	p := Prompt{Text: strings.TrimSpace(req.Text), History: req.History}
	if req.File != "" {
		att, err := decodeAttachment(req.File, req.FileType)
		switch {
		case err != nil:
			log.Warn().Err(err).Str("module", "chat.turn").Msg("attachment dropped")
			p.Notes = append(p.Notes, AttachmentErrorNote)
		case !att.Supported():
			log.Warn().Str("module", "chat.turn").Str("mime", att.MIMEType).Msg("unsupported attachment")
			p.Notes = append(p.Notes, UnsupportedFileNote)
		default:
			p.Attachment = att
		}
	}

	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}
	answer, err := t.assistant.Answer(ctx, p)
	if err != nil {
		if errors.Is(err, domain.ErrUpstream) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
	if strings.TrimSpace(answer) == "" {
		return "", fmt.Errorf("empty answer: %w", domain.ErrUpstream)
	}
	return answer, nil
}
