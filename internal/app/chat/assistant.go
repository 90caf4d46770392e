package chat

import (
	"context"
	"fmt"

	"github.com/dkeye/Live/internal/domain"
)

//go:generate mockgen -source=assistant.go -destination=mock_chat/assistant.go -package=mock_chat

// Assistant produces the full answer for one prompt.
type Assistant interface {
	Answer(ctx context.Context, p Prompt) (string, error)
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Attachment is a decoded file sent along with the question.
type Attachment struct {
	MIMEType string
	Data     []byte
}

type Prompt struct {
	Text       string
	History    []Message
	Attachment *Attachment
	// Notes are remarks about attachment processing appended to the question.
	Notes []string
}

// Unavailable is used when no assistant backend is configured.
type Unavailable struct{}

func (Unavailable) Answer(context.Context, Prompt) (string, error) {
	return "", fmt.Errorf("assistant not configured: %w", domain.ErrUpstream)
}
