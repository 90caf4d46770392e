package core

import (
	"encoding/json"

	"github.com/dkeye/Live/internal/domain"
)

type EventType string

// Client to server.
const (
	EvStartSession      EventType = "start-session"
	EvJoinSession       EventType = "join-session"
	EvEndSession        EventType = "end-session"
	EvSignal            EventType = "signal"
	EvGetActiveSessions EventType = "get-active-sessions"
	EvChatMessage       EventType = "chat-message"
	EvPing              EventType = "ping"
	EvWhoAmI            EventType = "whoami"
)

// Server to client.
const (
	EvSessionCreated EventType = "session-created"
	EvSessionStarted EventType = "session-started"
	EvSessionEnded   EventType = "session-ended"
	EvViewerJoined   EventType = "viewer-joined"
	EvActiveSessions EventType = "active-sessions"
	EvChatChunk      EventType = "chat-chunk"
	EvChatStreamEnd  EventType = "chat-stream-end"
	EvError          EventType = "error"
	EvPong           EventType = "pong"
)

type SessionCreated struct {
	Type      EventType        `json:"type"`
	SessionID domain.SessionID `json:"sessionId"`
}

type SessionStarted struct {
	Type    EventType      `json:"type"`
	Session domain.Session `json:"session"`
}

type SessionEnded struct {
	Type      EventType        `json:"type"`
	SessionID domain.SessionID `json:"sessionId"`
}

type ViewerJoined struct {
	Type        EventType        `json:"type"`
	SessionID   domain.SessionID `json:"sessionId"`
	UserID      domain.UserID    `json:"userId"`
	ViewerCount int              `json:"viewerCount"`
}

type SignalRelayed struct {
	Type EventType `json:"type"`
	domain.Envelope
}

type ActiveSessions struct {
	Type     EventType        `json:"type"`
	Sessions []domain.Session `json:"sessions"`
}

type ChatChunk struct {
	Type EventType `json:"type"`
	Text string    `json:"text"`
}

type ChatStreamEnd struct {
	Type EventType `json:"type"`
}

type ErrorEvent struct {
	Type    EventType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"error"`
}

// Encode marshals an event into a frame.
func Encode(v any) (Frame, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return Frame(b), nil
}
