package domain

import "encoding/json"

// Envelope is a connection-negotiation message relayed between peers of one session.
// Payload is never inspected by the relay.
type Envelope struct {
	SessionID SessionID       `json:"sessionId"`
	SenderID  UserID          `json:"from"`
	Initiator bool            `json:"initiator"`
	Payload   json.RawMessage `json:"signal"`
}
