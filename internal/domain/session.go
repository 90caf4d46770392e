package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

const DefaultLabel = "Live Session"

type SessionID string

// NewSessionID returns an identifier unique within the process lifetime.
func NewSessionID() SessionID {
	return SessionID("session_" + uuid.NewString())
}

// Session is one live broadcast. Viewers behaves as a set.
type Session struct {
	ID        SessionID `json:"sessionId"`
	OwnerID   UserID    `json:"ownerId"`
	Label     string    `json:"label"`
	StartedAt time.Time `json:"startedAt"`
	Viewers   []UserID  `json:"viewers"`
}

func NewSession(id SessionID, owner UserID, label string, now time.Time) Session {
	if label == "" {
		label = DefaultLabel
	}
	return Session{
		ID:        id,
		OwnerID:   owner,
		Label:     label,
		StartedAt: now,
		Viewers:   []UserID{},
	}
}

// Clone returns a copy that shares no memory with s.
func (s Session) Clone() Session {
	out := s
	out.Viewers = slices.Clone(s.Viewers)
	if out.Viewers == nil {
		out.Viewers = []UserID{}
	}
	return out
}

func (s Session) ViewerCount() int { return len(s.Viewers) }

func (s Session) HasViewer(u UserID) bool {
	return slices.Contains(s.Viewers, u)
}

func (s Session) IsOwner(u UserID) bool {
	return u != "" && s.OwnerID == u
}

// AddViewer inserts u if absent and reports whether the set changed.
func (s *Session) AddViewer(u UserID) bool {
	if s.HasViewer(u) {
		return false
	}
	s.Viewers = append(s.Viewers, u)
	return true
}

func (s *Session) RemoveViewer(u UserID) bool {
	i := slices.Index(s.Viewers, u)
	if i < 0 {
		return false
	}
	s.Viewers = slices.Delete(s.Viewers, i, i+1)
	return true
}
