package core

import (
	"github.com/dkeye/Live/internal/domain"
)

// PublishResult reports delivery stats/backpressure to orchestrator.
type PublishResult struct {
	SendTo  int
	Dropped []MemberSession
}

// MemberDTO is a read-only view for APIs (no transport fields).
type MemberDTO struct {
	User domain.UserID `json:"userId"`
	Role domain.Role   `json:"role"`
}

// RoomService is the routing group of one session.
// It owns the membership set but never touches transport resources.
type RoomService interface {
	ID() domain.SessionID
	MemberCount() int
	MembersSnapshot() []MemberDTO
	Has(conn ConnID) bool

	AddMember(ms MemberSession)
	RemoveMember(conn ConnID) (MemberSession, bool)
	// Broadcast sends data to every member except from. An empty from reaches everyone.
	Broadcast(from ConnID, data Frame) PublishResult
}

type RoomInfo struct {
	ID          domain.SessionID `json:"sessionId"`
	MemberCount int              `json:"connections"`
}

type RoomManager interface {
	GetOrCreate(id domain.SessionID) RoomService
	Get(id domain.SessionID) (RoomService, bool)
	RoomsOf(conn ConnID) []RoomService
	List() []RoomInfo
	StopRoom(id domain.SessionID)
}
