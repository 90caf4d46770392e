package core

import "github.com/dkeye/Live/internal/domain"

//go:generate mockgen -source=notifier_iface.go -destination=mock_core/notifier.go -package=mock_core

// Notifier is the emit capability handed to components that talk to clients.
type Notifier interface {
	// Broadcast reaches every connected client, member of a room or not.
	Broadcast(f Frame)
	EmitRoom(room domain.SessionID, f Frame) PublishResult
	EmitRoomExcept(room domain.SessionID, except ConnID, f Frame) PublishResult
	// EmitTo returns ErrConnClosed when conn is gone.
	EmitTo(conn ConnID, f Frame) error
}
