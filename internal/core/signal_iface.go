package core

import "errors"

// Frame is an encoded event ready for the wire.
type Frame []byte

// ConnID identifies one client transport connection.
type ConnID string

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

// SignalConnection abstracts for a system messaging transport
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	ID() ConnID
	TrySend(Frame) error
	Close()
}
