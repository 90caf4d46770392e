package app

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/dkeye/Live/internal/core"
)

// Compile-time interface check.
var _ core.SignalConnection = (*fakeConn)(nil)

type fakeConn struct {
	id   core.ConnID
	full bool

	mu     sync.Mutex
	frames []core.Frame
	closed bool
}

func newFakeConn(id core.ConnID) *fakeConn { return &fakeConn{id: id} }

func (c *fakeConn) ID() core.ConnID { return c.id }

func (c *fakeConn) TrySend(f core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return core.ErrConnClosed
	}
	if c.full {
		return core.ErrBackpressure
	}
	c.frames = append(c.frames, f)
	return nil
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// types returns the "type" field of every frame received, in order.
func (c *fakeConn) types(t *testing.T) []core.EventType {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]core.EventType, 0, len(c.frames))
	for _, f := range c.frames {
		var env struct {
			Type core.EventType `json:"type"`
		}
		if err := json.Unmarshal(f, &env); err != nil {
			t.Fatalf("bad frame %s: %v", f, err)
		}
		out = append(out, env.Type)
	}
	return out
}

// last decodes the most recent frame of type typ into v and reports whether one existed.
func (c *fakeConn) last(t *testing.T, typ core.EventType, v any) bool {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.frames) - 1; i >= 0; i-- {
		var env struct {
			Type core.EventType `json:"type"`
		}
		if err := json.Unmarshal(c.frames[i], &env); err != nil {
			t.Fatalf("bad frame: %v", err)
		}
		if env.Type == typ {
			if err := json.Unmarshal(c.frames[i], v); err != nil {
				t.Fatalf("decode %s: %v", typ, err)
			}
			return true
		}
	}
	return false
}

func (c *fakeConn) count(t *testing.T, typ core.EventType) int {
	t.Helper()
	n := 0
	for _, got := range c.types(t) {
		if got == typ {
			n++
		}
	}
	return n
}

// world wires the real app components over fake connections.
type world struct {
	conns    *Connections
	rooms    core.RoomManager
	hub      *Hub
	sessions *SessionRegistry
	tracker  *Tracker
	relay    *Relay
}

func newWorld() *world {
	conns := NewConnections()
	rooms := NewRoomManager()
	hub := NewHub(conns, rooms)
	sessions := NewSessionRegistry(NewMemoryStore(), hub)
	return &world{
		conns:    conns,
		rooms:    rooms,
		hub:      hub,
		sessions: sessions,
		tracker:  NewTracker(sessions, rooms, hub),
		relay:    NewRelay(hub, SimplePolicy{}),
	}
}

func (w *world) connect(id core.ConnID) *fakeConn {
	c := newFakeConn(id)
	w.conns.Bind(c, "", nil)
	return c
}
