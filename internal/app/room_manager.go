package app

import (
	"sync"

	"github.com/dkeye/Live/internal/core"
	"github.com/dkeye/Live/internal/domain"
)

type RoomManagerImpl struct {
	mu    sync.RWMutex
	rooms map[domain.SessionID]core.RoomService
}

func NewRoomManager() core.RoomManager {
	return &RoomManagerImpl{rooms: make(map[domain.SessionID]core.RoomService)}
}

func (f *RoomManagerImpl) GetOrCreate(id domain.SessionID) core.RoomService {
	f.mu.RLock()
	room, ok := f.rooms[id]
	f.mu.RUnlock()
	if ok {
		return room
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if room, ok = f.rooms[id]; ok {
		return room
	}
	room = core.NewRoomService(id)
	f.rooms[id] = room
	return room
}

func (f *RoomManagerImpl) Get(id domain.SessionID) (core.RoomService, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	room, ok := f.rooms[id]
	return room, ok
}

func (f *RoomManagerImpl) RoomsOf(conn core.ConnID) []core.RoomService {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []core.RoomService
	for _, r := range f.rooms {
		if r.Has(conn) {
			out = append(out, r)
		}
	}
	return out
}

func (f *RoomManagerImpl) List() []core.RoomInfo {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(f.rooms))
	for id, r := range f.rooms {
		out = append(out, core.RoomInfo{ID: id, MemberCount: r.MemberCount()})
	}
	return out
}

func (f *RoomManagerImpl) StopRoom(id domain.SessionID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rooms, id)
}
