package server

import (
	"log"
	"sync"
)

// Hub owns every live room session. Each session is independent; the hub only
// guards the registry itself.
type Hub struct {
	mu     sync.Mutex
	rooms  map[string]*RoomSession
	logger *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{rooms: make(map[string]*RoomSession), logger: logger}
}

// CreateRoom allocates a new empty room and returns its session.
func (h *Hub) CreateRoom(title string) *RoomSession {
	session := NewRoomSession(NewRoom(title), h.logger)
	h.mu.Lock()
	h.rooms[session.ID()] = session
	h.mu.Unlock()
	h.logger.Printf("created room %s", session.ID())
	return session
}

// Room returns the session for id.
func (h *Hub) Room(id string) (*RoomSession, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	session, ok := h.rooms[id]
	return session, ok
}

// RoomCount returns the number of live rooms.
func (h *Hub) RoomCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}
