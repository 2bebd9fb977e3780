package ws

import (
	"sync"
)

type Conn interface {
	Send(msg Message) error
	Close() error
	UserID() int64
	ProjectID() int64
}

// Hub: подписки websocket-соединений на ленту встреч проекта.
type Hub struct {
	mu       sync.RWMutex
	projects map[int64]map[Conn]struct{} // projectID -> set of connections
}

func NewHub() *Hub {
	return &Hub{projects: make(map[int64]map[Conn]struct{})}
}

func (h *Hub) Add(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.projects[c.ProjectID()]
	if !ok {
		set = make(map[Conn]struct{})
		h.projects[c.ProjectID()] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) Remove(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.projects[c.ProjectID()]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.projects, c.ProjectID())
		}
	}
}

// Broadcast рассылает сообщение подписчикам проекта; возвращает число успешных отправок.
func (h *Hub) Broadcast(projectID int64, msg Message) int {
	h.mu.RLock()
	conns := make([]Conn, 0, len(h.projects[projectID]))
	for c := range h.projects[projectID] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	sent := 0
	for _, c := range conns {
		if c.Send(msg) == nil { // best-effort
			sent++
		}
	}
	return sent
}

func (h *Hub) Count(projectID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.projects[projectID])
}
