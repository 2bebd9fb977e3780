package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cwrk-planet/meeting-service/internal/domain"
	httpmw "github.com/cwrk-planet/meeting-service/internal/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type Access interface {
	InProject(ctx context.Context, userID int64, ident, module string, perm domain.Permission) (*domain.Membership, error)
}

type Server struct {
	upgrader websocket.Upgrader
	hub      *Hub
	access   Access

	pingEvery time.Duration
}

func NewServer(hub *Hub, access Access) *Server {
	return &Server{
		hub:    hub,
		access: access,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin уже проверен CORS-слоем роутера
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
	}
}

// HandleWS: GET /ws/projects/{projectID}/meetings (за Auth-middleware).
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	uid := httpmw.UserIDFromCtx(r.Context())
	if uid == 0 {
		httpError(w, http.StatusUnauthorized, "missing user id")
		return
	}
	ident := chi.URLParam(r, "projectID")

	m, err := s.access.InProject(r.Context(), uid, ident, domain.ModuleMeetings, domain.PermViewMeetings)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProjectNotFound):
			httpError(w, http.StatusNotFound, "project not found")
		case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrModuleDisabled):
			httpError(w, http.StatusForbidden, err.Error())
		default:
			httpmw.L(r.Context()).Error("ws access check failed", "project", ident, "err", err)
			httpError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам ответил клиенту
		httpmw.L(r.Context()).Warn("ws upgrade failed", "err", err)
		return
	}

	c := newWsConn(conn, m.Project.ID, uid)
	s.hub.Add(c)
	defer s.hub.Remove(c)

	if err := c.Send(Message{Type: TypeHello, Payload: HelloPayload{ProjectID: m.Project.ID, UserID: uid}}); err != nil {
		httpmw.L(r.Context()).Debug("ws hello failed", "project", m.Project.ID, "user", uid, "err", err)
	}

	go s.writeLoop(r.Context(), c)
	s.readLoop(c)

	if err := c.Close(); err != nil {
		httpmw.L(r.Context()).Debug("ws close failed", "project", m.Project.ID, "user", uid, "err", err)
	}
}

// readLoop только держит соединение: клиент в ленту ничего не пишет.
func (s *Server) readLoop(c *wsConn) {
	c.conn.SetReadLimit(4 << 10)
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

func httpError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

type wsConn struct {
	conn      *websocket.Conn
	projectID int64
	userID    int64
	sendMu    chan struct{}
	closed    chan struct{}
}

func newWsConn(c *websocket.Conn, projectID, userID int64) *wsConn {
	return &wsConn{
		conn:      c,
		projectID: projectID,
		userID:    userID,
		sendMu:    make(chan struct{}, 1),
		closed:    make(chan struct{}),
	}
}

func (c *wsConn) Send(msg Message) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

	return c.conn.WriteJSON(msg)
}

func (c *wsConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}

	return c.conn.Close()
}

func (c *wsConn) UserID() int64    { return c.userID }
func (c *wsConn) ProjectID() int64 { return c.projectID }
