package realtime

import (
	"sync"

	"github.com/gorilla/websocket"

	appLog "github.com/FlintShadey/huddleuptime/internal/log"
)

// Router tracks live websocket sessions and fans payloads out to them.
// Several sessions per participant are allowed (one per browser tab).
type Router struct {
	mu       sync.RWMutex
	sessions map[string]*Connection // sessionID -> connection
}

func NewRouter() *Router {
	return &Router{sessions: make(map[string]*Connection)}
}

// Attach registers conn and starts its writer.
func (r *Router) Attach(conn *Connection) {
	r.mu.Lock()
	r.sessions[conn.ID] = conn
	n := len(r.sessions)
	r.mu.Unlock()

	conn.Start()
	appLog.Debug("realtime session attached", "session", conn.ID, "participant", conn.Participant, "sessions", n)
}

// Detach removes conn if it is still tracked.
func (r *Router) Detach(conn *Connection) {
	r.mu.Lock()
	delete(r.sessions, conn.ID)
	r.mu.Unlock()
}

// Broadcast writes payload to every session and returns how many accepted it.
func (r *Router) Broadcast(payload []byte) int {
	r.mu.RLock()
	conns := make([]*Connection, 0, len(r.sessions))
	for _, c := range r.sessions {
		conns = append(conns, c)
	}
	r.mu.RUnlock()

	delivered := 0
	for _, c := range conns {
		if err := c.Send(payload); err == nil {
			delivered++
		} else {
			r.Detach(c)
		}
	}
	return delivered
}

// Len reports the number of tracked sessions.
func (r *Router) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close terminates all tracked connections.
func (r *Router) Close() {
	r.mu.Lock()
	conns := make([]*Connection, 0, len(r.sessions))
	for _, c := range r.sessions {
		conns = append(conns, c)
	}
	r.sessions = make(map[string]*Connection)
	r.mu.Unlock()

	for _, c := range conns {
		c.Close(websocket.CloseGoingAway, "server shutdown")
	}
}
