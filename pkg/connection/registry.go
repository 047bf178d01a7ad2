package connection

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nikhilkoche/Home-Assignment/pkg/logger"
	"github.com/nikhilkoche/Home-Assignment/pkg/observability"
)

var (
	// ErrIDExhausted is returned when a unique connection id could not be
	// derived after several salted attempts.
	ErrIDExhausted = errors.New("could not derive a unique connection id")
)

// closeWait bounds how long a graceful close frame write may take.
const closeWait = 5 * time.Second

// registerAttempts bounds id re-derivation when a truncated digest collides.
const registerAttempts = 5

// Registry manages all live chat connections
type Registry struct {
	mu      sync.Mutex
	conns   map[string]*Connection
	clients map[string]map[string]struct{}

	// MaxAttempts is the per-message send attempt limit.
	MaxAttempts int

	// Hooks for tests. backoffUnit scales the exponential retry pause;
	// sleep and now default to the real clock.
	backoffUnit time.Duration
	sleep       func(time.Duration)
	now         func() time.Time
}

// NewRegistry creates a new connection registry
func NewRegistry() *Registry {
	return &Registry{
		conns:       make(map[string]*Connection),
		clients:     make(map[string]map[string]struct{}),
		MaxAttempts: 3,
		backoffUnit: time.Second,
		sleep:       time.Sleep,
		now:         time.Now,
	}
}

// Register stores an accepted connection for the given client. The
// websocket handshake has already completed by the time the caller holds
// a Conn. Returns the session token and the derived connection id.
//
// A truncated digest can collide with a registered id; the token is
// re-salted and re-derived rather than overwriting the existing entry.
func (r *Registry) Register(clientID string, conn Conn) (string, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	base := fmt.Sprintf("%s-%d", clientID, r.now().UnixNano())
	sessionToken := base
	id := DeriveID(sessionToken)
	for attempt := 1; ; attempt++ {
		if _, exists := r.conns[id]; !exists {
			break
		}
		if attempt >= registerAttempts {
			return "", "", ErrIDExhausted
		}
		sessionToken = fmt.Sprintf("%s-%d", base, attempt)
		id = DeriveID(sessionToken)
	}

	c := &Connection{
		SessionToken: sessionToken,
		ID:           id,
		ClientID:     clientID,
		conn:         conn,
		live:         true,
	}
	r.conns[id] = c
	if _, ok := r.clients[clientID]; !ok {
		r.clients[clientID] = make(map[string]struct{})
	}
	r.clients[clientID][id] = struct{}{}

	observability.ActiveConnections.Inc()
	logger.Get().InfoWith("connection registered", "connID", id, "clientID", clientID)
	return sessionToken, id, nil
}

// Deregister removes a connection from the registry and closes its
// transport with a normal-closure frame carrying the reason. Unknown ids
// are a no-op, so concurrent or repeated calls for the same id act once.
// Close failures are swallowed: teardown never propagates an error.
func (r *Registry) Deregister(id string, reason string) {
	r.mu.Lock()
	c, ok := r.conns[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	wasLive := c.live
	c.live = false
	delete(r.conns, id)
	if set, ok := r.clients[c.ClientID]; ok {
		delete(set, id)
	}
	r.mu.Unlock()

	if wasLive {
		// WriteControl and Close are safe concurrently with other writes.
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, r.now().Add(closeWait))
		_ = c.conn.Close()
		observability.ActiveConnections.Dec()
		logger.Get().InfoWith("connection deregistered", "connID", id, "reason", reason)
	}
}

// IsLive reports whether the connection is registered and not closed
func (r *Registry) IsLive(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conns[id]
	return ok && c.live
}

// Count returns the number of registered connections
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

// ClientConnections returns the ids currently grouped under a client
func (r *Registry) ClientConnections(clientID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.clients[clientID]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

// get returns the connection for id, or nil if absent or closed.
func (r *Registry) get(id string) *Connection {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conns[id]
	if !ok || !c.live {
		return nil
	}
	return c
}
