package connection

import (
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeConn is a test double for the websocket transport.
type fakeConn struct {
	mu         sync.Mutex
	writes     []Message
	failWrites int // fail this many leading writes
	failAll    bool
	closed     int
	closeData  []byte
	writeErr   error
}

func (f *fakeConn) WriteJSON(v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll || f.failWrites > 0 {
		if f.failWrites > 0 {
			f.failWrites--
		}
		if f.writeErr != nil {
			return f.writeErr
		}
		return errBrokenPipe
	}
	f.writes = append(f.writes, v.(Message))
	return nil
}

func (f *fakeConn) WriteControl(messageType int, data []byte, deadline time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeData = append([]byte(nil), data...)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func (f *fakeConn) sent() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Message(nil), f.writes...)
}

func (f *fakeConn) closeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeConn) closeReason() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.closeData) < 2 {
		return ""
	}
	// Close payload is a 2-byte status code followed by the reason text.
	return string(f.closeData[2:])
}

var errBrokenPipe = &writeError{"broken pipe"}

type writeError struct{ msg string }

func (e *writeError) Error() string { return e.msg }

// newTestRegistry returns a registry that never really sleeps.
func newTestRegistry() (*Registry, *[]time.Duration) {
	r := NewRegistry()
	pauses := &[]time.Duration{}
	r.sleep = func(d time.Duration) {
		*pauses = append(*pauses, d)
	}
	return r, pauses
}

func TestRegisterReturnsTokenAndID(t *testing.T) {
	r, _ := newTestRegistry()
	token, id, err := r.Register("alice", &fakeConn{})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if !strings.HasPrefix(token, "alice-") {
		t.Errorf("Session token %q does not start with client id", token)
	}
	if id != DeriveID(token) {
		t.Errorf("Connection id %s is not derived from token %s", id, token)
	}
	if !r.IsLive(id) {
		t.Error("Freshly registered connection should be live")
	}
}

func TestRegisterGroupsByClient(t *testing.T) {
	r, _ := newTestRegistry()
	_, id1, _ := r.Register("alice", &fakeConn{})
	_, id2, _ := r.Register("alice", &fakeConn{})
	_, id3, _ := r.Register("bob", &fakeConn{})

	alice := r.ClientConnections("alice")
	if len(alice) != 2 {
		t.Fatalf("Expected 2 connections for alice, got %d", len(alice))
	}
	found := map[string]bool{}
	for _, id := range alice {
		found[id] = true
	}
	if !found[id1] || !found[id2] {
		t.Errorf("Alice group %v missing %s or %s", alice, id1, id2)
	}
	if bob := r.ClientConnections("bob"); len(bob) != 1 || bob[0] != id3 {
		t.Errorf("Bob group = %v, want [%s]", bob, id3)
	}
}

func TestDeregisterRemovesConnection(t *testing.T) {
	r, _ := newTestRegistry()
	conn := &fakeConn{}
	_, id, _ := r.Register("alice", conn)

	r.Deregister(id, "Connection closed")

	if r.IsLive(id) {
		t.Error("Deregistered connection still live")
	}
	if r.Count() != 0 {
		t.Errorf("Registry count = %d after deregister, want 0", r.Count())
	}
	if len(r.ClientConnections("alice")) != 0 {
		t.Error("Connection id still grouped under client after deregister")
	}
	if conn.closeCount() != 1 {
		t.Errorf("Transport closed %d times, want 1", conn.closeCount())
	}
	if got := conn.closeReason(); got != "Connection closed" {
		t.Errorf("Close reason = %q, want %q", got, "Connection closed")
	}
}

func TestDeregisterUnknownIsNoOp(t *testing.T) {
	r, _ := newTestRegistry()
	r.Deregister("nope", "whatever") // must not panic
	if r.Count() != 0 {
		t.Error("Registry should stay empty")
	}
}

func TestDeregisterIdempotent(t *testing.T) {
	r, _ := newTestRegistry()
	conn := &fakeConn{}
	_, id, _ := r.Register("alice", conn)

	r.Deregister(id, "Connection closed")
	r.Deregister(id, "Connection closed")

	if conn.closeCount() != 1 {
		t.Errorf("Transport closed %d times after double deregister, want 1", conn.closeCount())
	}
}

func TestDeregisterConcurrent(t *testing.T) {
	r, _ := newTestRegistry()
	conn := &fakeConn{}
	_, id, _ := r.Register("alice", conn)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Deregister(id, "Connection closed")
		}()
	}
	wg.Wait()

	if conn.closeCount() != 1 {
		t.Errorf("Transport closed %d times under concurrent deregister, want 1", conn.closeCount())
	}
}

func TestRegisterCollisionDoesNotOverwrite(t *testing.T) {
	r, _ := newTestRegistry()
	// Freeze the clock so both registrations build the same base token.
	fixed := time.Unix(1700000000, 0)
	r.now = func() time.Time { return fixed }

	first := &fakeConn{}
	second := &fakeConn{}
	_, id1, err := r.Register("alice", first)
	if err != nil {
		t.Fatalf("First register failed: %v", err)
	}
	_, id2, err := r.Register("alice", second)
	if err != nil {
		t.Fatalf("Second register failed: %v", err)
	}
	if id1 == id2 {
		t.Fatalf("Colliding registration reused id %s", id1)
	}
	if !r.IsLive(id1) || !r.IsLive(id2) {
		t.Error("Both connections should stay live after a collision")
	}
}

func TestIsLiveReflectsOperations(t *testing.T) {
	r, _ := newTestRegistry()
	if r.IsLive("absent") {
		t.Error("Unknown id reported live")
	}
	_, id, _ := r.Register("alice", &fakeConn{})
	if !r.IsLive(id) {
		t.Error("Registered id not live")
	}
	r.Deregister(id, "Connection closed")
	if r.IsLive(id) {
		t.Error("Deregistered id reported live")
	}
}
