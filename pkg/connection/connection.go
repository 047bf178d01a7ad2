// Package connection tracks live websocket chat connections. A Registry
// owns the mapping from connection id to connection state, groups
// connections by client, and delivers JSON messages with bounded retry.
package connection

import (
	"sync"
	"time"
)

// Message type values used on the wire.
const (
	TypeStream = "stream"
	TypeDone   = "done"
)

// Message is a structured record sent to a chat client.
type Message struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// StreamMessage builds a cumulative answer-text message.
func StreamMessage(content string) Message {
	return Message{Type: TypeStream, Content: content}
}

// DoneMessage marks the end of one answer cycle.
func DoneMessage() Message {
	return Message{Type: TypeDone, Content: ""}
}

// Conn is the subset of *websocket.Conn the registry needs. Tests supply
// fakes; production code passes the upgraded gorilla connection.
type Conn interface {
	WriteJSON(v any) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
}

// Connection represents one accepted chat connection
type Connection struct {
	// SessionToken is the composite "<clientID>-<timestamp>" identifier
	// handed to the answer collaborator for conversation continuity.
	SessionToken string
	// ID is the short registry key derived from the session token.
	ID       string
	ClientID string

	conn Conn
	// live flips false exactly once, on the first close attempt.
	live    bool
	writeMu sync.Mutex // serializes transport writes (not thread-safe)
}
