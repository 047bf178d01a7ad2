// Package rag implements the retrieval-augmented answer collaborator:
// conversation history, question condensation, passage retrieval, and
// streamed generation over an OpenAI-compatible backend.
package rag

import (
	"sync"

	"github.com/nikhilkoche/Home-Assignment/pkg/chat"
)

// maxHistoryTurns bounds the conversation window fed to the model.
const maxHistoryTurns = 10

// History keeps in-memory conversation history keyed by session token.
// History lives only as long as the process; a reconnecting user starts
// a fresh conversation.
type History struct {
	mu       sync.Mutex
	sessions map[string][]chat.Turn
}

// NewHistory creates an empty history store
func NewHistory() *History {
	return &History{
		sessions: make(map[string][]chat.Turn),
	}
}

// Get returns the recorded turns for a session, newest last
func (h *History) Get(sessionToken string) []chat.Turn {
	h.mu.Lock()
	defer h.mu.Unlock()
	turns := h.sessions[sessionToken]
	return append([]chat.Turn(nil), turns...)
}

// Append records turns for a session, keeping only the most recent window
func (h *History) Append(sessionToken string, turns ...chat.Turn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	all := append(h.sessions[sessionToken], turns...)
	if len(all) > maxHistoryTurns {
		all = all[len(all)-maxHistoryTurns:]
	}
	h.sessions[sessionToken] = all
}

// Drop forgets a session entirely
func (h *History) Drop(sessionToken string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, sessionToken)
}
