// Package chat drives one question/answer cycle per inbound message and
// streams incrementally-generated answers back over a chat connection.
// Retrieval and generation are external collaborators behind interfaces.
package chat

import "context"

// Passage is a retrieved document excerpt relevant to a query.
type Passage struct {
	Content string
	Source  string
	Page    int
	Score   float64
}

// Turn is one message of a conversation
type Turn struct {
	Role    string // "user" or "assistant"
	Content string
}

// Retriever returns relevant passages for a query given conversation
// history. Ranking and filtering are opaque to the chat core.
type Retriever interface {
	Retrieve(ctx context.Context, query string, history []Turn) ([]Passage, error)
}

// Increment is one element of an answer stream. Content is the full
// answer so far, not a delta: each element replaces the previous one on
// the client.
type Increment struct {
	Content string
	Err     error
}

// Answerer produces a lazy, finite sequence of cumulative answer strings
// for one user message. The session token keys conversation history in
// the collaborator.
type Answerer interface {
	Stream(ctx context.Context, message, sessionToken string) (<-chan Increment, error)
}
