package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/nikhilkoche/Home-Assignment/pkg/chat"
	"github.com/nikhilkoche/Home-Assignment/pkg/llm"
	"github.com/nikhilkoche/Home-Assignment/pkg/logger"
)

// Generator is the slice of the llm client the answerer uses.
type Generator interface {
	Complete(ctx context.Context, req llm.ChatRequest) (string, error)
	Stream(ctx context.Context, req llm.ChatRequest) (<-chan llm.StreamEvent, error)
}

// Answerer produces cumulative answer streams grounded in retrieved
// passages. It implements chat.Answerer.
type Answerer struct {
	retriever   chat.Retriever
	gen         Generator
	history     *History
	model       string
	temperature float64
}

// NewAnswerer creates the production answer collaborator
func NewAnswerer(retriever chat.Retriever, gen Generator, history *History, model string, temperature float64) *Answerer {
	return &Answerer{
		retriever:   retriever,
		gen:         gen,
		history:     history,
		model:       model,
		temperature: temperature,
	}
}

// Stream answers one question. Each element on the returned channel is
// the full answer so far; the channel closes when generation completes.
// The conversation history for the session token gains the user/assistant
// turn pair only after a successful generation.
func (a *Answerer) Stream(ctx context.Context, message, sessionToken string) (<-chan chat.Increment, error) {
	history := a.history.Get(sessionToken)

	question := a.condense(ctx, history, message)

	passages, err := a.retriever.Retrieve(ctx, question, history)
	if err != nil {
		return nil, fmt.Errorf("retrieving passages: %w", err)
	}

	temp := a.temperature
	events, err := a.gen.Stream(ctx, llm.ChatRequest{
		Model:       a.model,
		Messages:    BuildQAMessages(passages, history, message),
		Temperature: &temp,
	})
	if err != nil {
		return nil, fmt.Errorf("starting generation: %w", err)
	}

	out := make(chan chat.Increment)
	go func() {
		defer close(out)
		var content strings.Builder
		for ev := range events {
			if ev.Err != nil {
				out <- chat.Increment{Err: ev.Err}
				return
			}
			if ev.Content == "" {
				continue
			}
			content.WriteString(ev.Content)
			out <- chat.Increment{Content: content.String()}
		}
		a.history.Append(sessionToken,
			chat.Turn{Role: "user", Content: message},
			chat.Turn{Role: "assistant", Content: content.String()},
		)
	}()
	return out, nil
}

// condense reformulates a follow-up into a standalone question. Without
// history there is nothing to resolve; on failure the original message
// is retrieved as-is rather than failing the cycle.
func (a *Answerer) condense(ctx context.Context, history []chat.Turn, message string) string {
	if len(history) == 0 {
		return message
	}
	question, err := a.gen.Complete(ctx, llm.ChatRequest{
		Model:    a.model,
		Messages: BuildCondenseMessages(history, message),
	})
	if err != nil || strings.TrimSpace(question) == "" {
		logger.Get().WarnWith("question condensation failed, using raw message", "error", err)
		return message
	}
	return question
}
