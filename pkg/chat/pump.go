package chat

import (
	"context"
	"time"

	"github.com/nikhilkoche/Home-Assignment/pkg/connection"
	"github.com/nikhilkoche/Home-Assignment/pkg/logger"
	"github.com/nikhilkoche/Home-Assignment/pkg/observability"
)

// Canned user-visible notices. Failures resolve to a chat message or a
// silent disconnect, never a raw error dump.
const (
	TimeoutNotice = "I'm sorry, I didn't receive a message for a while. Please try again."
	ErrorNotice   = "I'm sorry, something went wrong while answering that. Please try asking again."
)

// Sender is the slice of the connection registry the pump uses.
type Sender interface {
	Send(id string, msg connection.Message)
	Deregister(id, reason string)
	IsLive(id string) bool
}

// Pump forwards answer increments for one connection
type Pump struct {
	conns    Sender
	answerer Answerer

	// ReceiveTimeout bounds the wait for the next inbound question.
	ReceiveTimeout time.Duration
}

// NewPump creates a pump over the given registry and answer collaborator
func NewPump(conns Sender, answerer Answerer, receiveTimeout time.Duration) *Pump {
	if receiveTimeout <= 0 {
		receiveTimeout = time.Hour
	}
	return &Pump{
		conns:          conns,
		answerer:       answerer,
		ReceiveTimeout: receiveTimeout,
	}
}

// Run processes inbound questions for one connection until the inbound
// channel closes (client disconnect), the context is cancelled, the
// receive timeout expires, or the connection dies mid-send. One question
// is answered at a time; no new inbound message is consumed until the
// current cycle completes.
func (p *Pump) Run(ctx context.Context, connID, sessionToken string, inbound <-chan string) {
	for {
		timer := time.NewTimer(p.ReceiveTimeout)
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case message, ok := <-inbound:
			timer.Stop()
			if !ok {
				// Transport reader is gone; the session scope tears down.
				return
			}
			p.cycle(ctx, connID, sessionToken, message)
			if !p.conns.IsLive(connID) {
				return
			}

		case <-timer.C:
			p.conns.Send(connID, connection.StreamMessage(TimeoutNotice))
			p.conns.Send(connID, connection.DoneMessage())
			p.conns.Deregister(connID, "Connection timeout")
			return
		}
	}
}

// cycle answers a single question. Collaborator failures end the cycle,
// not the session: the user gets a notice and the next question is still
// accepted.
func (p *Pump) cycle(ctx context.Context, connID, sessionToken, message string) {
	start := time.Now()
	defer func() {
		observability.AnswerDuration.Observe(time.Since(start).Seconds())
	}()

	stream, err := p.answerer.Stream(ctx, message, sessionToken)
	if err != nil {
		logger.Get().ErrorWithErr("answer stream failed to start", err, "connID", connID)
		p.conns.Send(connID, connection.StreamMessage(ErrorNotice))
		p.conns.Send(connID, connection.DoneMessage())
		return
	}

	for inc := range stream {
		if inc.Err != nil {
			logger.Get().ErrorWithErr("answer stream failed", inc.Err, "connID", connID)
			p.conns.Send(connID, connection.StreamMessage(ErrorNotice))
			break
		}
		p.conns.Send(connID, connection.StreamMessage(inc.Content))
	}
	p.conns.Send(connID, connection.DoneMessage())
}
