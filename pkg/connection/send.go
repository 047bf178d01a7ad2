package connection

import (
	"time"

	"github.com/nikhilkoche/Home-Assignment/pkg/logger"
	"github.com/nikhilkoche/Home-Assignment/pkg/observability"
)

// Send delivers a message to one connection. Sending to an unknown or
// closed connection is silently dropped. Failed attempts are retried up
// to MaxAttempts times with an exponential pause (1, 2, 4... backoff
// units) between attempts; if every attempt fails the connection is
// deregistered and the error is absorbed. A failed push to one client
// never takes down the caller.
func (r *Registry) Send(id string, msg Message) {
	c := r.get(id)
	if c == nil {
		return
	}

	attempts := r.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		c.writeMu.Lock()
		err := c.conn.WriteJSON(msg)
		c.writeMu.Unlock()
		if err == nil {
			observability.MessagesSentTotal.WithLabelValues(msg.Type).Inc()
			return
		}
		lastErr = err

		if attempt < attempts-1 {
			observability.SendRetriesTotal.Inc()
			logger.Get().WarnWith("send failed, retrying",
				"connID", id, "attempt", attempt+1, "error", err)
			r.sleep(time.Duration(1<<uint(attempt)) * r.backoffUnit)
		}
	}

	observability.SendFailuresTotal.Inc()
	r.Deregister(id, "Failed to send message: "+lastErr.Error())
}
