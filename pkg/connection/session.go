package connection

// WithSession registers an accepted connection, runs fn with the session
// token and connection id, and deregisters on every exit path: normal
// return, error, or panic. Deregister is idempotent, so a session that
// already tore itself down (e.g. after a receive timeout) is not closed
// twice.
func WithSession(r *Registry, clientID string, conn Conn, fn func(sessionToken, connID string) error) error {
	sessionToken, connID, err := r.Register(clientID, conn)
	if err != nil {
		return err
	}
	defer r.Deregister(connID, "Connection closed")
	return fn(sessionToken, connID)
}
