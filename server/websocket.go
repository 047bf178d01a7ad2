package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/nikhilkoche/Home-Assignment/pkg/connection"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleChat accepts a websocket for one chat session. The session scope
// registers the connection, greets the client, and pumps questions until
// the client disconnects, the receive timeout fires, or delivery fails.
func (s *Server) handleChat(c *gin.Context) {
	clientID := c.Param("client_id")
	if clientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client_id is required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.ErrorWithErr("Websocket upgrade failed", err, "clientID", clientID)
		return
	}

	err = connection.WithSession(s.registry, clientID, conn, func(sessionToken, connID string) error {
		s.registry.Send(connID, connection.StreamMessage(s.cfg.Chat.Greeting))
		s.registry.Send(connID, connection.DoneMessage())

		done := make(chan struct{})
		defer close(done)

		inbound := make(chan string)
		go s.readLoop(conn, inbound, done)

		s.pump.Run(c.Request.Context(), connID, sessionToken, inbound)
		return nil
	})
	if err != nil {
		s.log.ErrorWithErr("Chat session rejected", err, "clientID", clientID)
		conn.Close()
	}
}

// readLoop feeds inbound questions to the pump. It exits when the
// socket errors (closing inbound) or when the session scope ends.
func (s *Server) readLoop(conn *websocket.Conn, inbound chan<- string, done <-chan struct{}) {
	defer close(inbound)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			continue
		}
		select {
		case inbound <- text:
		case <-done:
			return
		}
	}
}
