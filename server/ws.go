package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/sb2003/BioQuery-Local/sessions"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWebSocket upgrades the connection and runs the query message loop:
// one QueryRequest frame in, status/result/done frames out, until the client
// disconnects.
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	session := sessions.NewQuerySession(sessionID, conn, s.Pipeline, s.Store)

	for {
		var req sessions.QueryRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				session.Logger.Printf("WebSocket error: %v", err)
			}
			break
		}

		if err := session.RunInteraction(req); err != nil {
			if sessErr, ok := err.(*sessions.SessionError); ok && sessErr.Fatal {
				session.Logger.Printf("Fatal error: %v", err)
				break
			}
			session.Logger.Printf("Non-fatal error: %v", err)
		}
	}

	session.Logger.Printf("WebSocket session ended")
}
