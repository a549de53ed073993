package sessions

import (
	"fmt"
	"log"
	"os"

	"github.com/gorilla/websocket"

	"github.com/sb2003/BioQuery-Local/stores"
)

// NewQuerySession creates a new WebSocket query session
func NewQuerySession(sessionID string, conn *websocket.Conn, pipeline QueryRunner, store stores.QueryStore) *QuerySession {
	logger := log.New(os.Stdout, fmt.Sprintf("[WS %s] ", sessionID), log.LstdFlags)
	writer := &WebSocketWriter{
		Conn:   conn,
		Logger: logger,
	}

	return &QuerySession{
		Pipeline:  pipeline,
		SessionID: sessionID,
		Writer:    writer,
		Store:     store,
		Logger:    logger,
	}
}
