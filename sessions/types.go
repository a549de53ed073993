package sessions

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sb2003/BioQuery-Local/models"
	"github.com/sb2003/BioQuery-Local/stores"
)

// QueryRunner is what a session needs from the pipeline. Defined here as an
// interface to avoid an import cycle with the root package.
type QueryRunner interface {
	ProcessQuery(query string) models.ToolResult
}

// SessionError represents errors that can occur during session operations
type SessionError struct {
	Message string
	Fatal   bool
}

func (e *SessionError) Error() string {
	return e.Message
}

// WebSocketWriter handles all WebSocket communication. Writes are serialized
// behind a mutex because a session may emit status frames from multiple
// goroutines.
type WebSocketWriter struct {
	Conn   *websocket.Conn
	Logger *log.Logger
	mu     sync.Mutex
}

func (w *WebSocketWriter) WriteResponse(resp interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Conn.WriteJSON(resp)
}

func (w *WebSocketWriter) WriteError(message string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Conn.WriteJSON(map[string]string{"error": message})
}

func (w *WebSocketWriter) WriteDone() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Conn.WriteJSON(map[string]string{"type": "done"})
}

// QueryRequest is the frame a WebSocket client sends to run a query.
type QueryRequest struct {
	Query string `json:"query"`
}

// StatusMessage reports pipeline progress to the client.
type StatusMessage struct {
	Type  string `json:"type"` // always "status"
	Stage string `json:"stage"`
}

// ResultMessage carries the finished result envelope to the client.
type ResultMessage struct {
	Type      string            `json:"type"` // always "result"
	Result    models.ToolResult `json:"result"`
	ElapsedMS int64             `json:"elapsed_ms"`
}

// QuerySession encapsulates WebSocket query interaction logic
type QuerySession struct {
	Pipeline  QueryRunner
	SessionID string
	Writer    *WebSocketWriter
	Store     stores.QueryStore // optional: nil disables history
	Logger    *log.Logger
	StartTime time.Time
}
