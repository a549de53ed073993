package sessions

import (
	"strings"
	"time"

	"github.com/sb2003/BioQuery-Local/models"
)

// RunInteraction handles one query frame end to end: progress status, the
// pipeline run, history persistence, the result frame, and the done marker.
func (qs *QuerySession) RunInteraction(req QueryRequest) error {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return qs.sendError("Empty query", false)
	}

	qs.StartTime = time.Now()
	if err := qs.Writer.WriteResponse(StatusMessage{Type: "status", Stage: "processing"}); err != nil {
		return &SessionError{Message: "Error writing status frame", Fatal: true}
	}

	result := qs.Pipeline.ProcessQuery(query)
	elapsed := time.Since(qs.StartTime)
	qs.Logger.Printf("Query processed in %v (tool=%s success=%v)", elapsed, result.Tool, result.Success)

	qs.saveResult(query, result)

	msg := ResultMessage{
		Type:      "result",
		Result:    result,
		ElapsedMS: elapsed.Milliseconds(),
	}
	if err := qs.Writer.WriteResponse(msg); err != nil {
		return &SessionError{Message: "Error writing result frame", Fatal: true}
	}

	return qs.Writer.WriteDone()
}

// saveResult persists the envelope when a store is attached. History is best
// effort: a failed write never fails the interaction.
func (qs *QuerySession) saveResult(query string, result models.ToolResult) {
	if qs.Store == nil {
		return
	}
	if err := qs.Store.SaveResult(result.ID, query, result.Tool, result.Success, result); err != nil {
		qs.Logger.Printf("Error saving query record: %v", err)
	}
}

// sendError sends an error message and returns a SessionError
func (qs *QuerySession) sendError(message string, fatal bool) error {
	qs.Logger.Printf("Error: %s (fatal: %v)", message, fatal)
	qs.Writer.WriteError(message)
	return &SessionError{Message: message, Fatal: fatal}
}
