package server

// Package server exposes the query pipeline over HTTP: a small JSON API, a
// WebSocket endpoint for interactive clients, and the bundled single-page UI.

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	bioquery "github.com/sb2003/BioQuery-Local"
	"github.com/sb2003/BioQuery-Local/stores"
)

// Server wires the pipeline, the history store, and the scheduled history
// pruning together behind a gin router.
type Server struct {
	Pipeline  *bioquery.BioQuery
	Store     stores.QueryStore
	Retention time.Duration

	cron *cron.Cron
}

// New builds a server. Store may be nil, which disables history endpoints
// and persistence.
func New(pipeline *bioquery.BioQuery, store stores.QueryStore, retentionDays int) *Server {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &Server{
		Pipeline:  pipeline,
		Store:     store,
		Retention: time.Duration(retentionDays) * 24 * time.Hour,
	}
}

type queryRequest struct {
	Query string `json:"query" binding:"required"`
}

type historyEntry struct {
	QueryID   string    `json:"query_id"`
	Query     string    `json:"query"`
	Tool      string    `json:"tool"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"created_at"`
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
	})

	r := router.Group("/api/v1")

	r.POST("/query", func(c *gin.Context) {
		var req queryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result := s.Pipeline.ProcessQuery(req.Query)
		if s.Store != nil {
			if err := s.Store.SaveResult(result.ID, req.Query, result.Tool, result.Success, result); err != nil {
				log.Printf("Error saving query record: %v", err)
			}
		}
		c.JSON(http.StatusOK, result)
	})

	r.GET("/examples", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"examples":  s.Pipeline.GetExampleQueries(),
			"sequences": s.Pipeline.GetExamples(),
		})
	})

	r.GET("/history", func(c *gin.Context) {
		if s.Store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history is disabled"})
			return
		}

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		records, err := s.Store.ListRecent(limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		entries := make([]historyEntry, 0, len(records))
		for _, rec := range records {
			entries = append(entries, historyEntry{
				QueryID:   rec.QueryID,
				Query:     rec.Query,
				Tool:      rec.Tool,
				Success:   rec.Success,
				CreatedAt: rec.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"history": entries})
	})

	r.GET("/history/:id", func(c *gin.Context) {
		if s.Store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history is disabled"})
			return
		}

		record, err := s.Store.GetByQueryID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "query not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"query_id":   record.QueryID,
			"query":      record.Query,
			"tool":       record.Tool,
			"success":    record.Success,
			"created_at": record.CreatedAt,
			"result":     json.RawMessage(record.ResultJSON),
		})
	})

	r.GET("/ws", s.handleWebSocket)

	return router
}

// startPruning schedules the nightly history cleanup.
func (s *Server) startPruning() {
	if s.Store == nil {
		return
	}
	s.cron = cron.New()
	s.cron.AddFunc("@daily", func() {
		n, err := s.Store.PruneOlderThan(s.Retention)
		if err != nil {
			log.Printf("History pruning failed: %v", err)
			return
		}
		log.Printf("History pruning removed %d records older than %v", n, s.Retention)
	})
	s.cron.Start()
}

// Run starts the pruning schedule and serves the API on addr, blocking until
// the listener fails.
func (s *Server) Run(addr string) error {
	s.startPruning()
	defer func() {
		if s.cron != nil {
			s.cron.Stop()
		}
	}()
	return s.Router().Run(addr)
}
