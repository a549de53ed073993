package stores

import (
	"time"

	"gorm.io/gorm"
)

// QueryRecord is one processed query and the result envelope it produced.
// The full ToolResult is kept as JSON so history replays exactly what the
// user saw.
type QueryRecord struct {
	gorm.Model
	QueryID    string `gorm:"uniqueIndex;not null"`
	Query      string `gorm:"type:text;not null"`
	Tool       string `gorm:"index"`
	Success    bool
	ResultJSON string `gorm:"type:json"`
}

// QueryStore abstracts query-history persistence.
type QueryStore interface {
	// History operations
	SaveResult(queryID, query, tool string, success bool, result interface{}) error
	ListRecent(limit int) ([]QueryRecord, error)
	GetByQueryID(queryID string) (*QueryRecord, error)
	PruneOlderThan(age time.Duration) (int64, error)

	// Connection management
	Connect() error
	Close() error

	// Health check
	Ping() error
}

// StoreConfig holds configuration for database stores
type StoreConfig struct {
	Type       string            `json:"type"`       // "sqlite", "postgres"
	Connection string            `json:"connection"` // connection string
	Options    map[string]string `json:"options"`    // additional options
}

// NewStoreConfig creates a new store configuration
func NewStoreConfig(storeType, connection string) *StoreConfig {
	return &StoreConfig{
		Type:       storeType,
		Connection: connection,
		Options:    make(map[string]string),
	}
}

// WithOption adds an option to the store configuration
func (c *StoreConfig) WithOption(key, value string) *StoreConfig {
	c.Options[key] = value
	return c
}
