package stores

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLiteStore implements QueryStore for SQLite databases
type SQLiteStore struct {
	db   *gorm.DB
	path string
}

// NewSQLiteStore creates a new SQLite store
func NewSQLiteStore(config *StoreConfig) (*SQLiteStore, error) {
	if config.Type != "sqlite" {
		return nil, fmt.Errorf("invalid store type for SQLite store: %s", config.Type)
	}

	store := &SQLiteStore{
		path: config.Connection,
	}

	if err := store.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	return store, nil
}

// NewSQLiteStoreSimple creates a new SQLite store with just a file path
func NewSQLiteStoreSimple(dbPath string) (*SQLiteStore, error) {
	config := NewStoreConfig("sqlite", dbPath)
	return NewSQLiteStore(config)
}

// Connect establishes a connection to the SQLite database
func (s *SQLiteStore) Connect() error {
	db, err := gorm.Open(sqlite.Open(s.path), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	s.db = db

	// Auto-migrate the schema
	if err := s.db.AutoMigrate(&QueryRecord{}); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (s *SQLiteStore) Ping() error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}

// SaveResult stores a processed query with its marshaled result envelope.
func (s *SQLiteStore) SaveResult(queryID, query, tool string, success bool, result interface{}) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result for database: %w", err)
	}

	record := QueryRecord{
		QueryID:    queryID,
		Query:      query,
		Tool:       tool,
		Success:    success,
		ResultJSON: string(resultJSON),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to save query record: %w", err)
	}
	return nil
}

// ListRecent returns up to limit records, newest first.
func (s *SQLiteStore) ListRecent(limit int) ([]QueryRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if limit <= 0 {
		limit = 20
	}

	var records []QueryRecord
	if err := s.db.Order("created_at desc").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list query records: %w", err)
	}
	return records, nil
}

// GetByQueryID fetches a single record by its public query ID.
func (s *SQLiteStore) GetByQueryID(queryID string) (*QueryRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	var record QueryRecord
	if err := s.db.Where("query_id = ?", queryID).First(&record).Error; err != nil {
		return nil, fmt.Errorf("query record %s not found: %w", queryID, err)
	}
	return &record, nil
}

// PruneOlderThan deletes records created more than age ago and returns the
// number removed.
func (s *SQLiteStore) PruneOlderThan(age time.Duration) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}

	cutoff := time.Now().Add(-age)
	res := s.db.Unscoped().Where("created_at < ?", cutoff).Delete(&QueryRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to prune query records: %w", res.Error)
	}
	return res.RowsAffected, nil
}
