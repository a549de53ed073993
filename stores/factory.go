package stores

import (
	"fmt"
)

// NewStore creates a new query store based on the configuration
func NewStore(config *StoreConfig) (QueryStore, error) {
	switch config.Type {
	case "sqlite":
		return NewSQLiteStore(config)
	case "postgres":
		return NewPostgresStore(config)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}

// NewSQLiteStoreDefault creates a SQLite store with default settings
func NewSQLiteStoreDefault() (QueryStore, error) {
	return NewSQLiteStoreSimple("query_history.sqlite")
}

// NewPostgresStoreDefault creates a PostgreSQL store from individual
// connection parameters, typically taken from environment variables.
func NewPostgresStoreDefault(host, user, password, dbname string, port int) (QueryStore, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		host, user, password, dbname, port)
	return NewPostgresStoreSimple(dsn)
}
