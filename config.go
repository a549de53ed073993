package bioquery

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything needed to build a BioQuery pipeline and its web
// surface.
type Config struct {
	Backend       string // "ollama" (default) or "gemini"
	ModelName     string // model identifier for the chosen backend
	OllamaHost    string // Ollama server URL; empty uses OLLAMA_HOST/localhost
	EntrezEmail   string // identifies this client to NCBI
	StoreType     string // "sqlite" or "postgres"
	StoreDSN      string // sqlite path or postgres DSN
	Addr          string // HTTP listen address
	RetentionDays int    // history records older than this are pruned
}

// NewConfig returns a Config populated from the environment with sensible
// defaults. A .env file is honored when present.
func NewConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Backend:       envOr("BIOQUERY_BACKEND", "ollama"),
		ModelName:     os.Getenv("BIOQUERY_MODEL"),
		OllamaHost:    os.Getenv("OLLAMA_HOST"),
		EntrezEmail:   os.Getenv("ENTREZ_EMAIL"),
		StoreType:     envOr("BIOQUERY_STORE", "sqlite"),
		StoreDSN:      envOr("BIOQUERY_DB", "query_history.sqlite"),
		Addr:          ":" + envOr("PORT", "8080"),
		RetentionDays: 30,
	}
	if days := os.Getenv("BIOQUERY_RETENTION_DAYS"); days != "" {
		if v, err := strconv.Atoi(days); err == nil && v > 0 {
			cfg.RetentionDays = v
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// WithBackend sets the model backend for the configuration
func (c *Config) WithBackend(backend string) *Config {
	c.Backend = backend
	return c
}

// WithModelName sets the model name for the configuration
func (c *Config) WithModelName(modelName string) *Config {
	c.ModelName = modelName
	return c
}

// WithStore sets the store type and connection for the configuration
func (c *Config) WithStore(storeType, dsn string) *Config {
	c.StoreType = storeType
	c.StoreDSN = dsn
	return c
}
