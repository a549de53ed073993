package ollama

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "phi3:mini"
)

// Ollama generation is slow on CPU-only machines; the timeout is generous
// on purpose.
var httpClient = &http.Client{Timeout: 120 * time.Second}

// Ollama_Model implements the Model interface against a local Ollama server
// using its /api/generate endpoint.
type Ollama_Model struct {
	Model   string // Model identifier (e.g., "phi3:mini", "llama3.2")
	BaseURL string // Optional: Ollama server URL (defaults to OLLAMA_HOST or localhost)
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (o *Ollama_Model) baseURL() string {
	if o.BaseURL != "" {
		return o.BaseURL
	}
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		return host
	}
	return DefaultBaseURL
}

// Generate_Text implements the Model interface. It sends a single
// non-streaming generate request and returns the completion text.
func (o *Ollama_Model) Generate_Text(prompt string) (string, error) {
	modelToUse := o.Model
	if modelToUse == "" {
		modelToUse = DefaultModel
	}

	payload, err := json.Marshal(generateRequest{
		Model:  modelToUse,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	resp, err := httpClient.Post(o.baseURL()+"/api/generate", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(body))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode ollama response: %w", err)
	}
	return out.Response, nil
}

// Ping reports whether the Ollama server is reachable. Used by the
// diagnostic command, not by the query path.
func (o *Ollama_Model) Ping() error {
	resp, err := httpClient.Get(o.baseURL() + "/api/tags")
	if err != nil {
		return fmt.Errorf("ollama not reachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}
	return nil
}
