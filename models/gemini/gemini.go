package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

// Gemini_Model implements the Model interface against the Gemini API. It is
// an optional cloud backend for machines without a local Ollama install;
// the client reads GEMINI_API_KEY from the environment.
type Gemini_Model struct {
	Model string
}

// Generate_Text implements the Model interface.
func (g *Gemini_Model) Generate_Text(prompt string) (string, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	modelToUse := g.Model
	if modelToUse == "" {
		modelToUse = DefaultModel
	}

	result, err := client.Models.GenerateContent(ctx, modelToUse, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates in gemini response")
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}
