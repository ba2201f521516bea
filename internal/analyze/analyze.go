// Package analyze turns raw JD and CV text into structured profiles using an
// LLM structuring collaborator.
package analyze

import (
	"context"
	"strings"
)

// Generator is the text-generation contract used for structuring.
type Generator interface {
	Generate(ctx context.Context, prompt, systemPrompt string, temperature float32) (string, error)
}

// Embedder is the embedding-generation contract used for semantic matching.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// TextExtractor is the file-to-text contract provided by the extract package.
type TextExtractor interface {
	Extract(ctx context.Context, path, fileType string) (string, error)
}

// structuringTemperature keeps structuring output stable across runs.
const structuringTemperature = 0.1

// cleanJSONResponse strips markdown code fences and any text outside the
// outermost JSON object from an LLM response.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	if strings.HasSuffix(content, "```") {
		content = strings.TrimSuffix(content, "```")
	}

	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start != -1 && end != -1 && end > start {
		content = content[start : end+1]
	}

	return strings.TrimSpace(content)
}
