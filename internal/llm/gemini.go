// Package llm wraps the Google GenAI SDK behind the two narrow contracts the
// pipeline needs: text generation for structuring and embedding generation
// for semantic matching.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultModel          = "gemini-2.0-flash"
	defaultEmbeddingModel = "text-embedding-004"
)

// Config holds Gemini client settings. The API key comes from the
// environment, never from config files.
type Config struct {
	APIKey         string
	Model          string
	EmbeddingModel string
}

// Client talks to the Gemini API for structuring and embeddings.
type Client struct {
	client         *genai.Client
	model          string
	embeddingModel string
}

// NewClient creates a Gemini client for the API backend.
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	embeddingModel := strings.TrimSpace(cfg.EmbeddingModel)
	if embeddingModel == "" {
		embeddingModel = defaultEmbeddingModel
	}

	return &Client{
		client:         client,
		model:          model,
		embeddingModel: embeddingModel,
	}, nil
}

// Generate sends the prompt with an optional system instruction and returns
// the concatenated textual response.
func (c *Client) Generate(ctx context.Context, prompt, systemPrompt string, temperature float32) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	}
	if systemPrompt = strings.TrimSpace(systemPrompt); systemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

// Embed generates one embedding vector per input text, preserving order.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, errors.New("at least one text is required")
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, &genai.Content{
			Parts: []*genai.Part{{Text: text}},
		})
	}

	resp, err := c.client.Models.EmbedContent(ctx, c.embeddingModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}

	vectors := make([][]float64, len(resp.Embeddings))
	for i, embedding := range resp.Embeddings {
		if embedding == nil {
			return nil, fmt.Errorf("embedding %d is missing", i)
		}
		vec := make([]float64, len(embedding.Values))
		for j, v := range embedding.Values {
			vec[j] = float64(v)
		}
		vectors[i] = vec
	}

	return vectors, nil
}
