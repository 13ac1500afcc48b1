package cohere

import (
	"context"
	"fmt"
	"net/http"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"maptruth/internal/adapters/observability"
)

// Generator runs prompts against the Cohere chat API. This is the hosted
// alternative to the local Ollama backend.
type Generator struct {
	client *cohereclient.Client
	model  string
}

func New(apiKey, model string, timeout time.Duration) (*Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("COHERE_API_KEY is required for the cohere backend")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &Generator{client: client, model: model}, nil
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	temp := 0.2
	start := time.Now()
	resp, err := g.client.Chat(ctx, &cohere.ChatRequest{
		Model:       &g.model,
		Message:     prompt,
		Temperature: &temp,
	})
	if err != nil {
		observability.ObserveExternal("cohere", "chat", 0, time.Since(start))
		return "", err
	}
	observability.ObserveExternal("cohere", "chat", 200, time.Since(start))
	return resp.Text, nil
}

// Ping is a no-op: the chat API has no cheap liveness endpoint, and a failed
// generation already surfaces as a sentinel-filled analysis.
func (g *Generator) Ping(ctx context.Context) error { return nil }
