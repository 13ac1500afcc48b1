package ollama

import (
	"context"
	"strings"
	"time"

	api "github.com/jmorganca/ollama/api"

	"maptruth/internal/adapters/observability"
)

// Generator runs prompts against a local Ollama server. The server address
// comes from OLLAMA_HOST (the client library's own convention).
type Generator struct {
	model   string
	client  *api.Client
	timeout time.Duration
}

func New(model string, timeout time.Duration) (*Generator, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Generator{model: model, client: client, timeout: timeout}, nil
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var out strings.Builder
	start := time.Now()
	err := g.client.Generate(ctx, &api.GenerateRequest{
		Model:  g.model,
		Prompt: prompt,
		Options: map[string]interface{}{
			"temperature": 0.2, // keep output close to deterministic
		},
	}, func(res api.GenerateResponse) error {
		out.WriteString(res.Response)
		return nil
	})
	if err != nil {
		observability.ObserveExternal("ollama", "generate", 0, time.Since(start))
		return "", err
	}
	observability.ObserveExternal("ollama", "generate", 200, time.Since(start))
	return out.String(), nil
}

func (g *Generator) Ping(ctx context.Context) error {
	return g.client.Heartbeat(ctx)
}
