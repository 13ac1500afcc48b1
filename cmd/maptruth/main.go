package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"maptruth/internal/adapters/cohere"
	"maptruth/internal/adapters/googlemaps"
	"maptruth/internal/adapters/observability"
	"maptruth/internal/adapters/ollama"
	redisad "maptruth/internal/adapters/redis"
	"maptruth/internal/app"
	"maptruth/internal/classifier"
	"maptruth/internal/domain"
	"maptruth/internal/resolver"
	"maptruth/internal/shared"
)

// Console mode: read one map URL from stdin, run the pipeline, print the
// report as JSON. The process exits normally even when the analysis fails.
func main() {
	_ = godotenv.Load()
	cfg := shared.Load()

	log.Logger = observability.NewLogger("dev")

	if cfg.MapsKey == "" {
		log.Fatal().Msg("GOOGLE_MAPS_API_KEY must be set")
	}

	places, err := googlemaps.New(cfg.MapsBase, cfg.MapsKey, 5, cfg.HTTPTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("maps client init failed")
	}
	gen, err := newGenerator(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("model backend init failed")
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}

	svc := app.NewAnalyzeService(
		resolver.New(places, cfg.HTTPTimeout),
		places,
		classifier.New(gen),
		cache,
		cfg.CacheTTL,
		cfg.Workers,
	)

	fmt.Print("Paste the map URL: ")
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		log.Error().Msg("no URL provided")
		return
	}
	url := strings.TrimSpace(sc.Text())

	report, err := svc.Analyze(context.Background(), url)
	if err != nil {
		log.Error().Err(err).Msg("analysis failed")
		return
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("marshal report failed")
		return
	}
	fmt.Println(string(out))
}

func newGenerator(cfg shared.Config) (domain.TextGenerator, error) {
	switch cfg.LLMBackend {
	case "ollama":
		return ollama.New(cfg.OllamaModel, 0)
	case "cohere":
		return cohere.New(cfg.CohereKey, cfg.CohereModel, 0)
	default:
		return nil, fmt.Errorf("unknown LLM_BACKEND %q", cfg.LLMBackend)
	}
}
