package main

import (
	"fmt"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"maptruth/internal/adapters/cohere"
	"maptruth/internal/adapters/googlemaps"
	server "maptruth/internal/adapters/http_server"
	"maptruth/internal/adapters/observability"
	"maptruth/internal/adapters/ollama"
	redisad "maptruth/internal/adapters/redis"
	"maptruth/internal/app"
	"maptruth/internal/classifier"
	"maptruth/internal/domain"
	"maptruth/internal/resolver"
	"maptruth/internal/shared"
)

func main() {
	_ = godotenv.Load()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	gen, err := newGenerator(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("model backend init failed")
	}

	// The places client needs the key; without it the service still starts
	// but /analyze answers 500 until the key is configured.
	var places domain.PlacesClient
	if cfg.MapsKey != "" {
		places, err = googlemaps.New(cfg.MapsBase, cfg.MapsKey, 5, cfg.HTTPTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("maps client init failed")
		}
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		log.Info().Str("addr", cfg.RedisAddr).Msg("place details cache enabled")
	}

	res := resolver.New(places, cfg.HTTPTimeout)
	cls := classifier.New(gen)
	svc := app.NewAnalyzeService(res, places, cls, cache, cfg.CacheTTL, cfg.Workers)

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Svc: svc, Gen: gen, APIKeySet: cfg.MapsKey != ""})

	log.Info().Str("addr", cfg.HTTPAddr).Str("backend", cfg.LLMBackend).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
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
