package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	MapsKey  string
	MapsBase string

	LLMBackend  string // ollama | cohere
	OllamaModel string
	CohereKey   string
	CohereModel string

	RedisAddr string
	RedisPass string
	RedisDB   int

	Workers     int
	CacheTTL    time.Duration
	HTTPTimeout time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		MapsKey:     env("GOOGLE_MAPS_API_KEY", ""),
		MapsBase:    env("MAPS_BASE_URL", "https://maps.googleapis.com/maps/api"),
		LLMBackend:  env("LLM_BACKEND", "ollama"),
		OllamaModel: env("OLLAMA_MODEL", "gemma2:2b"),
		CohereKey:   env("COHERE_API_KEY", ""),
		CohereModel: env("COHERE_MODEL", "command-r"),
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		Workers:     atoi("ANALYZE_WORKERS", 1),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		HTTPTimeout: time.Duration(atoi("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
	}
	if c.MapsKey == "" {
		log.Warn().Msg("GOOGLE_MAPS_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
