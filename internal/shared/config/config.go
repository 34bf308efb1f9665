package config

import (
	"log"
	"os"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	DatabaseURL string
	RedisURL    string

	ReasoningAPIKey  string
	ReasoningModel   string
	ReasoningBaseURL string

	PatternsEndpoint string
	PatternsAPIKey   string

	SearchEndpoint string
	SearchAPIKey   string
	SearchEngineID string

	TunablesFile string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && os.Getenv("REASONING_API_KEY") == "" {
		log.Printf("REASONING_API_KEY is not set; falling back to the local heuristic classifier")
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		Env:              env,
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:      dbURL,
		RedisURL:         os.Getenv("REDIS_URL"),
		ReasoningAPIKey:  os.Getenv("REASONING_API_KEY"),
		ReasoningModel:   getEnv("REASONING_MODEL", "gpt-4o-mini"),
		ReasoningBaseURL: os.Getenv("REASONING_BASE_URL"),
		PatternsEndpoint: os.Getenv("PATTERNS_ENDPOINT"),
		PatternsAPIKey:   os.Getenv("PATTERNS_API_KEY"),
		SearchEndpoint:   getEnv("SEARCH_ENDPOINT", "https://www.googleapis.com/customsearch/v1"),
		SearchAPIKey:     os.Getenv("SEARCH_API_KEY"),
		SearchEngineID:   os.Getenv("SEARCH_ENGINE_ID"),
		TunablesFile:     getEnv("TUNABLES_FILE", "detect.yaml"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
