package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings, loaded once at startup.
type Config struct {
	Port          string
	HNBaseURL     string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// DBPath enables the OpenGraph cache; feed enrichment is disabled
	// when empty.
	DBPath string

	// FeedKeywords are the defaults for GET /feed when the request
	// carries none.
	FeedKeywords []string

	LogLevel slog.Level
}

// loadConfig reads configuration from the environment, after loading an
// optional .env file. Missing values fall back to working defaults; the
// only setting without one is OPENAI_API_KEY, whose absence disables
// the synthesis endpoint.
func loadConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg := Config{
		Port:          envOr("PORT", "8080"),
		HNBaseURL:     envOr("HN_API_URL", defaultHNBaseURL),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   envOr("OPENAI_MODEL", "gpt-4o-mini"),
		DBPath:        os.Getenv("DB_PATH"),
		FeedKeywords:  splitKeywords(envOr("FEED_KEYWORDS", "ai,startup,saas")),
		LogLevel:      parseLogLevel(os.Getenv("LOG_LEVEL")),
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitKeywords splits a comma-separated list, trimming each entry and
// dropping empties.
func splitKeywords(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
