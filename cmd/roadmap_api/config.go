package main

import (
	"log/slog"
	"os"

	"github.com/pathforge/roadmap/pkg/config/env"
	"github.com/pathforge/roadmap/pkg/stringsutil"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type RoadmapAPIConfig struct {
	SearchProvider string // brave or elasticsearch
	BraveAPIKey    string

	ESAddresses []string
	ESIndexName string
	ESUsername  string
	ESPassword  string

	CacheBackend string // memory, redis, or postgres
	RedisURL     string
	DatabaseURL  string

	YouTubeAPIKey string

	LLMEndpoint string
	LLMModel    string
	LLMAPIKey   string

	CuratedListsPath string

	LogLevel  string
	LogFormat string
	LogFile   string
}

func (ac *AppConfig) Load() (*RoadmapAPIConfig, error) {
	if err := env.LoadDotEnv(ac.ENV, "cmd/roadmap_api/.env"); err != nil {
		slog.Info("Failed to load .env, continuing with existing environment variables", "error", err)
	}

	cfg := &RoadmapAPIConfig{
		SearchProvider:   getEnv("SEARCH_PROVIDER", "brave"),
		BraveAPIKey:      os.Getenv("BRAVE_API_KEY"),
		ESIndexName:      getEnv("ES_INDEX_NAME", "learning-resources"),
		ESUsername:       os.Getenv("ES_USERNAME"),
		ESPassword:       os.Getenv("ES_PASSWORD"),
		CacheBackend:     getEnv("CACHE_BACKEND", "memory"),
		RedisURL:         os.Getenv("REDIS_URL"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		YouTubeAPIKey:    os.Getenv("YOUTUBE_API_KEY"),
		LLMEndpoint:      os.Getenv("LLM_ENDPOINT"),
		LLMModel:         getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMAPIKey:        os.Getenv("LLM_API_KEY"),
		CuratedListsPath: os.Getenv("CURATED_LISTS_PATH"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		LogFile:          os.Getenv("LOG_FILE"),
	}

	cfg.ESAddresses = stringsutil.SplitAndTrim(os.Getenv("ES_ADDRESSES"), ",")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
