package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pathforge/roadmap/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type RoadmapGenConfig struct {
	RequestPath string // "-" reads stdin
	OutputPath  string // "-" writes stdout
	Operation   string // generate, adapt, or backfill
	FastMode    bool

	BraveAPIKey      string
	YouTubeAPIKey    string
	CuratedListsPath string
	LogLevel         string
}

func (ac *AppConfig) Load() (*RoadmapGenConfig, error) {
	if err := env.LoadDotEnv(ac.ENV, "cmd/roadmap_gen/.env"); err != nil {
		slog.Info("Failed to load .env, continuing with existing environment variables", "error", err)
	}

	cfg := &RoadmapGenConfig{
		BraveAPIKey:      os.Getenv("BRAVE_API_KEY"),
		YouTubeAPIKey:    os.Getenv("YOUTUBE_API_KEY"),
		CuratedListsPath: os.Getenv("CURATED_LISTS_PATH"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
	}

	flag.StringVar(&cfg.RequestPath, "request", "-", "path to the request JSON file, - for stdin")
	flag.StringVar(&cfg.OutputPath, "out", "-", "path to write the roadmap JSON, - for stdout")
	flag.StringVar(&cfg.Operation, "op", "generate", "operation: generate, adapt, or backfill")
	flag.BoolVar(&cfg.FastMode, "fast", false, "trim search fan-out to save provider quota")
	flag.Parse()

	return cfg, nil
}
