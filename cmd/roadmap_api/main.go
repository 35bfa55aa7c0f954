// Package main Roadmap API
// @title Roadmap API
// @version 1.0
// @description Resource discovery and selection for learning roadmaps
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/pathforge/roadmap/internal/apperr"
	"github.com/pathforge/roadmap/internal/cache"
	"github.com/pathforge/roadmap/internal/classify"
	"github.com/pathforge/roadmap/internal/curated"
	"github.com/pathforge/roadmap/internal/pipeline"
	"github.com/pathforge/roadmap/internal/router"
	"github.com/pathforge/roadmap/internal/score"
	"github.com/pathforge/roadmap/internal/search"
	"github.com/pathforge/roadmap/internal/server"
	"github.com/pathforge/roadmap/internal/videometa"
	"github.com/pathforge/roadmap/pkg/logger"
	pkgserver "github.com/pathforge/roadmap/pkg/server"
)

func main() {
	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	logger.Setup(logger.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		LogFile: cfg.LogFile,
		Service: "roadmap-api",
	})

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	store, err := buildCache(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize cache backend", "backend", cfg.CacheBackend, "error", err)
		os.Exit(1)
	}

	provider, err := buildSearchProvider(cfg)
	if err != nil {
		slog.Error("Failed to initialize search provider", "provider", cfg.SearchProvider, "error", err)
		os.Exit(1)
	}

	classifier := classify.New(loadCuratedLists(cfg.CuratedListsPath))

	var enricher *videometa.Enricher
	if cfg.YouTubeAPIKey != "" {
		enricher = videometa.NewEnricher(videometa.NewYouTubeClient(cfg.YouTubeAPIKey), store)
	}

	ranker := buildRanker(cfg, classifier)

	p := pipeline.New(search.NewAdapter(provider, store), enricher, ranker, classifier)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()

	s := server.NewServer(e, sCfg)

	roadmapRouter := router.NewRoadmapRouter(e, p, pkgserver.NewOkHealthChecker())
	roadmapRouter.Bind()

	if err := s.Start(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func buildCache(ctx context.Context, cfg *RoadmapAPIConfig) (cache.Store, error) {
	switch cfg.CacheBackend {
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return cache.NewRedis(redis.NewClient(opts)), nil
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return cache.NewPostgres(ctx, pool)
	default:
		return cache.NewMemory(), nil
	}
}

func buildSearchProvider(cfg *RoadmapAPIConfig) (search.Provider, error) {
	if cfg.SearchProvider == "elasticsearch" {
		return search.NewESProvider(search.ESConfig{
			Addresses: cfg.ESAddresses,
			IndexName: cfg.ESIndexName,
			Username:  cfg.ESUsername,
			Password:  cfg.ESPassword,
		})
	}
	return search.NewBraveClient(cfg.BraveAPIKey), nil
}

func buildRanker(cfg *RoadmapAPIConfig, classifier *classify.Classifier) score.Ranker {
	heuristic := score.NewHeuristic(classifier)
	if cfg.LLMEndpoint == "" {
		return heuristic
	}
	client := score.NewOpenAIClient(cfg.LLMEndpoint, cfg.LLMModel, cfg.LLMAPIKey)
	return score.NewLLMRanker(client, heuristic)
}

func loadCuratedLists(path string) *curated.Lists {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		slog.Warn("Failed to open curated lists file, using defaults", "path", path, "error", err)
		return nil
	}
	defer f.Close()

	lists, err := curated.Load(f)
	if err != nil {
		slog.Warn("Failed to parse curated lists file, using defaults", "path", path, "error", err)
		return nil
	}
	return lists
}
