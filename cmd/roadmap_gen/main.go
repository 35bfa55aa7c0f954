// One-shot roadmap generation: read a request as JSON, run the pipeline,
// write the populated module list and diagnostics as JSON.
package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/pathforge/roadmap/internal/cache"
	"github.com/pathforge/roadmap/internal/classify"
	"github.com/pathforge/roadmap/internal/curated"
	"github.com/pathforge/roadmap/internal/pipeline"
	"github.com/pathforge/roadmap/internal/search"
	"github.com/pathforge/roadmap/internal/videometa"
	"github.com/pathforge/roadmap/pkg/logger"
)

func main() {
	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Setup(logger.Options{Level: cfg.LogLevel, Service: "roadmap-gen"})

	req, err := readRequest(cfg.RequestPath)
	if err != nil {
		slog.Error("failed to read request", "path", cfg.RequestPath, "error", err)
		os.Exit(1)
	}
	req.FastMode = req.FastMode || cfg.FastMode

	classifier := classify.New(loadCuratedLists(cfg.CuratedListsPath))
	store := cache.NewMemory()

	var enricher *videometa.Enricher
	if cfg.YouTubeAPIKey != "" {
		enricher = videometa.NewEnricher(videometa.NewYouTubeClient(cfg.YouTubeAPIKey), store)
	}

	p := pipeline.New(
		search.NewAdapter(search.NewBraveClient(cfg.BraveAPIKey), store),
		enricher, nil, classifier)

	resp, err := run(p, cfg.Operation, req)
	if err != nil {
		slog.Error("pipeline run failed", "operation", cfg.Operation, "error", err)
		os.Exit(1)
	}

	if err := writeResponse(cfg.OutputPath, resp); err != nil {
		slog.Error("failed to write output", "path", cfg.OutputPath, "error", err)
		os.Exit(1)
	}
}

func run(p *pipeline.Pipeline, operation string, req *pipeline.Request) (*pipeline.Response, error) {
	ctx := context.Background()
	switch operation {
	case "adapt":
		return p.Adapt(ctx, req)
	case "backfill":
		return p.Backfill(ctx, req)
	default:
		return p.Generate(ctx, req)
	}
}

func readRequest(path string) (*pipeline.Request, error) {
	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}

	var req pipeline.Request
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func writeResponse(path string, resp *pipeline.Response) error {
	var out io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func loadCuratedLists(path string) *curated.Lists {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		slog.Warn("failed to open curated lists file, using defaults", "path", path, "error", err)
		return nil
	}
	defer f.Close()

	lists, err := curated.Load(f)
	if err != nil {
		slog.Warn("failed to parse curated lists file, using defaults", "path", path, "error", err)
		return nil
	}
	return lists
}
