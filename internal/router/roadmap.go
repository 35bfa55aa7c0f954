// Package router binds the roadmap pipeline's HTTP endpoints.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pathforge/roadmap/internal/metrics"
	"github.com/pathforge/roadmap/internal/pipeline"
	srv "github.com/pathforge/roadmap/pkg/server"
)

type RoadmapRouter struct {
	e        *echo.Echo
	pipeline *pipeline.Pipeline
	health   srv.HealthChecker
}

func NewRoadmapRouter(e *echo.Echo, p *pipeline.Pipeline, health srv.HealthChecker) *RoadmapRouter {
	return &RoadmapRouter{
		e:        e,
		pipeline: p,
		health:   health,
	}
}

func (r *RoadmapRouter) Bind() {
	r.e.POST("/roadmaps/generate", r.generateHandler)
	r.e.POST("/roadmaps/adapt", r.adaptHandler)
	r.e.POST("/roadmaps/backfill", r.backfillHandler)
	r.e.GET("/healthz", r.healthHandler)
	r.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func (r *RoadmapRouter) generateHandler(c echo.Context) error {
	return r.handle(c, "generate", r.pipeline.Generate)
}

func (r *RoadmapRouter) adaptHandler(c echo.Context) error {
	return r.handle(c, "adapt", r.pipeline.Adapt)
}

func (r *RoadmapRouter) backfillHandler(c echo.Context) error {
	return r.handle(c, "backfill", r.pipeline.Backfill)
}

type runFunc func(ctx context.Context, req *pipeline.Request) (*pipeline.Response, error)

func (r *RoadmapRouter) handle(c echo.Context, operation string, run runFunc) error {
	var req pipeline.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}

	start := time.Now()
	resp, err := run(c.Request().Context(), &req)
	if err != nil {
		metrics.RunsTotal.WithLabelValues(operation, "rejected").Inc()
		return err
	}

	metrics.RunDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	metrics.ObserveRun(operation, resp.Diagnostics)
	return c.JSON(http.StatusOK, resp)
}

func (r *RoadmapRouter) healthHandler(c echo.Context) error {
	if r.health != nil && !r.health.Healthy(c.Request().Context()) {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
