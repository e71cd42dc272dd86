// Package handler provides HTTP handlers for all API endpoints.
// Handlers read through a tournament.Source and score in-process; JSON
// bodies are cached with ETags until the next season refresh.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/albapepper/flagfantasy/internal/api/respond"
	"github.com/albapepper/flagfantasy/internal/cache"
	"github.com/albapepper/flagfantasy/internal/config"
	"github.com/albapepper/flagfantasy/internal/metrics"
	"github.com/albapepper/flagfantasy/internal/tournament"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	src     tournament.Source
	cache   *cache.Cache
	cfg     *config.Config
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates a Handler with shared dependencies. m may be nil.
func New(src tournament.Source, c *cache.Cache, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) *Handler {
	return &Handler{
		src:     src,
		cache:   c,
		cfg:     cfg,
		metrics: m,
		logger:  logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and available divisions.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":      "Flag Fantasy API",
		"version":   "1.0.0",
		"status":    "running",
		"docs":      "/docs",
		"divisions": []string{"boys", "girls"},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies the data source is reachable.
// @Summary Database health check
// @Description Verifies Postgres connectivity (always healthy in file mode).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.src.HealthCheck(r.Context()); err != nil {
		h.logger.Warn("Database health check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys, flushes).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// FlushCache drops every cached response. Registered as a season-refresh
// hook so stale totals are never served past a refresh.
func (h *Handler) FlushCache() {
	n := h.cache.Flush("")
	if h.metrics != nil {
		h.metrics.CacheFlushes.Inc()
	}
	h.logger.Info("Response cache flushed", "entries", n)
}

// serveCached answers from the cache when possible and otherwise builds,
// marshals and caches the body. build returns an HTTP status and message
// on failure.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, build func() (interface{}, *apiError)) {
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	body, apiErr := build()
	if apiErr != nil {
		apiErr.write(w)
		return
	}
	data, err := json.Marshal(body)
	if err != nil {
		h.logger.Error("Marshal response", "key", key, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, respond.CodeInternal, "Failed to encode response")
		return
	}

	etag := h.cache.Set(key, data, ttl)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}

type apiError struct {
	status  int
	code    string
	message string
}

func (e *apiError) write(w http.ResponseWriter) {
	respond.WriteError(w, e.status, e.code, e.message)
}

func badRequest(msg string) *apiError {
	return &apiError{status: http.StatusBadRequest, code: respond.CodeBadRequest, message: msg}
}

func notFound(msg string) *apiError {
	return &apiError{status: http.StatusNotFound, code: respond.CodeNotFound, message: msg}
}

func (h *Handler) internal(op string, err error) *apiError {
	h.logger.Error("Request failed", "op", op, "error", err)
	return &apiError{status: http.StatusInternalServerError, code: respond.CodeInternal, message: "Failed to " + op}
}
