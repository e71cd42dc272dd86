package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/flagfantasy/internal/api/handler"
	"github.com/albapepper/flagfantasy/internal/cache"
	"github.com/albapepper/flagfantasy/internal/config"
	"github.com/albapepper/flagfantasy/internal/metrics"
	"github.com/albapepper/flagfantasy/internal/tournament"
)

// Server bundles the router with the handler so callers can register the
// handler's cache flush as a refresh hook.
type Server struct {
	Router  *chi.Mux
	Handler *handler.Handler
}

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(src tournament.Source, appCache *cache.Cache, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) *Server {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if m != nil {
		r.Use(MetricsMiddleware(m))
	}
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag", "Retry-After"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(src, appCache, cfg, m, logger)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Prometheus
	if m != nil {
		r.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	}

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/scoring", h.GetScoring)

		// Players and games
		r.Get("/players", h.ListPlayers)
		r.Get("/players/{playerID}", h.GetPlayer)
		r.Get("/games/{gameID}/points", h.GetGamePoints)

		// Rosters
		r.Post("/rosters/score", h.ScoreRoster)

		// Leaderboards
		r.Get("/leaderboard/{division}", h.GetLeaderboard)
		r.Get("/leaderboard/{division}/entries/{entryID}", h.GetLeaderboardEntry)
	})

	return &Server{Router: r, Handler: h}
}
