package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"mcp-agent-go/internal/config"
	"mcp-agent-go/internal/telemetry"
	"mcp-agent-go/internal/tools"
	"mcp-agent-go/internal/tools/clock"
	"mcp-agent-go/internal/tools/timezone"
)

// New creates the registry server HTTP handler with the given configuration.
func New(cfg config.Server, logger zerolog.Logger) (http.Handler, error) {
	// Create tool registry
	toolRegistry := tools.NewRegistry(logger)
	toolRegistry.Register(clock.NewClockTool())
	toolRegistry.Register(timezone.NewConvertTool())

	logger.Info().
		Int("tool_count", len(toolRegistry.Definitions())).
		Msg("Registered tools")

	// Wrap the registry with telemetry
	promRegistry := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(promRegistry)
	instrumented := telemetry.NewToolRegistryWrapper(toolRegistry, metrics)

	mcpHandler := NewHandler(instrumented, logger)

	// Create router
	r := chi.NewRouter()

	// Add middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(telemetry.HTTPMetricsMiddleware(metrics))

	// Enable CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300, // Maximum value not ignored by any of major browsers
	}))

	// Add routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))

	r.Get("/mcp/v1/tools", mcpHandler.ListTools)
	r.Post("/mcp/v1/call", mcpHandler.CallTool)

	return r, nil
}
