package routes

import (
	"net/http"
	"time"

	"Nest/internal/api/handlers"
	"Nest/internal/api/middleware"
	"Nest/internal/core/state"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig holds the HTTP-layer settings
type RouterConfig struct {
	AllowedOrigins []string
	// RateLimit is the number of requests per RateWindow per client; 0 disables limiting
	RateLimit  int
	RateWindow time.Duration
	// RequestLogging enables chi's request logger
	RequestLogging bool
}

// NewRouter assembles the XRPC router around gateway.
// The returned RateLimiter is nil when limiting is disabled; callers should Stop it on shutdown.
func NewRouter(cfg RouterConfig, gateway state.Gateway, writer *middleware.SingleWriter) (chi.Router, *middleware.RateLimiter) {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	if cfg.RequestLogging {
		r.Use(chiMiddleware.Logger)
	}
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware(cfg.AllowedOrigins))

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		window := cfg.RateWindow
		if window <= 0 {
			window = time.Minute
		}
		limiter = middleware.NewRateLimiter(cfg.RateLimit, window)
		r.Use(limiter.Middleware)
	}

	RegisterPostRoutes(r, gateway, middleware.NewCallerMiddleware(), writer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.NotFound(handlers.MethodNotImplemented)

	return r, limiter
}

// corsMiddleware allows browser clients from the configured origins
func corsMiddleware(allowedOrigins []string) func(next http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			middleware.CallerHeader,
		},
		MaxAge: 300, // 5 minutes
	})
}
