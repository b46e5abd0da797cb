// Package server exposes the game service over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Holmiboii/ummorpg/internal/database"
	"github.com/Holmiboii/ummorpg/internal/eventlog"
	"github.com/Holmiboii/ummorpg/internal/game"
	"github.com/Holmiboii/ummorpg/internal/handler"
	"github.com/Holmiboii/ummorpg/internal/metrics"
	"github.com/Holmiboii/ummorpg/internal/sse"
)

// Options holds what the server needs to route requests.
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	DB             database.Pool
	Game           game.Service
	EventLog       eventlog.Service
	Hub            *sse.Hub
}

// Server is the HTTP front of the game.
type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the route tree. Middleware runs outermost first.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()
	detector := NewSuspiciousActivityDetector(RateLimitPerWindow)

	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(RateLimitMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(opts.DB))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	characters := handler.NewCharacterHandler(opts.Game)
	history := handler.NewHistoryHandler(opts.EventLog)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/commands", handler.HandleListCommands())
		r.Get("/events", sse.Handler(opts.Hub))

		r.Route("/characters/{id}", func(r chi.Router) {
			r.Use(characterContext)
			r.Get("/", characters.HandleGet)
			r.Get("/history", history.HandleHistory)
			r.Post("/login", characters.HandleLogin)
			r.Post("/logout", characters.HandleLogout)
			r.Post("/commands/{kind}", characters.HandleCommand)
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	return r
}

// Start serves until Stop is called
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
