// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/classcord/classcord/internal/auth"
	"github.com/classcord/classcord/internal/core/class"
	"github.com/classcord/classcord/internal/core/enrollment"
	"github.com/classcord/classcord/internal/core/message"
	"github.com/classcord/classcord/internal/core/subject"
	"github.com/classcord/classcord/internal/discord"
	"github.com/classcord/classcord/internal/platform/config"
	"github.com/classcord/classcord/internal/platform/constants"
	"github.com/classcord/classcord/internal/platform/middleware"
	"github.com/classcord/classcord/internal/users"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles registration, login and the scope report.
	Auth *auth.Handler

	// Users handles account management.
	Users *users.Handler

	// Class handles classes and their head-teacher assignment.
	Class *class.Handler

	// Subject handles the subject catalogue.
	Subject *subject.Handler

	// Enrollment handles attaching subjects to classes and subject teachers.
	Enrollment *enrollment.Handler

	// Message handles the per-enrollment message feeds.
	Message *message.Handler

	// Discord handles the bot handshake and the status report.
	Discord *discord.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(
	context context.Context,
	cfg *config.Config,
	log *slog.Logger,
	tokens middleware.TokenResolver,
	identities middleware.IdentitySource,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(tokens, identities))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Bot Handshake
	// Authenticated by the class key inside the payload, not by bearer token:
	// the bot process has no account.
	r.Route("/discord", func(bot chi.Router) {
		h.Discord.RegisterRoutes(bot)
	})

	// # Application API
	// Mounted at the root, matching the paths the dashboard and bot expect.
	h.Auth.RegisterRoutes(r)

	r.Route("/users", func(group chi.Router) {
		group.Use(middleware.RequireAuth)
		h.Users.RegisterRoutes(group)
	})

	r.With(middleware.RequireAuth).Get("/status", h.Discord.SystemStatus)

	// Classes nest enrollments, which nest message feeds; the nested hooks
	// keep each domain's routes in its own package while sharing the
	// /classes/{name} subtree.
	r.Route("/classes", func(group chi.Router) {
		group.Use(middleware.RequireVerified)
		h.Class.RegisterRoutes(group, func(named chi.Router) {
			named.Route("/subjects", func(subjects chi.Router) {
				h.Enrollment.RegisterRoutes(subjects, func(pair chi.Router) {
					pair.Route("/messages", h.Message.RegisterRoutes)
				})
			})
		})
	})

	r.Route("/subjects", func(group chi.Router) {
		group.Use(middleware.RequireVerified)
		h.Subject.RegisterRoutes(group)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
