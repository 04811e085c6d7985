// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

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

	"github.com/rotina-app/rotina/internal/core/goal"
	"github.com/rotina-app/rotina/internal/core/habit"
	"github.com/rotina-app/rotina/internal/core/health"
	"github.com/rotina-app/rotina/internal/core/investment"
	"github.com/rotina-app/rotina/internal/core/task"
	"github.com/rotina-app/rotina/internal/core/transaction"
	"github.com/rotina-app/rotina/internal/platform/config"
	"github.com/rotina-app/rotina/internal/platform/constants"
	"github.com/rotina-app/rotina/internal/platform/middleware"
	"github.com/rotina-app/rotina/internal/users/account"
	"github.com/rotina-app/rotina/internal/users/auth"
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

	// Auth handles authentication routes (register, login, token refresh).
	Auth *auth.Handler

	// Account handles the authenticated user's own profile and dashboard.
	Account *account.Handler

	// Task handles to-do management.
	Task *task.Handler

	// Habit handles habit tracking and daily progress.
	Habit *habit.Handler

	// Goal handles long-term goals and their subtasks.
	Goal *goal.Handler

	// Transaction handles personal finance records.
	Transaction *transaction.Handler

	// Investment handles portfolio holdings.
	Investment *investment.Handler

	// Health handles measurements, exercises, and diet/workout plans.
	Health *health.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(appCtx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(appCtx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg, cfg.ExtraOriginList()))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		// Everything below requires a verified access token.
		api.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireAuth)
			protected.Mount("/users", h.Account.Routes())
			protected.Mount("/tasks", h.Task.Routes())
			protected.Mount("/habits", h.Habit.Routes())
			protected.Mount("/goals", h.Goal.Routes())
			protected.Mount("/transactions", h.Transaction.Routes())
			protected.Mount("/investments", h.Investment.Routes())
			protected.Mount("/health", h.Health.Routes())
		})
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
