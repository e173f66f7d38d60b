// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

// Command api is the entry point for the Classcord HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/classcord/classcord/internal/api"
	"github.com/classcord/classcord/internal/auth"
	"github.com/classcord/classcord/internal/bot"
	"github.com/classcord/classcord/internal/core/class"
	"github.com/classcord/classcord/internal/core/enrollment"
	"github.com/classcord/classcord/internal/core/message"
	"github.com/classcord/classcord/internal/core/subject"
	"github.com/classcord/classcord/internal/discord"
	"github.com/classcord/classcord/internal/platform/config"
	"github.com/classcord/classcord/internal/platform/constants"
	"github.com/classcord/classcord/internal/platform/migration"
	pgstore "github.com/classcord/classcord/internal/platform/postgres"
	redisstore "github.com/classcord/classcord/internal/platform/redis"
	"github.com/classcord/classcord/internal/platform/sec"
	"github.com/classcord/classcord/internal/users"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer, cfg.TokenLifetime())
	must(log, err, "initialize token service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	relay := bot.NewRelay(cfg.BotURL, cfg.BotTimeout, log)
	if !relay.Enabled() {
		log.Warn("bot_relay_disabled", slog.String("reason", "BOT_URL is empty"))
	}

	userRepository := auth.NewUserRepository(pool)
	authService := auth.NewService(userRepository, tokenService)

	classRepository := class.NewPostgresRepository(pool)
	classService := class.NewService(classRepository, userRepository, relay, log)

	subjectRepository := subject.NewPostgresRepository(pool)
	subjectService := subject.NewService(subjectRepository, log)

	enrollmentRepository := enrollment.NewPostgresRepository(pool)
	enrollmentService := enrollment.NewService(
		enrollmentRepository, classRepository, subjectRepository, userRepository, relay, log)

	messageRepository := message.NewPostgresRepository(pool)
	messageService := message.NewService(
		messageRepository, enrollmentService, classRepository, relay, log)

	usersService := users.NewService(userRepository, enrollmentService, log)

	discordService := discord.NewService(classRepository, enrollmentRepository, relay, rdb, log)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(authService),
		Users:      users.NewHandler(usersService),
		Class:      class.NewHandler(classService),
		Subject:    subject.NewHandler(subjectService),
		Enrollment: enrollment.NewHandler(enrollmentService),
		Message:    message.NewHandler(messageService),
		Discord:    discord.NewHandler(discordService),
	}

	server := api.NewServer(context.Background(), cfg, log, tokenService, authService, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
