// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"errors"
	"jobs-api/auth"
	"jobs-api/commons"
	"jobs-api/crypto"
	"jobs-api/db"
	"jobs-api/handlers"
	"jobs-api/middlewares"
	"jobs-api/render"
	"jobs-api/repository"
	"jobs-api/routes"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	commons.LoadEnvFile()
	cfg := commons.LoadConfig()

	e := echo.New()
	e.HideBanner = true

	e.Logger.SetLevel(commons.Logger.Level())
	e.Logger.SetHeader("${time_rfc3339} ${level} ${short_file}:${line} -")

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logMsg := func(format string, args ...any) {
				switch {
				case v.Status >= 500:
					e.Logger.Errorf(format, args...)
				case v.Status >= 400:
					e.Logger.Warnf(format, args...)
				default:
					e.Logger.Infof(format, args...)
				}
			}
			logMsg("%s %s - %d - %.2fms - %s - %s",
				v.Method,
				v.URI,
				v.Status,
				float64(v.Latency.Microseconds())/1000.0,
				v.RemoteIP,
				v.RequestID,
			)
			return nil
		},
	}))
	debugMode := slices.Contains(os.Args[1:], "--debug")
	if debugMode {
		e.Logger.Warn("Debug mode is enabled.")
		e.Debug = true
		e.Logger.SetLevel(log.DEBUG)
	}

	e.Use(middleware.Recover())

	conn, err := db.Open(cfg)
	if err != nil {
		e.Logger.Fatal(err)
	}
	defer func() {
		if err := db.Close(conn); err != nil {
			e.Logger.Error("Failed to close database: ", err)
		}
	}()

	if slices.Contains(os.Args[1:], "--migrate-db") {
		commons.Logger.Debug("--migrate-db flag detected, running migrations")
		if err := db.Migrate(conn); err != nil {
			e.Logger.Fatal(err)
		}
	}
	if err := db.CheckSchema(conn); err != nil {
		e.Logger.Fatal(err)
	}

	c := crypto.NewCrypto(cfg)
	keys := repository.NewAPIKeyRepository(conn, c, cfg.APIKeyPrefix)
	deps := routes.Deps{
		Handler: handlers.New(
			repository.NewJobRepository(conn, cfg.CatalogCacheTTL),
			repository.NewFavoriteRepository(conn),
			render.NewMarkdown(),
			db.Ping(conn),
		),
		Authenticator:      middlewares.NewAuthenticator(auth.NewVerifier(keys, c), cfg.APIKeyHeader),
		RequireAuthForJobs: cfg.RequireAuthForJobs,
	}
	if cfg.RateLimitEnabled {
		limiter, err := middlewares.NewKeyRateLimiter(cfg.RateLimitCacheSize)
		if err != nil {
			e.Logger.Fatal(err)
		}
		deps.RateLimiter = limiter
	}
	if cfg.MetricsEnabled {
		deps.Metrics = middlewares.NewMetrics()
	}
	routes.RegisterRoutes(e, deps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Error("Server stopped: ", err)
			stop()
		}
	}()

	<-ctx.Done()
	e.Logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error("Graceful shutdown failed: ", err)
	}
}
