// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"jobs-api/commons"
	"jobs-api/handlers"
	"jobs-api/middlewares"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Deps struct {
	Handler       *handlers.Handler
	Authenticator *middlewares.Authenticator
	// RateLimiter and Metrics are optional.
	RateLimiter        *middlewares.KeyRateLimiter
	Metrics            *middlewares.Metrics
	RequireAuthForJobs bool
}

func RegisterRoutes(e *echo.Echo, d Deps) {
	commons.Logger.Debug("Registering routes")
	e.Pre(middleware.RemoveTrailingSlash())

	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware)
		e.GET("/metrics", d.Metrics.Handler())
	}

	e.GET("/", d.Handler.RootHandler)
	e.GET("/health", d.Handler.HealthHandler)

	jobsAuth := middlewares.AuthOptional
	if d.RequireAuthForJobs {
		jobsAuth = middlewares.AuthRequired
	}
	jobs := e.Group("/jobs", withRateLimit(d, d.Authenticator.VerifyAPIKeyMiddleware(jobsAuth))...)
	jobs.GET("", d.Handler.ListJobsHandler)
	jobs.GET("/search", d.Handler.SearchJobsHandler)
	jobs.GET("/classifications", d.Handler.GetClassificationsHandler)
	jobs.GET("/sub-classifications", d.Handler.GetSubClassificationsHandler)
	jobs.GET("/work-arrangements", d.Handler.GetWorkArrangementsHandler)
	jobs.GET("/:job_id", d.Handler.GetJobHandler)

	favorites := e.Group("/favorites", withRateLimit(d, d.Authenticator.VerifyAPIKeyMiddleware(middlewares.AuthRequired))...)
	favorites.GET("", d.Handler.ListFavoritesHandler)
	favorites.POST("/:job_id", d.Handler.AddFavoriteHandler)
	favorites.DELETE("/:job_id", d.Handler.RemoveFavoriteHandler)
	favorites.GET("/:job_id/status", d.Handler.FavoriteStatusHandler)

	commons.Logger.Info("Routes registered successfully")
}

func withRateLimit(d Deps, authMiddleware echo.MiddlewareFunc) []echo.MiddlewareFunc {
	chain := []echo.MiddlewareFunc{authMiddleware}
	if d.RateLimiter != nil {
		chain = append(chain, d.RateLimiter.Middleware)
	}
	return chain
}
