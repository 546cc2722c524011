// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"context"
	"jobs-api/repository"
	"net/http"

	"github.com/labstack/echo/v4"
)

type JobCatalog interface {
	List(ctx context.Context, filter repository.JobFilter, skip, limit int) ([]repository.Job, error)
	Get(ctx context.Context, jobID string) (*repository.JobWithDetails, error)
	Search(ctx context.Context, keyword string, skip, limit int) ([]repository.Job, error)
	DistinctClassifications(ctx context.Context) ([]string, error)
	DistinctSubClassifications(ctx context.Context) ([]string, error)
	DistinctWorkArrangements(ctx context.Context) ([]string, error)
}

type FavoriteStore interface {
	Add(ctx context.Context, principalID uint, jobID string, notes *string) (*repository.Favorite, error)
	Remove(ctx context.Context, principalID uint, jobID string) (bool, error)
	List(ctx context.Context, principalID uint, skip, limit int) ([]repository.Favorite, error)
	Status(ctx context.Context, principalID uint, jobID string) (bool, error)
}

// HTMLRenderer turns job description markdown into safe HTML.
type HTMLRenderer interface {
	ToHTML(source string) string
}

// PingFunc reports whether the backing store is reachable.
type PingFunc func(ctx context.Context) error

type Handler struct {
	jobs      JobCatalog
	favorites FavoriteStore
	renderer  HTMLRenderer
	ping      PingFunc
}

func New(jobs JobCatalog, favorites FavoriteStore, renderer HTMLRenderer, ping PingFunc) *Handler {
	return &Handler{
		jobs:      jobs,
		favorites: favorites,
		renderer:  renderer,
		ping:      ping,
	}
}

// RootHandler godoc
// @Summary      API information
// @Tags         meta
// @Produce      json
// @Success      200 {object} RootResponse
// @Router       / [get]
func (h *Handler) RootHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, RootResponse{Message: "Job Scrapers API", Version: "1.0.0"})
}

// HealthHandler godoc
// @Summary      Liveness and store reachability
// @Tags         meta
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} echo.HTTPError "Service Unavailable"
// @Router       /health [get]
func (h *Handler) HealthHandler(c echo.Context) error {
	if h.ping != nil {
		if err := h.ping(c.Request().Context()); err != nil {
			c.Logger().Error("Health check failed: ", err)
			return &echo.HTTPError{
				Code:    http.StatusServiceUnavailable,
				Message: "Database unavailable",
			}
		}
	}
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
