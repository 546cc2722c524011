// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"jobs-api/middlewares"
	"jobs-api/repository"
	"net/http"

	"github.com/labstack/echo/v4"
)

func principalFrom(c echo.Context) (*repository.Principal, error) {
	principal, ok := middlewares.GetPrincipal(c)
	if !ok {
		c.Logger().Error("Favorites route reached without an authenticated principal.")
		return nil, &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid API key",
		}
	}
	return principal, nil
}

// AddFavoriteHandler godoc
// @Summary      Add a job to favorites
// @Description  Adding an already favorited job keeps the existing entry and replaces its notes when given.
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Param        X-API-Key  header  string              true   "API key"
// @Param        job_id     path    string              true   "Job ID"
// @Param        request    body    FavoriteJobRequest  false  "Notes"
// @Success      201 {object} FavoriteJobResponse
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not Found"
// @Failure      422 {object} ValidationErrorResponse "Unprocessable Entity"
// @Failure      500 {object} echo.HTTPError "Internal Server Error"
// @Router       /favorites/{job_id} [post]
func (h *Handler) AddFavoriteHandler(c echo.Context) error {
	logger := c.Logger()

	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req FavoriteJobRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusBadRequest {
			logger.Warn("Invalid favorite request body: ", err)
			return validationError(ValidationError{Field: "body", Message: fmt.Sprint(he.Message)})
		}
		return err
	}

	jobID := c.Param("job_id")
	fav, err := h.favorites.Add(c.Request().Context(), principal.ID, jobID, req.Notes)
	if err != nil {
		return toHTTPError(c, err)
	}

	logger.Debugf("API key #%d favorited job %s", principal.ID, jobID)
	return c.JSON(http.StatusCreated, newFavoriteJobResponse(*fav))
}

// RemoveFavoriteHandler godoc
// @Summary      Remove a job from favorites
// @Tags         favorites
// @Produce      json
// @Param        X-API-Key  header  string  true  "API key"
// @Param        job_id     path    string  true  "Job ID"
// @Success      200 {object} MessageResponse
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not Found"
// @Failure      500 {object} echo.HTTPError "Internal Server Error"
// @Router       /favorites/{job_id} [delete]
func (h *Handler) RemoveFavoriteHandler(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	jobID := c.Param("job_id")
	removed, err := h.favorites.Remove(c.Request().Context(), principal.ID, jobID)
	if err != nil {
		return toHTTPError(c, err)
	}
	if !removed {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: fmt.Sprintf("Job with ID '%s' not found in your favorites", jobID),
		}
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Job '%s' removed from favorites", jobID),
	})
}

// ListFavoritesHandler godoc
// @Summary      List favorite jobs
// @Description  Most recently favorited first.
// @Tags         favorites
// @Produce      json
// @Param        X-API-Key  header  string  true   "API key"
// @Param        skip       query   int     false  "Rows to skip"  default(0)
// @Param        limit      query   int     false  "Page size (1-1000)"  default(100)
// @Success      200 {array}  FavoriteJobResponse
// @Failure      400 {object} echo.HTTPError "Bad Request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      422 {object} ValidationErrorResponse "Unprocessable Entity"
// @Failure      500 {object} echo.HTTPError "Internal Server Error"
// @Router       /favorites [get]
func (h *Handler) ListFavoritesHandler(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	skip, limit, err := pageParams(c)
	if err != nil {
		return err
	}

	favorites, err := h.favorites.List(c.Request().Context(), principal.ID, skip, limit)
	if err != nil {
		return toHTTPError(c, err)
	}

	res := make([]FavoriteJobResponse, 0, len(favorites))
	for _, fav := range favorites {
		res = append(res, newFavoriteJobResponse(fav))
	}
	return c.JSON(http.StatusOK, res)
}

// FavoriteStatusHandler godoc
// @Summary      Check whether a job is favorited
// @Tags         favorites
// @Produce      json
// @Param        X-API-Key  header  string  true  "API key"
// @Param        job_id     path    string  true  "Job ID"
// @Success      200 {object} FavoriteStatusResponse
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal Server Error"
// @Router       /favorites/{job_id}/status [get]
func (h *Handler) FavoriteStatusHandler(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	jobID := c.Param("job_id")
	favorited, err := h.favorites.Status(c.Request().Context(), principal.ID, jobID)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, FavoriteStatusResponse{JobID: jobID, IsFavorited: favorited})
}
