// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"jobs-api/commons"
	"net/http"

	"github.com/labstack/echo/v4"
)

// toHTTPError maps domain errors onto status codes. Anything unrecognised is
// logged and reported as a bare 500.
func toHTTPError(c echo.Context, err error) error {
	var (
		notFound *commons.NotFoundError
		invalid  *commons.InvalidInputError
		conflict *commons.ConflictError
		httpErr  *echo.HTTPError
	)
	switch {
	case errors.As(err, &notFound):
		return &echo.HTTPError{Code: http.StatusNotFound, Message: notFound.Error()}
	case errors.As(err, &invalid):
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: invalid.Message}
	case errors.As(err, &conflict):
		return &echo.HTTPError{Code: http.StatusConflict, Message: conflict.Message}
	case errors.As(err, &httpErr):
		return httpErr
	default:
		c.Logger().Error(err)
		return echo.ErrInternalServerError
	}
}

// validationError builds the 422 response for query or body values that
// could not be decoded at all.
func validationError(errs ...ValidationError) error {
	return &echo.HTTPError{
		Code: http.StatusUnprocessableEntity,
		Message: ValidationErrorResponse{
			Message: "Request validation failed",
			Errors:  errs,
		},
	}
}

func bindErrors(errs []error) error {
	details := make([]ValidationError, 0, len(errs))
	for _, err := range errs {
		var be *echo.BindingError
		if errors.As(err, &be) {
			details = append(details, ValidationError{Field: be.Field, Message: "value must be an integer"})
			continue
		}
		details = append(details, ValidationError{Field: "query", Message: err.Error()})
	}
	return validationError(details...)
}

// pageParams reads skip and limit, defaulting to 0 and 100. Range checks are
// left to the store.
func pageParams(c echo.Context) (skip, limit int, err error) {
	skip, limit = commons.DefaultSkip, commons.DefaultLimit
	if errs := echo.QueryParamsBinder(c).
		Int("skip", &skip).
		Int("limit", &limit).
		BindErrors(); len(errs) > 0 {
		return 0, 0, bindErrors(errs)
	}
	return skip, limit, nil
}
