// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"context"
	"errors"
	"jobs-api/auth"
	"jobs-api/commons"
	"jobs-api/repository"
	"net/http"

	"github.com/labstack/echo/v4"
)

type AuthMode int

const (
	// AuthRequired rejects requests without a valid key.
	AuthRequired AuthMode = iota
	// AuthOptional resolves a key when one is valid and lets every request through.
	AuthOptional
)

const principalKey = "principal"

type KeyVerifier interface {
	Verify(ctx context.Context, presented string) (*repository.Principal, error)
	VerifyOptional(ctx context.Context, presented string) *repository.Principal
}

var _ KeyVerifier = (*auth.Verifier)(nil)

type Authenticator struct {
	verifier KeyVerifier
	header   string
}

func NewAuthenticator(verifier KeyVerifier, header string) *Authenticator {
	if header == "" {
		header = "X-API-Key"
	}
	return &Authenticator{verifier: verifier, header: header}
}

func (a *Authenticator) VerifyAPIKeyMiddleware(mode AuthMode) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			logger := c.Logger()
			presented := c.Request().Header.Get(a.header)
			ctx := c.Request().Context()

			if mode == AuthOptional {
				if principal := a.verifier.VerifyOptional(ctx, presented); principal != nil {
					c.Set(principalKey, principal)
				}
				return next(c)
			}

			if presented == "" {
				logger.Warn("API key header missing.")
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "API key is required. Include " + a.header + " header.",
				}
			}

			principal, err := a.verifier.Verify(ctx, presented)
			if err != nil {
				var unauthorized *commons.UnauthorizedError
				if errors.As(err, &unauthorized) {
					logger.Warn("API key authentication failed.")
					return &echo.HTTPError{
						Code:    http.StatusUnauthorized,
						Message: "Invalid API key",
					}
				}
				logger.Error("API key verification error: ", err)
				return echo.ErrInternalServerError
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// GetPrincipal returns the principal resolved by the auth middleware, if any.
func GetPrincipal(c echo.Context) (*repository.Principal, bool) {
	principal, ok := c.Get(principalKey).(*repository.Principal)
	return principal, ok && principal != nil
}
