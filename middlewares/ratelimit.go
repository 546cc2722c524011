// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"jobs-api/repository"
	"net/http"
	"strconv"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// KeyRateLimiter enforces each key's hourly request ceiling with a token
// bucket. Buckets live in a bounded LRU so idle keys are forgotten.
type KeyRateLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache[uint, *rate.Limiter]
}

func NewKeyRateLimiter(size int) (*KeyRateLimiter, error) {
	if size <= 0 {
		size = 10000
	}
	cache, err := lru.New[uint, *rate.Limiter](size)
	if err != nil {
		return nil, err
	}
	return &KeyRateLimiter{limiters: cache}, nil
}

// Allow consumes one token from the principal's bucket.
func (rl *KeyRateLimiter) Allow(p *repository.Principal, now time.Time) bool {
	if p.RateLimit <= 0 {
		return true
	}
	limit := rate.Every(time.Hour / time.Duration(p.RateLimit))

	rl.mu.Lock()
	limiter, ok := rl.limiters.Get(p.ID)
	if !ok {
		limiter = rate.NewLimiter(limit, p.RateLimit)
		rl.limiters.Add(p.ID, limiter)
	} else if limiter.Burst() != p.RateLimit {
		limiter.SetLimitAt(now, limit)
		limiter.SetBurstAt(now, p.RateLimit)
	}
	rl.mu.Unlock()

	return limiter.AllowN(now, 1)
}

// Middleware must run after the auth middleware. Anonymous requests pass.
func (rl *KeyRateLimiter) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal, ok := GetPrincipal(c)
		if !ok {
			return next(c)
		}
		c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(principal.RateLimit))
		if !rl.Allow(principal, time.Now()) {
			c.Logger().Warnf("Rate limit exceeded for API key #%d", principal.ID)
			return &echo.HTTPError{
				Code:    http.StatusTooManyRequests,
				Message: "Rate limit exceeded, please retry later",
			}
		}
		return next(c)
	}
}
