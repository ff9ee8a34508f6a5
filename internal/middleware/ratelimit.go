package middleware

import (
	"net/http"

	"catalog-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware throttles requests with a shared token bucket.
func RateLimitMiddleware(rps float64, burst int) echo.MiddlewareFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow() {
				log := logger.FromEcho(c)
				log.Warn("Request rate limited")
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error": "Too many requests",
				})
			}
			return next(c)
		}
	}
}
