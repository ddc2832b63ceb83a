package middleware

import (
	"strings"
	"time"

	"appointease/core/cache"
	"appointease/core/constants"
	"appointease/core/controller"
	"appointease/core/errors"
	"appointease/core/logger"
	"appointease/core/utils"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Middleware struct {
	cache cache.ICache
}

func NewMiddleware(c cache.ICache) *Middleware {
	return &Middleware{cache: c}
}

// AuthMiddleware validates the Bearer token, rejects blacklisted or
// non-access-scope tokens and stores the claims in the echo context under
// constants.ContextTokenData.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "Missing Authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "Authorization header must be 'Bearer {token}'")
			}
			token := strings.TrimSpace(parts[1])

			blacklisted, err := m.cache.IsTokenBlacklisted(c.Request().Context(), token)
			if err != nil {
				logger.Error("Middleware:AuthMiddleware:IsTokenBlacklisted", "error", err)
				return controller.NewErrorResponse(500, errors.ErrInternalServer, "failed to verify token")
			}
			if blacklisted {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "token is no longer valid")
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "invalid or expired token")
			}
			if claims.Scope != constants.ScopeTokenAccess {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "token scope not allowed here")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// RequestLogger logs one line per request with latency and status.
func (m *Middleware) RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("http request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
				"remote_ip", c.RealIP(),
			)
			return err
		}
	}
}

// CORS returns the CORS middleware with the default allow-all policy used in
// development; tighten via reverse proxy in production.
func (m *Middleware) CORS() echo.MiddlewareFunc {
	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	})
}

// Recover wraps echo's recover middleware.
func (m *Middleware) Recover() echo.MiddlewareFunc {
	return echomw.Recover()
}
