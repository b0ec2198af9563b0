package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/demandhub/consultancy-api/internal/core/domain"
	"github.com/demandhub/consultancy-api/internal/core/ports"
)

// UserKey is the echo.Context key holding the authenticated *domain.User.
const UserKey = "user"

// Auth resolves the bearer token into a user and stores it under UserKey.
func Auth(resolver ports.IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorized(c, "not authenticated")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return unauthorized(c, "not authenticated")
			}

			user, err := resolver.Resolve(c.Request().Context(), strings.TrimSpace(parts[1]))
			switch {
			case errors.Is(err, domain.ErrInvalidToken):
				return unauthorized(c, "could not validate credentials")
			case errors.Is(err, domain.ErrUserNotFound):
				return unauthorized(c, "user not found")
			case err != nil:
				return err
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}
