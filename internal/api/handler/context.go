package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/demandhub/consultancy-api/internal/api/middleware"
	"github.com/demandhub/consultancy-api/internal/core/domain"
)

// currentUser returns the user resolved by the Auth middleware. A missing
// value means the route was registered without the middleware.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.UserKey).(*domain.User)
	if !ok || user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}
