package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/platformlab/accounts-api/internal/api/middleware"
	"github.com/platformlab/accounts-api/internal/core/domain"
)

// ctxPrincipal extracts the account the Protect middleware resolved and
// attached to the request. Its presence proves the middleware ran; a handler
// reached without it is a wiring bug, answered with 401 rather than a panic.
func ctxPrincipal(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.PrincipalKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication principal")
	}
	return user, nil
}
