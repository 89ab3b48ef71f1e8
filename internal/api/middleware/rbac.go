package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/platformlab/accounts-api/internal/api/metrics"
	"github.com/platformlab/accounts-api/internal/core/domain"
)

// Authorize admits only principals whose role is in the permitted set. The
// set is fixed at route registration. Must run after Protect.
func Authorize(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var role string
			if user, ok := c.Get(PrincipalKey).(*domain.User); ok && user != nil {
				role = user.Role
			}

			if _, ok := allowed[role]; !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("forbidden_role").Inc()
				return c.JSON(http.StatusForbidden, rejection{
					Error: fmt.Sprintf("User role %s is not authorized to access this route", role),
				})
			}
			return next(c)
		}
	}
}
