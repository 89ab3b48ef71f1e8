package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/platformlab/accounts-api/internal/api/metrics"
	"github.com/platformlab/accounts-api/internal/core/domain"
	"github.com/platformlab/accounts-api/internal/core/ports"
)

// PrincipalKey is the echo context key the resolved account is stored under.
const PrincipalKey = "principal"

const notAuthorizedMsg = "Not authorized to access this route"

// rejection is the wire shape of every auth failure. The fields are
// contractual; clients match on them.
type rejection struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Protect extracts and verifies the bearer token, resolves the acting
// principal from the credential store, and attaches it to the request
// context. A missing header, a malformed header, an invalid or expired
// token, and a token whose subject no longer exists all produce the same
// 401 body, so callers cannot probe which check failed. Downstream handlers
// never run on a rejection.
func Protect(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("no_token").Inc()
				return c.JSON(http.StatusUnauthorized, rejection{Error: notAuthorizedMsg})
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return c.JSON(http.StatusUnauthorized, rejection{Error: notAuthorizedMsg})
			}

			user, err := users.FindByID(c.Request().Context(), claims.ID)
			if err != nil {
				// The account behind a verified token may have been deleted
				// since issuance; reject it like any other bad credential.
				if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
					metrics.AuthRejectionsTotal.WithLabelValues("unknown_principal").Inc()
					return c.JSON(http.StatusUnauthorized, rejection{Error: notAuthorizedMsg})
				}
				return err
			}

			c.Set(PrincipalKey, user)
			return next(c)
		}
	}
}

// bearerToken extracts the credential from an Authorization header. The
// prefix match is exact and case-sensitive: "Bearer", one space, a non-empty
// token.
func bearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
