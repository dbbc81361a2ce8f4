package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storefront/auth-service/internal/api/handler"
	"github.com/storefront/auth-service/internal/api/metrics"
	"github.com/storefront/auth-service/internal/core/domain"
	"github.com/storefront/auth-service/internal/core/ports"
)

// Auth resolves the bearer token through the guard and injects the user id
// into context. Both "Bearer <token>" and a bare token are accepted.
func Auth(guard ports.Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				metrics.GuardRejectionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthorized.Error())
			}

			userID, err := guard.Authorize(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthorized.Error())
				}
				return err
			}

			c.Set(handler.UserKey, userID)
			return next(c)
		}
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}
