package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercatto/catalog-api/internal/core/domain"
)

// RequireRoles enforces role-based access over the resolved principal. It
// must run after Auth: identity is established first, capability second.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := Principal(c)
			if principal == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			for _, role := range roles {
				if principal.Can(role) {
					return next(c)
				}
			}
			return domain.ErrForbidden
		}
	}
}
