package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercatto/catalog-api/internal/api/middleware"
	"github.com/mercatto/catalog-api/internal/core/domain"
)

// requirePrincipal returns the authenticated user or fails the request the
// way the client expects: 401 for API clients, a login redirect with a flash
// for browsers.
func requirePrincipal(c echo.Context) (*domain.User, error) {
	if user := middleware.Principal(c); user != nil {
		return user, nil
	}
	if WantsJSON(c) {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return nil, DispatchErr(c, echo.NewHTTPError(http.StatusUnauthorized, "please sign in"), "/login")
}
