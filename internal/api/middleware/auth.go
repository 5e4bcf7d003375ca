package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mercatto/catalog-api/internal/api/metrics"
	"github.com/mercatto/catalog-api/internal/api/session"
	"github.com/mercatto/catalog-api/internal/core/domain"
	"github.com/mercatto/catalog-api/internal/core/ports"
)

const principalKey = "principal"

// Principal returns the authenticated user resolved for this request, or nil
// when the request is anonymous.
func Principal(c echo.Context) *domain.User {
	user, _ := c.Get(principalKey).(*domain.User)
	return user
}

// Auth is the bearer-token gate. It verifies the token signature, then loads
// the user row by id on every request, so role and active changes take
// effect immediately without re-login. There is no revocation list: a leaked
// token stays valid until expiry or secret rotation.
//
// Status asymmetry, kept deliberately: a missing credential is 401, a
// present-but-invalid token is 403, an unknown user id is 401.
func Auth(tokens ports.TokenService, users ports.UserRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := resolve(c, tokens, users, parts[1], log)
			if err != nil {
				return err
			}

			c.Set(principalKey, user)
			return next(c)
		}
	}
}

// RememberAuth is the cookie gate for browser requests. A valid remember
// cookie silently populates the principal; any failure degrades to an
// anonymous request, never a hard error.
func RememberAuth(tokens ports.TokenService, users ports.UserRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Principal(c) != nil {
				return next(c)
			}
			token := session.RememberToken(c)
			if token == "" {
				return next(c)
			}

			user, err := resolve(c, tokens, users, token, log)
			if err != nil {
				session.ClearRemember(c)
				return next(c)
			}

			c.Set(principalKey, user)
			return next(c)
		}
	}
}

// resolve verifies the token and fetches the current user row. Expiry and
// tampering are distinguishable in logs but share one outward signal.
func resolve(c echo.Context, tokens ports.TokenService, users ports.UserRepository, token string, log zerolog.Logger) (*domain.User, error) {
	claims, err := tokens.Verify(token)
	if err != nil {
		result := "invalid"
		if errors.Is(err, domain.ErrTokenExpired) {
			result = "expired"
		}
		metrics.TokenVerificationsTotal.WithLabelValues(result).Inc()
		log.Debug().Err(err).Str("path", c.Path()).Msg("token rejected")
		return nil, echo.NewHTTPError(http.StatusForbidden, "invalid token")
	}

	user, err := users.FindByID(c.Request().Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.TokenVerificationsTotal.WithLabelValues("unknown_user").Inc()
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
		}
		return nil, err
	}

	if !user.Active {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "account disabled")
	}

	metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
	return user, nil
}
