package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mercatto/catalog-api/internal/api/session"
	"github.com/mercatto/catalog-api/internal/core/domain"
)

// wantsJSONKey caches the negotiation result so it is computed once per request.
const wantsJSONKey = "wants_json"

// WantsJSON reports whether the client asked for a structured response: an
// XHR signal or an Accept header naming application/json. Everything else is
// treated as a browser and answered with redirects and flash messages.
func WantsJSON(c echo.Context) bool {
	if v, ok := c.Get(wantsJSONKey).(bool); ok {
		return v
	}
	r := c.Request()
	wants := r.Header.Get("X-Requested-With") == "XMLHttpRequest" ||
		strings.Contains(r.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
	c.Set(wantsJSONKey, wants)
	return wants
}

// Outcome pairs the two encodings of one handler result: a status plus JSON
// body for API clients, a redirect plus flash message for browsers. Both
// carry the same semantic information.
type Outcome struct {
	Status    int
	Body      any
	Redirect  string
	Flash     string
	FlashKind string // defaults to "success"
}

// Dispatch renders the outcome matching the request's content negotiation.
// Every mutating handler funnels its success path through here.
func Dispatch(c echo.Context, o Outcome) error {
	if WantsJSON(c) {
		return c.JSON(o.Status, o.Body)
	}
	if o.Flash != "" {
		kind := o.FlashKind
		if kind == "" {
			kind = "success"
		}
		session.Flash(c, kind, o.Flash)
	}
	return c.Redirect(http.StatusSeeOther, o.Redirect)
}

// DispatchErr renders an error outcome: API clients fall through to the
// central error handler, browsers get a flash and a redirect.
func DispatchErr(c echo.Context, err error, redirect string) error {
	if WantsJSON(c) {
		return err
	}
	session.Flash(c, "error", userMessage(err))
	return c.Redirect(http.StatusSeeOther, redirect)
}

var knownErrors = []error{
	domain.ErrValidation,
	domain.ErrEmailTaken,
	domain.ErrCategoryNameTaken,
	domain.ErrCategoryHasProducts,
	domain.ErrSelfDelete,
	domain.ErrInvalidCredentials,
	domain.ErrAccountDisabled,
	domain.ErrTooManyAttempts,
	domain.ErrForbidden,
	domain.ErrUserNotFound,
	domain.ErrCategoryNotFound,
	domain.ErrProductNotFound,
}

// userMessage maps known errors to their own text and hides everything else.
func userMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return msg
		}
	}
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return err.Error()
		}
	}
	return "something went wrong, please try again"
}
