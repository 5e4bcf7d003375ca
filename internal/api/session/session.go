// Package session holds the cookie-backed web conveniences: the flash
// message queue and the "remember me" cookie. Both are browser-mode only;
// pure API clients never touch them.
package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	sessionName = "catalog_session"

	// RememberCookie carries a bearer token with a long client-side
	// lifetime. The token itself is no different from a header token; the
	// cookie only changes where the client stores it.
	RememberCookie = "remember_token"

	rememberTTL = 30 * 24 * time.Hour
)

// Middleware installs the cookie session store keyed by the session secret.
func Middleware(secret string) echo.MiddlewareFunc {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return session.Middleware(store)
}

// FlashMessage is a one-shot user-facing notice.
type FlashMessage struct {
	Kind string // "success" or "error"
	Text string
}

// Flash queues a message for the next rendered page.
func Flash(c echo.Context, kind, text string) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return
	}
	// Stored as "kind|text" to keep the cookie gob-free.
	sess.AddFlash(kind + "|" + text)
	_ = sess.Save(c.Request(), c.Response())
}

// TakeFlashes drains and returns all queued messages.
func TakeFlashes(c echo.Context) []FlashMessage {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) > 0 {
		_ = sess.Save(c.Request(), c.Response())
	}

	out := make([]FlashMessage, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		kind, text, found := strings.Cut(s, "|")
		if !found {
			kind, text = "info", s
		}
		out = append(out, FlashMessage{Kind: kind, Text: text})
	}
	return out
}

// SetRemember stores the token in a long-lived cookie.
func SetRemember(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     RememberCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(rememberTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearRemember expires the remember cookie.
func ClearRemember(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     RememberCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// RememberToken returns the token carried by the remember cookie, if any.
func RememberToken(c echo.Context) string {
	cookie, err := c.Cookie(RememberCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}
