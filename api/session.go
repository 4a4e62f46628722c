package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"mixtape.GO/service/cart"
)

const sessionContextKey = "session_id"

// SessionMiddleware assigns every visitor a cart session cookie. Use it on
// routes that change the cart.
func SessionMiddleware(cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := cookieSession(c, cookieName)
			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     cookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					Expires:  time.Now().Add(30 * 24 * time.Hour),
				})
			}
			c.Set(sessionContextKey, id)
			return next(c)
		}
	}
}

// ReadSessionMiddleware picks up an existing session cookie but never issues
// one, so read-only pages do not create sessions.
func ReadSessionMiddleware(cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id := cookieSession(c, cookieName); id != "" {
				c.Set(sessionContextKey, id)
			}
			return next(c)
		}
	}
}

func cookieSession(c echo.Context, cookieName string) string {
	ck, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(ck.Value); err != nil {
		return ""
	}
	return ck.Value
}

// SessionID returns the id set by SessionMiddleware, or "".
func SessionID(c echo.Context) string {
	id, _ := c.Get(sessionContextKey).(string)
	return id
}

const DefaultSessionCookie = "mixtape_session"

func (d *Deps) cookieName() string {
	if d.SessionCookie == "" {
		return DefaultSessionCookie
	}
	return d.SessionCookie
}

// Session returns the session middleware for the configured cookie.
func (d *Deps) Session() echo.MiddlewareFunc {
	return SessionMiddleware(d.cookieName())
}

// ReadSession is Session for routes that only display the cart.
func (d *Deps) ReadSession() echo.MiddlewareFunc {
	return ReadSessionMiddleware(d.cookieName())
}

// Cart returns the loaded cart of the request's session.
func (d *Deps) Cart(c echo.Context) *cart.Store {
	return d.Carts.Get(c.Request().Context(), SessionID(c))
}

// CartView reads the request's cart without keeping it in memory. Requests
// without a session see an empty cart.
func (d *Deps) CartView(c echo.Context) cart.Snapshot {
	id := SessionID(c)
	if id == "" {
		return cart.Snapshot{Entries: []cart.Entry{}}
	}
	return d.Carts.View(c.Request().Context(), id)
}
