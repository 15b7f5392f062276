// Package middleware contains the HTTP middleware for the application.
package middleware

import (
	"net/http"

	"folio/internal/domain/entity"
	"folio/internal/infra/session"

	"github.com/labstack/echo/v4"
)

const (
	cookieName = "folio_session"
	contextKey = "session"
)

// SessionMiddleware attaches a session to every request. An unknown or
// missing cookie gets a fresh locked, signed-out session, matching the
// original's per-tab lifetime: new session, gate closed again.
type SessionMiddleware struct {
	store *session.Store
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(store *session.Store) *SessionMiddleware {
	return &SessionMiddleware{store: store}
}

// Attach resolves or creates the session and stores a request-scoped
// snapshot on the context. Writes during the request go through the store
// by id; the snapshot is never shared across goroutines.
func (m *SessionMiddleware) Attach(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var (
			sess  entity.Session
			found bool
		)

		if cookie, err := c.Cookie(cookieName); err == nil {
			sess, found = m.store.Get(cookie.Value)
		}

		if !found {
			sess = m.store.Create()
			c.SetCookie(&http.Cookie{
				Name:     cookieName,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		c.Set(contextKey, &sess)

		return next(c)
	}
}

// SessionFrom extracts the request's session. It is always present behind
// the Attach middleware.
func SessionFrom(c echo.Context) *entity.Session {
	sess, _ := c.Get(contextKey).(*entity.Session)

	return sess
}
