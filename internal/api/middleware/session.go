package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/primowater/deliveryform/internal/session"
)

const (
	// SessionCookie carries the form session id
	SessionCookie = "form_session"

	sessionContextKey = "form_session"
)

// SessionMiddleware attaches the caller's form session, starting one if needed
func SessionMiddleware(store *session.Store, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, _ := c.Cookie(SessionCookie)
		sess, created := store.Lookup(raw)
		if created {
			setSessionCookie(c, sess, secure)
		}
		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// NewPageSession replaces the caller's session with a fresh one.
// Loading the page starts over, like navigating to it in the browser.
func NewPageSession(store *session.Store, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if old, ok := GetSessionFromContext(c); ok {
			store.Delete(old.ID)
		} else if raw, err := c.Cookie(SessionCookie); err == nil {
			if id, err := uuid.Parse(raw); err == nil {
				store.Delete(id)
			}
		}
		sess := store.Create()
		setSessionCookie(c, sess, secure)
		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// GetSessionFromContext returns the session attached by SessionMiddleware
func GetSessionFromContext(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}

func setSessionCookie(c *gin.Context, sess *session.Session, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, sess.ID.String(), 0, "/", "", secure, true)
}
