package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/primowater/deliveryform/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sessionRouter(store *session.Store) *gin.Engine {
	r := gin.New()
	r.Use(SessionMiddleware(store, false))
	r.GET("/whoami", func(c *gin.Context) {
		sess, ok := GetSessionFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, sess.ID.String())
	})
	r.GET("/page", NewPageSession(store, false), func(c *gin.Context) {
		sess, _ := GetSessionFromContext(c)
		c.String(http.StatusOK, sess.ID.String())
	})
	return r
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	return nil
}

func TestSessionMiddlewareCreatesAndReuses(t *testing.T) {
	store := session.NewStore(time.Hour, zap.NewNop())
	r := sessionRouter(store)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, rec.Body.String(), cookie.Value)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, cookie.Value, rec.Body.String())
	assert.Nil(t, sessionCookie(t, rec))
	assert.Equal(t, 1, store.Len())
}

func TestNewPageSessionReplacesSession(t *testing.T) {
	store := session.NewStore(time.Hour, zap.NewNop())
	r := sessionRouter(store)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	first := sessionCookie(t, rec)
	require.NotNil(t, first)

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.AddCookie(first)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	second := sessionCookie(t, rec)
	require.NotNil(t, second)
	assert.NotEqual(t, first.Value, second.Value)
	assert.Equal(t, second.Value, rec.Body.String())
	assert.Equal(t, 1, store.Len())
}

func TestAdminAuthMiddleware(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/admin", AdminAuthMiddleware(string(hash), zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid key", "Bearer admin-secret", http.StatusNoContent},
		{"wrong key", "Bearer nope", http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic admin-secret", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAdminAuthMiddlewareUnconfigured(t *testing.T) {
	r := gin.New()
	r.GET("/admin", AdminAuthMiddleware("", zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNewPageSessionWithoutSessionMiddleware(t *testing.T) {
	store := session.NewStore(time.Hour, zap.NewNop())
	old := store.Create()

	r := gin.New()
	r.GET("/", NewPageSession(store, true), func(c *gin.Context) {
		sess, _ := GetSessionFromContext(c)
		c.String(http.StatusOK, sess.ID.String())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: old.ID.String()})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Len(t, rec.Result().Cookies(), 1)
	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
	assert.NotEqual(t, old.ID.String(), cookie.Value)

	_, ok := store.Get(old.ID)
	assert.False(t, ok)
	assert.Equal(t, 1, store.Len())
}
