package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/academy-labs/academy-api/internal/session"
	"github.com/academy-labs/academy-api/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = logger.Initialize(logger.Config{Level: "error", Environment: "development", ServiceName: "test"})
}

func newSessionRouter(store session.Store, handler gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(SessionMiddleware(store, false))
	router.GET("/test", handler)
	return router
}

func sessionCookie(t *testing.T, resp *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range resp.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	return nil
}

func TestSessionMiddleware_EmptySessionSetsNoCookie(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	router := newSessionRouter(store, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Nil(t, sessionCookie(t, resp))
	assert.Equal(t, 0, store.Len())
}

func TestSessionMiddleware_StatefulSessionPersistedWithCookie(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	router := newSessionRouter(store, func(c *gin.Context) {
		sess, ok := GetSession(c)
		require.True(t, ok)
		sess.SetAdminAuthenticated(true)
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(resp, req)

	cookie := sessionCookie(t, resp)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.NotEmpty(t, cookie.Value)

	stored, ok := store.Get(cookie.Value)
	require.True(t, ok)
	assert.True(t, stored.IsAdminAuthenticated())
}

func TestSessionMiddleware_ReusesIncomingToken(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	router := newSessionRouter(store, func(c *gin.Context) {
		sess, _ := GetSession(c)
		sess.SetAdminAuthenticated(true)
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	// Stale cookie: token not present in the store (e.g. expired entry).
	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale-token"})
	router.ServeHTTP(resp, req)

	cookie := sessionCookie(t, resp)
	require.NotNil(t, cookie)
	assert.Equal(t, "stale-token", cookie.Value)

	_, ok := store.Get("stale-token")
	assert.True(t, ok)
}

func TestSessionMiddleware_ExistingSessionResolvedNotReissued(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	existing := session.New()
	existing.SetAdminAuthenticated(true)
	existing.MarkSaved()
	store.Put("known-token", existing)

	var seenAdmin bool
	router := newSessionRouter(store, func(c *gin.Context) {
		sess, _ := GetSession(c)
		seenAdmin = sess.IsAdminAuthenticated()
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "known-token"})
	router.ServeHTTP(resp, req)

	assert.True(t, seenAdmin)
	assert.Nil(t, sessionCookie(t, resp), "already-saved session must not reissue the cookie")
}
