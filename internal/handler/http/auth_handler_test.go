package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/ginext"

	"github.com/wolhaven/atelier/internal/auth"
	"github.com/wolhaven/atelier/internal/handler/middleware"
)

const testCookieName = "atelier_admin"

func newAuthTestEngine(t *testing.T) (*ginext.Engine, *auth.SessionStore) {
	t.Helper()

	sessions := auth.NewSessionStore("geheim", time.Hour)
	engine := ginext.New("api")

	handler := NewAuthHandler(sessions, testCookieName, 3600, false)
	handler.RegisterRoutes(engine)

	// Probe route guarded like every admin mutation.
	engine.POST("/api/protected", middleware.AdminRequired(sessions, testCookieName), func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"ok": true})
	})

	return engine, sessions
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", testCookieName)
	return nil
}

func TestLoginSetsSessionCookie(t *testing.T) {
	engine, _ := newAuthTestEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"password":"geheim"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	engine, _ := newAuthTestEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"password":"fout"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestAdminRouteRequiresSession(t *testing.T) {
	engine, _ := newAuthTestEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/api/protected", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRouteAcceptsValidSession(t *testing.T) {
	engine, _ := newAuthTestEngine(t)

	loginReq := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"password":"geheim"}`))
	loginReq.Header.Set("Content-Type", "application/json")
	loginRec := httptest.NewRecorder()
	engine.ServeHTTP(loginRec, loginReq)
	require.Equal(t, http.StatusOK, loginRec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/protected", nil)
	req.AddCookie(sessionCookie(t, loginRec))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	engine, sessions := newAuthTestEngine(t)

	loginReq := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"password":"geheim"}`))
	loginReq.Header.Set("Content-Type", "application/json")
	loginRec := httptest.NewRecorder()
	engine.ServeHTTP(loginRec, loginReq)
	cookie := sessionCookie(t, loginRec)
	require.True(t, sessions.Valid(cookie.Value))

	logoutReq := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	logoutReq.AddCookie(cookie)
	logoutRec := httptest.NewRecorder()
	engine.ServeHTTP(logoutRec, logoutReq)

	require.Equal(t, http.StatusOK, logoutRec.Code)
	assert.False(t, sessions.Valid(cookie.Value))
}

func TestMeReportsAdminState(t *testing.T) {
	engine, _ := newAuthTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body["admin"])
}
