package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whisperbox.backend/pkg/jwt"
	redispkg "whisperbox.backend/pkg/redis"
)

const testSessionKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(t *testing.T, jwtSvc *jwt.JWTService, store *redispkg.SessionStore) *gin.Engine {
	t.Helper()
	r := gin.New()
	r.GET("/protected", Auth(jwtSvc, store), func(c *gin.Context) {
		id, _ := GetUserID(c)
		name, _ := GetUsername(c)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "username": name})
	})
	return r
}

func TestAuth_BearerToken(t *testing.T) {
	jwtSvc := jwt.NewJWTService("secret", time.Minute, time.Hour)
	r := newAuthRouter(t, jwtSvc, nil)

	userID := uuid.New()
	pair, err := jwtSvc.GenerateTokenPair(userID, "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), "alice")
}

func TestAuth_MissingOrMalformedHeader(t *testing.T) {
	jwtSvc := jwt.NewJWTService("secret", time.Minute, time.Hour)
	r := newAuthRouter(t, jwtSvc, nil)

	for _, header := range []string{"", "Bearer", "Basic abc", "garbage"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	expired := jwt.NewJWTService("secret", -time.Minute, time.Hour)
	r := newAuthRouter(t, jwt.NewJWTService("secret", time.Minute, time.Hour), nil)

	pair, err := expired.GenerateTokenPair(uuid.New(), "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_SessionCookieFallback(t *testing.T) {
	mr := miniredis.RunT(t)
	redispkg.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { redispkg.SetClient(nil) })

	store, err := redispkg.NewSessionStore(testSessionKey)
	require.NoError(t, err)

	jwtSvc := jwt.NewJWTService("secret", time.Minute, time.Hour)
	pair, err := jwtSvc.GenerateTokenPair(uuid.New(), "alice")
	require.NoError(t, err)

	sessionID := uuid.NewString()
	require.NoError(t, store.CreateSession(context.Background(), sessionID, &redispkg.SessionData{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, time.Hour))

	r := newAuthRouter(t, jwtSvc, store)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: sessionID})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// An unknown session ID is rejected.
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: uuid.NewString()})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	// A caller-supplied ID is kept.
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "client-supplied-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "client-supplied-id", w.Header().Get(RequestIDHeader))
}

func TestMetricsAndLoggerMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(Logger(), Metrics())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Unmatched routes fall under a single label.
	req = httptest.NewRequest(http.MethodGet, "/nope", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
