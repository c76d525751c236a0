package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"whisperbox.backend/internal/infrastructure/repositories"
	"whisperbox.backend/internal/interfaces/http/middleware"
	"whisperbox.backend/internal/usecases"
	"whisperbox.backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// recordingSender captures the last verification code instead of sending
// email, letting tests walk the full sign-up and verify flow.
type recordingSender struct {
	mu       sync.Mutex
	lastCode string
	lastTo   string
	failWith error
}

func (s *recordingSender) SendVerificationCode(_ context.Context, toEmail, _ string, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.lastTo = toEmail
	s.lastCode = code
	return nil
}

func (s *recordingSender) code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCode
}

type testApp struct {
	router *gin.Engine
	sender *recordingSender
	db     *gorm.DB
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")

	require.NoError(t, db.Exec(`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		verify_code TEXT NOT NULL,
		verify_code_expires_at DATETIME NOT NULL,
		is_verified BOOLEAN NOT NULL DEFAULT 0,
		is_accepting_messages BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE messages (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT UNIQUE NOT NULL,
		owner_id TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at DATETIME
	);`).Error)

	userRepo := repositories.NewUserRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	jwtService := jwt.NewJWTService("handler-test-secret", 15*time.Minute, 24*time.Hour)
	sender := &recordingSender{}

	authUsecase := usecases.NewAuthUsecase(userRepo, sender, jwtService, nil, time.Hour)
	intakeUsecase := usecases.NewIntakeUsecase(userRepo, messageRepo)
	mailboxUsecase := usecases.NewMailboxUsecase(userRepo, messageRepo)

	authHandler := NewAuthHandler(authUsecase)
	messageHandler := NewMessageHandler(intakeUsecase, mailboxUsecase)
	authMiddleware := middleware.Auth(jwtService, nil)

	r := gin.New()
	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/sign-up", authHandler.SignUp)
			auth.POST("/verify-code", authHandler.VerifyCode)
			auth.POST("/sign-in", authHandler.SignIn)
			auth.GET("/check-username-unique", authHandler.CheckUsername)
			auth.GET("/me", authMiddleware, authHandler.GetMe)
		}

		v1.POST("/send-message", messageHandler.SendMessage)
		v1.GET("/accept-messages", messageHandler.GetAcceptMessages)

		messages := v1.Group("/messages")
		messages.Use(authMiddleware)
		{
			messages.GET("", messageHandler.GetMessages)
			messages.DELETE("/:messageid", messageHandler.DeleteMessage)
		}

		v1.POST("/accept-messages", authMiddleware, messageHandler.UpdateAcceptMessages)
	}

	return &testApp{router: r, sender: sender, db: db}
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// signUpAndVerify walks a user through registration and verification,
// returning a valid access token.
func (a *testApp) signUpAndVerify(t *testing.T, username, email, password string) string {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/v1/auth/sign-up", "", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/v1/auth/verify-code", "", gin.H{
		"username": username,
		"code":     a.sender.code(),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/v1/auth/sign-in", "", gin.H{
		"identifier": username,
		"password":   password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "sign-in response has no data")
	token, _ := data["accessToken"].(string)
	require.NotEmpty(t, token)
	return token
}
