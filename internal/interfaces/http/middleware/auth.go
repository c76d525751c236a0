package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"whisperbox.backend/internal/interfaces/http/response"
	"whisperbox.backend/pkg/jwt"
	redispkg "whisperbox.backend/pkg/redis"
)

const (
	UserIDKey   = "user_id"
	UsernameKey = "username"

	sessionCookieName = "session_id"
)

// Auth authenticates requests with either a Bearer access token or the
// session cookie set at sign-in. The cookie path resolves the session in
// Redis and validates the access token stored inside it.
func Auth(jwtService *jwt.JWTService, sessionStore *redispkg.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)

		if token == "" && sessionStore != nil {
			if sessionID, err := c.Cookie(sessionCookieName); err == nil && sessionID != "" {
				if data, err := sessionStore.GetSession(c.Request.Context(), sessionID); err == nil {
					token = data.AccessToken
				}
			}
		}

		if token == "" {
			response.Fail(c, 401, "Not authenticated")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			response.Fail(c, 401, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetUserID extracts the authenticated user's ID from the gin context.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetUsername extracts the authenticated user's username.
func GetUsername(c *gin.Context) (string, bool) {
	v, ok := c.Get(UsernameKey)
	if !ok {
		return "", false
	}
	name, ok := v.(string)
	return name, ok
}
