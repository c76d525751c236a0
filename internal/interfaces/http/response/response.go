package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "whisperbox.backend/internal/domain/errors"
)

// Envelope is the uniform response body. Every endpoint, success or
// failure, replies with it so clients can branch on a single flag.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Message: message})
}

// sentinelStatus maps domain sentinels to HTTP statuses and client-facing
// messages.
var sentinelStatus = []struct {
	err     error
	status  int
	message string
}{
	{domainerrors.ErrMessageNotFound, http.StatusNotFound, "Message not found or already deleted"},
	{domainerrors.ErrNotFound, http.StatusNotFound, "User not found"},
	{domainerrors.ErrUsernameTaken, http.StatusBadRequest, "Username is already taken"},
	{domainerrors.ErrEmailTaken, http.StatusBadRequest, "User already exists with this email"},
	{domainerrors.ErrInvalidContent, http.StatusBadRequest, "Message content must be between 10 and 300 characters"},
	{domainerrors.ErrInvalidInput, http.StatusBadRequest, "Invalid request"},
	{domainerrors.ErrNotAccepting, http.StatusForbidden, "User is not accepting messages"},
	{domainerrors.ErrInvalidCredentials, http.StatusUnauthorized, "Incorrect username or password"},
	{domainerrors.ErrNotVerified, http.StatusUnauthorized, "Please verify your account before signing in"},
	{domainerrors.ErrCodeExpired, http.StatusBadRequest, "Verification code has expired, please sign up again to get a new code"},
	{domainerrors.ErrCodeMismatch, http.StatusBadRequest, "Incorrect verification code"},
	{domainerrors.ErrUnauthorized, http.StatusUnauthorized, "Not authenticated"},
	{domainerrors.ErrForbidden, http.StatusForbidden, "Access denied"},
	{domainerrors.ErrEmailDelivery, http.StatusInternalServerError, "Failed to send verification email"},
}

// Error translates a domain error into an envelope. Unknown errors become
// an opaque 500 so internals never leak to clients.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		Fail(c, appErr.Status, appErr.Message)
		return
	}
	for _, m := range sentinelStatus {
		if errors.Is(err, m.err) {
			Fail(c, m.status, m.message)
			return
		}
	}
	Fail(c, http.StatusInternalServerError, "Internal server error")
}
