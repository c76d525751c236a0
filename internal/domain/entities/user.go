package entities

import (
	"time"

	"github.com/google/uuid"
)

// VerifyCodeTTL is how long a verification code stays valid after issuance.
const VerifyCodeTTL = time.Hour

// User represents a registered mailbox owner
type User struct {
	ID                  uuid.UUID  `json:"id"`
	Username            string     `json:"username"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	VerifyCode          string     `json:"-"`
	VerifyCodeExpiresAt time.Time  `json:"-"`
	IsVerified          bool       `json:"isVerified"`
	IsAcceptingMessages bool       `json:"isAcceptingMessages"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
	DeletedAt           *time.Time `json:"-"`
}

// CodeExpired reports whether the verification code is past its expiry.
// The comparison is strict: a code checked exactly at the stored expiry
// instant is still valid.
func (u *User) CodeExpired(now time.Time) bool {
	return now.After(u.VerifyCodeExpiresAt)
}

// SignUpInput represents input for user registration
type SignUpInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// VerifyCodeInput represents input for account verification
type VerifyCodeInput struct {
	Username string `json:"username" binding:"required"`
	Code     string `json:"code" binding:"required,len=6"`
}

// SignInInput represents input for credential sign-in; Identifier
// matches either email or username
type SignInInput struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
	UseSession bool   `json:"useSession"` // If true, store tokens in Redis and return SessionID
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	User         *User  `json:"user"`
}

// AcceptMessagesInput represents input for toggling the acceptance gate
type AcceptMessagesInput struct {
	AcceptMessages *bool `json:"acceptmessages" binding:"required"`
}
