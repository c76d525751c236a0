package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"whisperbox.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// GetByIdentifier resolves a sign-in identifier against email or username.
	GetByIdentifier(ctx context.Context, identifier string) (*entities.User, error)
	// GetVerifiedByUsername only matches users with is_verified = true.
	GetVerifiedByUsername(ctx context.Context, username string) (*entities.User, error)
	// ReissueVerification overwrites the password hash and verification
	// ticket of a pending (unverified) registration in one update.
	ReissueVerification(ctx context.Context, id uuid.UUID, passwordHash, code string, expiresAt time.Time) error
	MarkVerified(ctx context.Context, id uuid.UUID) error
	// SetAcceptingMessages replaces the acceptance flag with a single
	// atomic update; last write wins.
	SetAcceptingMessages(ctx context.Context, id uuid.UUID, accepting bool) error
}
