package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"whisperbox.backend/internal/domain/entities"
	domainerrors "whisperbox.backend/internal/domain/errors"
	"whisperbox.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		ID:                  user.ID,
		Username:            user.Username,
		Email:               user.Email,
		PasswordHash:        user.PasswordHash,
		VerifyCode:          user.VerifyCode,
		VerifyCodeExpiresAt: user.VerifyCodeExpiresAt,
		IsVerified:          user.IsVerified,
		IsAcceptingMessages: user.IsAcceptingMessages,
		CreatedAt:           user.CreatedAt,
		UpdatedAt:           user.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetByUsername gets a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.getOne(ctx, "username = ?", username)
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.getOne(ctx, "email = ?", email)
}

// GetByIdentifier gets a user whose email or username matches the identifier
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*entities.User, error) {
	return r.getOne(ctx, "email = ? OR username = ?", identifier, identifier)
}

// GetVerifiedByUsername gets a verified user by username
func (r *UserRepository) GetVerifiedByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.getOne(ctx, "username = ? AND is_verified = ?", username, true)
}

// ReissueVerification overwrites the password hash and verification ticket
// of a pending registration in a single update
func (r *UserRepository) ReissueVerification(ctx context.Context, id uuid.UUID, passwordHash, code string, expiresAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password_hash":          passwordHash,
		"verify_code":            code,
		"verify_code_expires_at": expiresAt,
		"updated_at":             time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// MarkVerified flips is_verified to true
func (r *UserRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_verified": true,
		"updated_at":  time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetAcceptingMessages replaces the acceptance flag atomically
func (r *UserRepository) SetAcceptingMessages(ctx context.Context, id uuid.UUID, accepting bool) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_accepting_messages": accepting,
		"updated_at":            time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, args ...interface{}) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

func toUserEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:                  m.ID,
		Username:            m.Username,
		Email:               m.Email,
		PasswordHash:        m.PasswordHash,
		VerifyCode:          m.VerifyCode,
		VerifyCodeExpiresAt: m.VerifyCodeExpiresAt,
		IsVerified:          m.IsVerified,
		IsAcceptingMessages: m.IsAcceptingMessages,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
