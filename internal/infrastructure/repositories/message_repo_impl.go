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

// MessageRepository implements mailbox data operations
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Append inserts a new message at the end of the owner's mailbox
func (r *MessageRepository) Append(ctx context.Context, ownerID uuid.UUID, content string, createdAt time.Time) (*entities.Message, error) {
	if err := r.ownerExists(ctx, ownerID); err != nil {
		return nil, err
	}

	m := &models.Message{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: createdAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return toMessageEntity(m), nil
}

// ListByOwner returns the owner's messages newest first. Equal timestamps
// fall back to insertion order via the seq column.
func (r *MessageRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.Message, error) {
	if err := r.ownerExists(ctx, ownerID); err != nil {
		return nil, err
	}

	var rows []models.Message
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Order("seq DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*entities.Message, 0, len(rows))
	for i := range rows {
		messages = append(messages, toMessageEntity(&rows[i]))
	}
	return messages, nil
}

// Delete removes at most one message by id within the owner's mailbox.
// The single conditioned DELETE leaves no read-modify-write window.
func (r *MessageRepository) Delete(ctx context.Context, ownerID, messageID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, messageID).
		Delete(&models.Message{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrMessageNotFound
	}
	return nil
}

func (r *MessageRepository) ownerExists(ctx context.Context, ownerID uuid.UUID) error {
	var m models.User
	if err := r.db.WithContext(ctx).Select("id").Where("id = ?", ownerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrNotFound
		}
		return err
	}
	return nil
}

func toMessageEntity(m *models.Message) *entities.Message {
	return &entities.Message{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
