package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"whisperbox.backend/internal/domain/entities"
)

// MessageRepository defines mailbox data operations
type MessageRepository interface {
	// Append inserts a new message at the end of the owner's mailbox.
	Append(ctx context.Context, ownerID uuid.UUID, content string, createdAt time.Time) (*entities.Message, error)
	// ListByOwner returns the owner's messages newest first; equal
	// timestamps are tie-broken by insertion order. An empty mailbox is
	// an empty slice, not an error.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.Message, error)
	// Delete removes at most one message by id within the owner's
	// mailbox. Zero rows removed yields ErrMessageNotFound.
	Delete(ctx context.Context, ownerID, messageID uuid.UUID) error
}
