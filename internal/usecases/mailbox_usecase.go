package usecases

import (
	"context"

	"github.com/google/uuid"

	"whisperbox.backend/internal/domain/entities"
	"whisperbox.backend/internal/domain/repositories"
)

// MailboxUsecase serves the owner-facing dashboard operations plus the
// public acceptance-status lookup.
type MailboxUsecase struct {
	userRepo    repositories.UserRepository
	messageRepo repositories.MessageRepository
}

func NewMailboxUsecase(userRepo repositories.UserRepository, messageRepo repositories.MessageRepository) *MailboxUsecase {
	return &MailboxUsecase{userRepo: userRepo, messageRepo: messageRepo}
}

// ListMessages returns the owner's messages, newest first. An empty
// mailbox is an empty slice, not an error.
func (u *MailboxUsecase) ListMessages(ctx context.Context, ownerID uuid.UUID) ([]*entities.Message, error) {
	return u.messageRepo.ListByOwner(ctx, ownerID)
}

// DeleteMessage removes one message if it belongs to the owner.
func (u *MailboxUsecase) DeleteMessage(ctx context.Context, ownerID, messageID uuid.UUID) error {
	return u.messageRepo.Delete(ctx, ownerID, messageID)
}

// SetAcceptingMessages flips the owner's intake gate.
func (u *MailboxUsecase) SetAcceptingMessages(ctx context.Context, ownerID uuid.UUID, accepting bool) error {
	return u.userRepo.SetAcceptingMessages(ctx, ownerID, accepting)
}

// AcceptingStatus reports whether the named user currently accepts
// messages. It is public: senders check it before composing.
func (u *MailboxUsecase) AcceptingStatus(ctx context.Context, username string) (bool, error) {
	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return user.IsAcceptingMessages, nil
}
