package usecases

import (
	"context"
	"unicode/utf8"

	"whisperbox.backend/internal/domain/entities"
	domainerrors "whisperbox.backend/internal/domain/errors"
	"whisperbox.backend/internal/domain/repositories"
)

// IntakeUsecase accepts anonymous messages addressed to a username.
type IntakeUsecase struct {
	userRepo    repositories.UserRepository
	messageRepo repositories.MessageRepository
}

func NewIntakeUsecase(userRepo repositories.UserRepository, messageRepo repositories.MessageRepository) *IntakeUsecase {
	return &IntakeUsecase{userRepo: userRepo, messageRepo: messageRepo}
}

// Send stores a message for the named recipient. The sender's identity is
// never recorded. Content length is measured in characters, not bytes.
func (u *IntakeUsecase) Send(ctx context.Context, username, content string) (*entities.Message, error) {
	n := utf8.RuneCountInString(content)
	if n < entities.MessageMinLen || n > entities.MessageMaxLen {
		return nil, domainerrors.ErrInvalidContent
	}

	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !user.IsAcceptingMessages {
		return nil, domainerrors.ErrNotAccepting
	}

	return u.messageRepo.Append(ctx, user.ID, content, timeNow())
}
