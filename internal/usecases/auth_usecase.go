package usecases

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"whisperbox.backend/internal/domain/entities"
	domainerrors "whisperbox.backend/internal/domain/errors"
	"whisperbox.backend/internal/domain/repositories"
	"whisperbox.backend/internal/infrastructure/email"
	"whisperbox.backend/pkg/crypto"
	"whisperbox.backend/pkg/jwt"
	"whisperbox.backend/pkg/logger"
	redispkg "whisperbox.backend/pkg/redis"
)

// test seams
var (
	timeNow         = time.Now
	generateCode    = crypto.GenerateVerificationCode
	newSessionID    = uuid.NewString
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)
)

// AuthUsecase handles registration, email verification and sign-in.
type AuthUsecase struct {
	userRepo      repositories.UserRepository
	emailSender   email.Sender
	jwtService    *jwt.JWTService
	sessionStore  *redispkg.SessionStore
	sessionExpiry time.Duration
}

func NewAuthUsecase(
	userRepo repositories.UserRepository,
	emailSender email.Sender,
	jwtService *jwt.JWTService,
	sessionStore *redispkg.SessionStore,
	sessionExpiry time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:      userRepo,
		emailSender:   emailSender,
		jwtService:    jwtService,
		sessionStore:  sessionStore,
		sessionExpiry: sessionExpiry,
	}
}

// Register creates an unverified account and emails a verification code.
// If the email already belongs to an unverified account, the account is
// refreshed in place with the new password and a new code. A verified
// account keeps its username and email reserved.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.SignUpInput) error {
	if !usernamePattern.MatchString(input.Username) {
		return domainerrors.ErrInvalidInput
	}

	_, err := u.userRepo.GetVerifiedByUsername(ctx, input.Username)
	if err == nil {
		return domainerrors.ErrUsernameTaken
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	expiresAt := timeNow().Add(entities.VerifyCodeTTL)

	existing, err := u.userRepo.GetByEmail(ctx, input.Email)
	switch {
	case err == nil && existing.IsVerified:
		return domainerrors.ErrEmailTaken
	case err == nil:
		// Unverified holder of this email: let the new attempt take over.
		if err := u.userRepo.ReissueVerification(ctx, existing.ID, passwordHash, code, expiresAt); err != nil {
			return err
		}
	case errors.Is(err, domainerrors.ErrNotFound):
		user := &entities.User{
			ID:                  uuid.New(),
			Username:            input.Username,
			Email:               input.Email,
			PasswordHash:        passwordHash,
			VerifyCode:          code,
			VerifyCodeExpiresAt: expiresAt,
			IsVerified:          false,
			IsAcceptingMessages: true,
		}
		if err := u.userRepo.Create(ctx, user); err != nil {
			return err
		}
	default:
		return err
	}

	if err := u.emailSender.SendVerificationCode(ctx, input.Email, input.Username, code); err != nil {
		logger.Error(ctx, "failed to send verification email", zap.Error(err))
		return domainerrors.ErrEmailDelivery
	}
	return nil
}

// VerifyCode checks the emailed code for the given username. Expiry is
// checked before the code itself, so a stale correct code reports as
// expired rather than as a mismatch.
func (u *AuthUsecase) VerifyCode(ctx context.Context, username, code string) error {
	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user.CodeExpired(timeNow()) {
		return domainerrors.ErrCodeExpired
	}
	if user.VerifyCode != code {
		return domainerrors.ErrCodeMismatch
	}
	return u.userRepo.MarkVerified(ctx, user.ID)
}

// Login authenticates by email or username. Unverified accounts are
// rejected before the password is examined.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.SignInInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByIdentifier(ctx, input.Identifier)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsVerified {
		return nil, domainerrors.ErrNotVerified
	}
	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	resp := &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}

	if input.UseSession && u.sessionStore != nil {
		sessionID := newSessionID()
		data := &redispkg.SessionData{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		}
		if err := u.sessionStore.CreateSession(ctx, sessionID, data, u.sessionExpiry); err != nil {
			return nil, err
		}
		resp.SessionID = sessionID
	}
	return resp, nil
}

func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// CheckUsernameAvailable reports whether a username is syntactically
// valid and not already held by a verified account.
func (u *AuthUsecase) CheckUsernameAvailable(ctx context.Context, username string) error {
	if !usernamePattern.MatchString(username) {
		return domainerrors.ErrInvalidInput
	}
	_, err := u.userRepo.GetVerifiedByUsername(ctx, username)
	if err == nil {
		return domainerrors.ErrUsernameTaken
	}
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil
	}
	return err
}
