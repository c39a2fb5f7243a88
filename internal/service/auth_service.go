package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/tour-service/internal/auth"
	"github.com/spec-kit/tour-service/internal/config"
	"github.com/spec-kit/tour-service/internal/domain"
	"github.com/spec-kit/tour-service/internal/events"
	"github.com/spec-kit/tour-service/internal/repository"
	apperrors "github.com/spec-kit/tour-service/pkg/util"
)

// AuthService coordinates signup, login, and the password lifecycle.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	mailer     Mailer
	dispatcher events.Dispatcher
	bcryptCost int
	resetTTL   time.Duration
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, mailer Mailer, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
		mailer:     mailer,
		dispatcher: dispatcher,
		bcryptCost: cfg.BcryptCost,
		resetTTL:   cfg.ResetTokenTTL(),
	}
}

// Signup creates a new account with the "user" role and issues a token.
// Password mismatch fails before anything is persisted.
func (s *AuthService) Signup(ctx context.Context, name, email, password, passwordConfirm string) (*domain.User, string, time.Time, error) {
	if password != passwordConfirm {
		return nil, "", time.Time{}, apperrors.NewDomainError("PASSWORD_MISMATCH", "Passwords do not match", http.StatusBadRequest)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		Role:         domain.RoleUser,
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.Issue(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.EventUserSignedUp, user.ID, events.UserSignedUpPayload{Name: user.Name, Email: user.Email})
	return user, token, exp, nil
}

// Login authenticates by email and password. A missing account and a wrong
// password produce the same 401 so the response never reveals which was off.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("Invalid Credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("Invalid Credentials")
	}

	token, exp, err := s.tokenMgr.Issue(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// ForgotPassword stores a hashed single-use reset token on the user and mails
// the plaintext link. A failed send clears the token fields before surfacing
// the error.
func (s *AuthService) ForgotPassword(ctx context.Context, email, resetURLBase string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewDomainError("NOT_FOUND", "There is no user with this email", http.StatusNotFound)
		}
		return err
	}

	plain, digest, err := auth.GenerateResetToken()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(s.resetTTL)
	user.PasswordResetToken = &digest
	user.PasswordResetExpiresAt = &expiresAt
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	resetURL := resetURLBase + "/" + plain
	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.Name, resetURL); err != nil {
		user.ClearResetToken()
		_ = s.users.Update(ctx, user)
		return apperrors.NewDomainError("EMAIL_SEND_FAILED",
			"There was an error sending the email", http.StatusInternalServerError)
	}

	s.publish(ctx, events.EventPasswordResetRequested, user.ID,
		events.PasswordResetRequestedPayload{Email: user.Email, ExpiresAt: expiresAt})
	return nil
}

// ResetPassword consumes a reset token: the stored digest is cleared on
// success, so the same token cannot reset twice.
func (s *AuthService) ResetPassword(ctx context.Context, plainToken, password, passwordConfirm string) (*domain.User, string, time.Time, error) {
	if password != passwordConfirm {
		return nil, "", time.Time{}, apperrors.NewDomainError("PASSWORD_MISMATCH", "Passwords do not match", http.StatusBadRequest)
	}

	user, err := s.users.GetByResetToken(ctx, auth.HashResetToken(plainToken))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewDomainError("INVALID_RESET_TOKEN",
				"Token is invalid or has expired", http.StatusBadRequest)
		}
		return nil, "", time.Time{}, err
	}

	if err := s.rotatePassword(ctx, user, password); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Issue(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// UpdatePassword rotates the password of a logged-in user after verifying the
// current one, and issues a fresh token.
func (s *AuthService) UpdatePassword(ctx context.Context, user *domain.User, currentPassword, password, passwordConfirm string) (string, time.Time, error) {
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("Your current password is wrong")
	}
	if password != passwordConfirm {
		return "", time.Time{}, apperrors.NewDomainError("PASSWORD_MISMATCH", "Passwords do not match", http.StatusBadRequest)
	}

	if err := s.rotatePassword(ctx, user, password); err != nil {
		return "", time.Time{}, err
	}
	return s.tokenMgr.Issue(user.ID)
}

// rotatePassword hashes and persists a new password, clearing any pending
// reset token. The change timestamp is backdated one second so the token
// issued in the same request stays fresh.
func (s *AuthService) rotatePassword(ctx context.Context, user *domain.User, password string) error {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	changedAt := time.Now().Add(-time.Second)
	user.PasswordHash = hash
	user.PasswordChangedAt = &changedAt
	user.ClearResetToken()
	return s.users.Update(ctx, user)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, subjectID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
