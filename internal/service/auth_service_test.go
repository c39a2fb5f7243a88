package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/tour-service/internal/auth"
	"github.com/spec-kit/tour-service/internal/config"
	"github.com/spec-kit/tour-service/internal/domain"
	apperrors "github.com/spec-kit/tour-service/pkg/util"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:               "test-secret",
		AccessTokenTTLMinutes:   60,
		PasswordResetTTLMinutes: 10,
		BcryptCost:              bcrypt.MinCost,
	}
}

func domainStatus(t *testing.T, err error) int {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.HTTPStatus
}

func TestAuthService_Signup(t *testing.T) {
	users := new(mockUserRepo)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = "user-1"
		}).
		Return(nil)

	svc := NewAuthService(testAuthConfig(), users, nil, nil)

	user, token, _, err := svc.Signup(context.Background(), "Alice", "alice@example.com", "pass1234", "pass1234")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.Active)
	assert.NotEqual(t, "pass1234", user.PasswordHash)

	claims, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())

	users.AssertExpectations(t)
}

func TestAuthService_SignupPasswordMismatchNeverPersists(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewAuthService(testAuthConfig(), users, nil, nil)

	_, _, _, err := svc.Signup(context.Background(), "Alice", "alice@example.com", "pass1234", "different")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, domainStatus(t, err))
	assert.Contains(t, err.Error(), "Passwords do not match")

	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("pass1234", bcrypt.MinCost)
	require.NoError(t, err)

	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(&domain.User{ID: "user-1", PasswordHash: hash, Active: true}, nil)

	svc := NewAuthService(testAuthConfig(), users, nil, nil)

	_, token, _, err := svc.Login(context.Background(), "alice@example.com", "pass1234")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("pass1234", bcrypt.MinCost)
	require.NoError(t, err)

	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(&domain.User{ID: "user-1", PasswordHash: hash, Active: true}, nil)

	svc := NewAuthService(testAuthConfig(), users, nil, nil)

	_, _, _, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, domainStatus(t, err))
	assert.Contains(t, err.Error(), "Invalid Credentials")
}

func TestAuthService_LoginUnknownEmailSameError(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, pgx.ErrNoRows)

	svc := NewAuthService(testAuthConfig(), users, nil, nil)

	_, _, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, domainStatus(t, err))
	assert.Contains(t, err.Error(), "Invalid Credentials")
}

func TestAuthService_ForgotPassword(t *testing.T) {
	user := &domain.User{ID: "user-1", Name: "Alice", Email: "alice@example.com", Active: true}

	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	users.On("Update", mock.Anything, user).Return(nil)

	mailer := new(mockMailer)
	mailer.On("SendPasswordReset", mock.Anything, "alice@example.com", "Alice",
		mock.MatchedBy(func(resetURL string) bool {
			return len(resetURL) > len("http://x/api/users/resetPassword/")
		})).Return(nil)

	svc := NewAuthService(testAuthConfig(), users, mailer, nil)

	err := svc.ForgotPassword(context.Background(), "alice@example.com", "http://x/api/users/resetPassword")
	require.NoError(t, err)

	// the stored digest must differ from anything mailed out
	require.NotNil(t, user.PasswordResetToken)
	require.NotNil(t, user.PasswordResetExpiresAt)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), *user.PasswordResetExpiresAt, 5*time.Second)

	mailer.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestAuthService_ForgotPasswordUnknownEmail(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, pgx.ErrNoRows)

	svc := NewAuthService(testAuthConfig(), users, new(mockMailer), nil)

	err := svc.ForgotPassword(context.Background(), "ghost@example.com", "http://x/api/users/resetPassword")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, domainStatus(t, err))
	assert.Contains(t, err.Error(), "There is no user with this email")
}

func TestAuthService_ForgotPasswordMailFailureClearsToken(t *testing.T) {
	user := &domain.User{ID: "user-1", Name: "Alice", Email: "alice@example.com", Active: true}

	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	users.On("Update", mock.Anything, user).Return(nil)

	mailer := new(mockMailer)
	mailer.On("SendPasswordReset", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp: connection refused"))

	svc := NewAuthService(testAuthConfig(), users, mailer, nil)

	err := svc.ForgotPassword(context.Background(), "alice@example.com", "http://x/api/users/resetPassword")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, domainStatus(t, err))
	assert.Contains(t, err.Error(), "There was an error sending the email")

	assert.Nil(t, user.PasswordResetToken)
	assert.Nil(t, user.PasswordResetExpiresAt)
	users.AssertNumberOfCalls(t, "Update", 2)
}

func TestAuthService_ResetPassword(t *testing.T) {
	plain, digest, err := auth.GenerateResetToken()
	require.NoError(t, err)
	expires := time.Now().Add(10 * time.Minute)
	user := &domain.User{
		ID:                     "user-1",
		Active:                 true,
		PasswordResetToken:     &digest,
		PasswordResetExpiresAt: &expires,
	}

	users := new(mockUserRepo)
	users.On("GetByResetToken", mock.Anything, digest).Return(user, nil)
	users.On("Update", mock.Anything, user).Return(nil)

	svc := NewAuthService(testAuthConfig(), users, nil, nil)

	_, token, _, err := svc.ResetPassword(context.Background(), plain, "newpass123", "newpass123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// consumed token is cleared and the change is backdated, so the fresh
	// token passes the password-freshness check
	assert.Nil(t, user.PasswordResetToken)
	require.NotNil(t, user.PasswordChangedAt)
	claims, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	assert.False(t, user.PasswordChangedAfter(claims.IssuedTime()))
}

func TestAuthService_ResetPasswordInvalidToken(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByResetToken", mock.Anything, mock.Anything).Return(nil, pgx.ErrNoRows)

	svc := NewAuthService(testAuthConfig(), users, nil, nil)

	_, _, _, err := svc.ResetPassword(context.Background(), "bogus", "newpass123", "newpass123")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, domainStatus(t, err))
	assert.Contains(t, err.Error(), "Token is invalid or has expired")
}

func TestAuthService_UpdatePassword(t *testing.T) {
	hash, err := auth.HashPassword("current1", bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: "user-1", PasswordHash: hash, Active: true}

	users := new(mockUserRepo)
	users.On("Update", mock.Anything, user).Return(nil)

	svc := NewAuthService(testAuthConfig(), users, nil, nil)

	token, _, err := svc.UpdatePassword(context.Background(), user, "current1", "next2222", "next2222")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NoError(t, auth.ComparePassword(user.PasswordHash, "next2222"))
}

func TestAuthService_UpdatePasswordWrongCurrent(t *testing.T) {
	hash, err := auth.HashPassword("current1", bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: "user-1", PasswordHash: hash, Active: true}

	users := new(mockUserRepo)
	svc := NewAuthService(testAuthConfig(), users, nil, nil)

	_, _, err = svc.UpdatePassword(context.Background(), user, "wrong", "next2222", "next2222")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, domainStatus(t, err))
	assert.Contains(t, err.Error(), "Your current password is wrong")
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
