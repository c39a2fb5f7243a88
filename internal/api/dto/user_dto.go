package dto

import (
	"time"

	"github.com/spec-kit/tour-service/internal/domain"
)

// SignupRequest payload for new users. password1 confirms password.
type SignupRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password1 string `json:"password1"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest payload.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest payload; the token travels in the path.
type ResetPasswordRequest struct {
	Password  string `json:"password"`
	Password1 string `json:"password1"`
}

// UpdatePasswordRequest payload for the self-service password change.
type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent"`
	Password        string `json:"password"`
	Password1       string `json:"password1"`
}

// UpdateMeRequest restricts profile updates to name and email. The password
// fields exist only so the handler can reject them explicitly.
type UpdateMeRequest struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"`
	Password1 *string `json:"password1,omitempty"`
}

// UserResponse never carries password or reset-token material.
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Photo     string      `json:"photo"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewUserResponse maps the domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Photo:     user.Photo,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
