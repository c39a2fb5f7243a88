package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tour-service/internal/api/dto"
	"github.com/spec-kit/tour-service/internal/auth"
	"github.com/spec-kit/tour-service/internal/config"
	"github.com/spec-kit/tour-service/internal/service"
	apperrors "github.com/spec-kit/tour-service/pkg/util"
)

// UsersHandler exposes the account and self-service endpoints.
type UsersHandler struct {
	auth         *service.AuthService
	users        *service.UserService
	cookieTTL    time.Duration
	secureCookie bool
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, userService *service.UserService, cfg *config.Config) *UsersHandler {
	return &UsersHandler{
		auth:         authService,
		users:        userService,
		cookieTTL:    cfg.Auth.CookieTTL(),
		secureCookie: cfg.App.Production(),
	}
}

// sendToken writes the bearer token to the body and mirrors it in the
// httpOnly jwt cookie.
func (h *UsersHandler) sendToken(c *fiber.Ctx, status int, token string) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    token,
		Expires:  time.Now().Add(h.cookieTTL),
		HTTPOnly: true,
		Secure:   h.secureCookie,
	})
	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"token":  token,
	})
}

// Signup handles POST /users/signup.
func (h *UsersHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email and password are required")
	}

	_, token, _, err := h.auth.Signup(c.Context(), req.Name, req.Email, req.Password, req.Password1)
	if err != nil {
		return err
	}
	return h.sendToken(c, http.StatusCreated, token)
}

// Login handles POST /users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewDomainError("MISSING_CREDENTIALS", "Please provide email and password", http.StatusBadRequest)
	}

	_, token, _, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return h.sendToken(c, http.StatusOK, token)
}

// ForgotPassword handles POST /users/forgot-password.
func (h *UsersHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return apperrors.NewValidationError("email is required")
	}

	resetURLBase := c.BaseURL() + "/api/users/resetPassword"
	if err := h.auth.ForgotPassword(c.Context(), req.Email, resetURLBase); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Token sent to email",
	})
}

// ResetPassword handles PATCH /users/resetPassword/:token.
func (h *UsersHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil || req.Password == "" {
		return apperrors.NewValidationError("password is required")
	}

	_, token, _, err := h.auth.ResetPassword(c.Context(), c.Params("token"), req.Password, req.Password1)
	if err != nil {
		return err
	}
	return h.sendToken(c, http.StatusOK, token)
}

// UpdateMyPassword handles PATCH /users/updateMypassword.
func (h *UsersHandler) UpdateMyPassword(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("You are not logged in! Please log in to get access")
	}
	var req dto.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil || req.PasswordCurrent == "" || req.Password == "" {
		return apperrors.NewValidationError("passwordCurrent and password are required")
	}

	token, _, err := h.auth.UpdatePassword(c.Context(), user, req.PasswordCurrent, req.Password, req.Password1)
	if err != nil {
		return err
	}
	return h.sendToken(c, http.StatusOK, token)
}

// UpdateMe handles PATCH /users/updateMe. Password fields are rejected here;
// the dedicated password route re-issues a token.
func (h *UsersHandler) UpdateMe(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("You are not logged in! Please log in to get access")
	}
	var req dto.UpdateMeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Password != nil || req.Password1 != nil {
		return apperrors.NewDomainError("PASSWORD_ROUTE",
			"This route is not for password Update.Please use /updatePassword", http.StatusBadRequest)
	}

	updated, err := h.users.UpdateMe(c.Context(), user, req.Name, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"user": dto.NewUserResponse(updated)},
	})
}

// DeleteMe handles DELETE /users/deleteMe with a soft delete.
func (h *UsersHandler) DeleteMe(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("You are not logged in! Please log in to get access")
	}
	if err := h.users.DeleteMe(c.Context(), user); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(items),
		"data":    fiber.Map{"users": items},
	})
}
