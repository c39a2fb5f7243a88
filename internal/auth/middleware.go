package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/tour-service/internal/domain"
	"github.com/spec-kit/tour-service/internal/repository"
	apperrors "github.com/spec-kit/tour-service/pkg/util"
)

const currentUserKey = "current_user"

// Middleware gatekeeps protected routes. For each request it extracts the
// bearer token, verifies it, reloads the user, rejects tokens issued before
// the user's last password change, and attaches the user for downstream
// handlers. Each step short-circuits with 401.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	tokenStr := extractToken(c)
	if tokenStr == "" {
		return apperrors.NewUnauthorized("You are not logged in! Please log in to get access")
	}

	claims, err := m.tokens.Verify(tokenStr)
	if err != nil {
		// translates to distinct invalid vs expired 401 messages
		return apperrors.MapError(err)
	}

	user, err := m.users.GetByID(c.Context(), claims.UserID())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("The user does not exist")
		}
		return apperrors.MapError(err)
	}

	if user.PasswordChangedAfter(claims.IssuedTime()) {
		return apperrors.NewUnauthorized("User recently changed password! Please log in again")
	}

	c.Locals(currentUserKey, user)
	return c.Next()
}

// extractToken pulls the bearer token from the Authorization header. The jwt
// cookie is write-only: set for browser clients on login, never read back.
func extractToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// CurrentUser retrieves the authenticated user attached by Handle.
func CurrentUser(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(currentUserKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}
