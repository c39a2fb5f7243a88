package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tour-service/internal/domain"
	apperrors "github.com/spec-kit/tour-service/pkg/util"
)

// RequireRoles rejects requests whose authenticated user's role is not in the
// allow-list. Must run after Middleware.Handle.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return apperrors.NewUnauthorized("You are not logged in! Please log in to get access")
		}
		if _, exists := allowedSet[user.Role]; !exists {
			return apperrors.NewForbidden("You do not have permission to perform this action")
		}
		return c.Next()
	}
}
