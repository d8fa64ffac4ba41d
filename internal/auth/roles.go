package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/domain"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// RequireUser ensures the request carries a valid identity.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromCtx(c); !ok {
			return apperrors.NewAuthenticationError("Not authenticated", http.StatusUnauthorized)
		}
		return c.Next()
	}
}

// RequireAdmin ensures the caller holds the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := IdentityFromCtx(c)
		if !ok {
			return apperrors.NewAuthenticationError("Not authenticated", http.StatusUnauthorized)
		}
		if !IsAdmin(id.Role) {
			return apperrors.NewAuthenticationError("The user doesn't have enough privileges", http.StatusForbidden)
		}
		return c.Next()
	}
}

// IsAdmin reports whether role grants administrative access.
func IsAdmin(role domain.UserRole) bool {
	switch role {
	case domain.UserRoleAdmin:
		return true
	case domain.UserRoleUser:
		return false
	default:
		return false
	}
}

// CanAccess reports whether the caller may act on a resource owned by ownerID.
func CanAccess(id Identity, ownerID int64) bool {
	return id.UserID == ownerID || IsAdmin(id.Role)
}
