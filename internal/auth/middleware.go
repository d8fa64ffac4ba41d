package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

type identityKey struct{}

// Identity represents the authenticated caller.
type Identity struct {
	UserID   int64
	Username string
	Email    string
	Role     domain.UserRole
}

// WithIdentity stores id on ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the caller identity, if the request was authenticated.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// UserLookup loads users by id. Missing users are reported as repository.ErrNotFound.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Authenticator validates bearer tokens and loads the caller.
type Authenticator struct {
	tokens *TokenManager
	users  UserLookup
}

// NewAuthenticator constructs middleware.
func NewAuthenticator(tokens *TokenManager, users UserLookup) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Resolve maps an Authorization header to an identity. A missing header or a
// non-bearer scheme is anonymous and yields ok=false with no error.
func (a *Authenticator) Resolve(ctx context.Context, header string) (Identity, bool, error) {
	scheme, raw, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return Identity{}, false, nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Identity{}, false, nil
	}

	token, err := a.tokens.Verify(raw, domain.TokenKindAccess)
	if err != nil {
		return Identity{}, false, apperrors.NewAuthenticationError("Could not validate credentials", http.StatusUnauthorized)
	}

	user, err := a.users.GetByID(ctx, token.SubjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Identity{}, false, apperrors.NewAuthenticationError("User not found", http.StatusForbidden)
		}
		return Identity{}, false, apperrors.NewDatabaseError("failed to load user", err)
	}
	if !user.IsActive {
		return Identity{}, false, apperrors.NewAuthenticationError("Inactive user", http.StatusUnauthorized)
	}

	return Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, true, nil
}

// Handle resolves the caller for every request. Anonymous requests pass
// through; route guards decide whether they are allowed.
func (a *Authenticator) Handle(c *fiber.Ctx) error {
	id, ok, err := a.Resolve(c.UserContext(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}
	if ok {
		c.SetUserContext(WithIdentity(c.UserContext(), id))
	}
	return c.Next()
}

// IdentityFromCtx retrieves the caller of a fiber request.
func IdentityFromCtx(c *fiber.Ctx) (Identity, bool) {
	return IdentityFrom(c.UserContext())
}
