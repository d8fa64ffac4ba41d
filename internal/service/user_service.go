package service

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/persistence"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// UserCreate describes a new account. Password is hashed before it is stored.
type UserCreate struct {
	Username   string
	Email      string
	Password   string
	Role       domain.UserRole
	IsActive   bool
	IsVerified bool

	passwordHash string
}

func (in UserCreate) ColumnValues() map[string]any {
	role := in.Role
	if role == "" {
		role = domain.UserRoleUser
	}
	return map[string]any{
		"username":      in.Username,
		"email":         in.Email,
		"password_hash": in.passwordHash,
		"role":          string(role),
		"is_active":     in.IsActive,
		"is_verified":   in.IsVerified,
	}
}

// UserUpdate carries the account fields to change.
type UserUpdate struct {
	Username   *string
	Email      *string
	Password   *string
	Role       *domain.UserRole
	IsActive   *bool
	IsVerified *bool
	LastLogin  *time.Time

	passwordHash *string
}

func (in UserUpdate) ColumnChanges() map[string]any {
	changes := map[string]any{}
	setString(changes, "username", in.Username)
	setString(changes, "email", in.Email)
	setString(changes, "password_hash", in.passwordHash)
	if in.Role != nil {
		changes["role"] = string(*in.Role)
	}
	if in.IsActive != nil {
		changes["is_active"] = *in.IsActive
	}
	if in.IsVerified != nil {
		changes["is_verified"] = *in.IsVerified
	}
	if in.LastLogin != nil {
		changes["last_login"] = *in.LastLogin
	}
	return changes
}

// UserService manages accounts.
type UserService struct {
	*CRUD[domain.User, UserCreate, UserUpdate]
	hasher *auth.PasswordHasher
}

// NewUserService builds the service.
func NewUserService(db persistence.TxBeginner, hasher *auth.PasswordHasher, logger *zap.Logger) *UserService {
	crud := NewCRUD[domain.User, UserCreate, UserUpdate](db, repository.NewUserTable(), "user",
		func(u *domain.User) int64 { return u.ID }, logger)
	return &UserService{CRUD: crud, hasher: hasher}
}

// Create hashes the password and stores the account.
func (s *UserService) Create(ctx context.Context, in UserCreate) (*domain.User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	in.passwordHash = hash
	user, err := s.CRUD.Create(ctx, in)
	if err != nil && repository.IsUniqueViolation(err) {
		return nil, apperrors.NewAuthenticationError("Username or email already registered", http.StatusBadRequest)
	}
	return user, err
}

// Update hashes a new password when one is given.
func (s *UserService) Update(ctx context.Context, existing *domain.User, in UserUpdate) (*domain.User, error) {
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		in.passwordHash = &hash
	}
	user, err := s.CRUD.Update(ctx, existing, in)
	if err != nil && repository.IsUniqueViolation(err) {
		return nil, apperrors.NewAuthenticationError("Username or email already registered", http.StatusBadRequest)
	}
	return user, err
}
