package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/events"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// ResetTokenLedger records redeemed password reset tokens.
type ResetTokenLedger interface {
	MarkUsed(ctx context.Context, jti string, ttl time.Duration) (bool, error)
}

// RegisterInput is the self-service sign up payload.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

// AuthService coordinates registration, login and password flows.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	hasher     *auth.PasswordHasher
	resets     ResetTokenLedger
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// AuthDependencies encapsulates collaborators of the auth service.
type AuthDependencies struct {
	Users      repository.UserRepository
	Tokens     *auth.TokenManager
	Hasher     *auth.PasswordHasher
	Resets     ResetTokenLedger
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	resets := deps.Resets
	if resets == nil {
		resets = repository.NewMemoryResetTokenLedger()
	}
	return &AuthService{
		users:      deps.Users,
		tokens:     deps.Tokens,
		hasher:     deps.Hasher,
		resets:     resets,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

func badRequest(message string) error {
	return apperrors.NewAuthenticationError(message, http.StatusBadRequest)
}

// Login checks credentials and issues an access/refresh pair. identifier may be
// a username or an email; a username match wins over an email match.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (domain.TokenPair, error) {
	identifier = strings.TrimSpace(identifier)
	user, err := s.users.GetByUsername(ctx, identifier)
	if errors.Is(err, repository.ErrNotFound) {
		user, err = s.users.GetByEmail(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.TokenPair{}, apperrors.NewUnauthorized("Incorrect username or password")
		}
		return domain.TokenPair{}, apperrors.NewDatabaseError("failed to load user", err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return domain.TokenPair{}, apperrors.NewUnauthorized("Incorrect username or password")
	}
	if !user.IsActive {
		return domain.TokenPair{}, apperrors.NewUnauthorized("Inactive user")
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		return domain.TokenPair{}, apperrors.NewDatabaseError("failed to update last login", err)
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return domain.TokenPair{}, apperrors.NewInternalError(err)
	}
	s.logger.Info("user logged in", zap.Int64("user_id", user.ID))
	return pair, nil
}

// Register creates an account and announces it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.PasswordConfirm != "" && in.PasswordConfirm != in.Password {
		return nil, badRequest("Passwords do not match")
	}

	if _, err := s.users.FindByUsernameOrEmail(ctx, in.Username, in.Email); err == nil {
		return nil, badRequest("Username or email already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewDatabaseError("failed to check existing users", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user, err := s.users.Create(ctx, map[string]any{
		"username":      in.Username,
		"email":         in.Email,
		"password_hash": hash,
		"role":          string(domain.UserRoleUser),
		"is_active":     true,
		"is_verified":   false,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, badRequest("Username or email already registered")
		}
		return nil, apperrors.NewDatabaseError("failed to create user", err)
	}

	s.publish(ctx, events.New(events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		Username: user.Username,
		Email:    user.Email,
	}))
	return user, nil
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	token, err := s.tokens.Verify(refreshToken, domain.TokenKindRefresh)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return domain.TokenPair{}, apperrors.NewUnauthorized("Refresh token is expired")
		}
		return domain.TokenPair{}, apperrors.NewUnauthorized("Invalid refresh token")
	}

	user, err := s.users.GetByID(ctx, token.SubjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.TokenPair{}, apperrors.NewUnauthorized("Invalid refresh token")
		}
		return domain.TokenPair{}, apperrors.NewDatabaseError("failed to load user", err)
	}
	if !user.IsActive {
		return domain.TokenPair{}, apperrors.NewUnauthorized("Inactive user")
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return domain.TokenPair{}, apperrors.NewInternalError(err)
	}
	return pair, nil
}

// RequestPasswordReset issues a short lived reset token for the account owning email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperrors.NewAuthenticationError("User with this email does not exist", http.StatusNotFound)
		}
		return "", apperrors.NewDatabaseError("failed to load user", err)
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, domain.TokenKindReset)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.New(events.EventPasswordResetRequested, user.ID, events.PasswordResetRequestedPayload{
		Username:   user.Username,
		Email:      user.Email,
		ResetToken: token,
		ExpiresAt:  expiresAt,
	}))
	return token, nil
}

// ResetPassword redeems a reset token. Each token works once.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	token, err := s.tokens.Verify(resetToken, domain.TokenKindReset)
	if err != nil {
		return badRequest("Invalid or expired reset token")
	}

	fresh, err := s.resets.MarkUsed(ctx, token.ID, token.ExpiresAt.Sub(s.now()))
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if !fresh {
		return badRequest("Reset token has already been used")
	}

	if _, err := s.users.GetByID(ctx, token.SubjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return badRequest("Invalid or expired reset token")
		}
		return apperrors.NewDatabaseError("failed to load user", err)
	}
	return s.setPassword(ctx, token.SubjectID, newPassword)
}

// ConfirmPassword changes a password after checking the current one.
func (s *AuthService) ConfirmPassword(ctx context.Context, username, oldPassword, newPassword string) error {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return badRequest("Invalid username or password")
		}
		return apperrors.NewDatabaseError("failed to load user", err)
	}
	if !s.hasher.Verify(oldPassword, user.PasswordHash) {
		return badRequest("Invalid username or password")
	}
	return s.setPassword(ctx, user.ID, newPassword)
}

func (s *AuthService) setPassword(ctx context.Context, userID int64, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return apperrors.NewDatabaseError("failed to update password", err)
	}
	s.logger.Info("password changed", zap.Int64("user_id", userID))
	return nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}
