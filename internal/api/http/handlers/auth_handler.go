package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// AuthHandler exposes login, registration and password flows.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /v1/auth/login. Credentials arrive form encoded.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var form dto.LoginForm
	if err := parseBody(c, &form); err != nil {
		return err
	}
	if form.Username == "" || form.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}
	pair, err := h.auth.Login(c.UserContext(), form.Username, form.Password)
	if err != nil {
		return err
	}
	return ok(c, "Login successful", tokenResponse(pair.AccessToken, pair.RefreshToken, pair.TokenType))
}

// Register handles POST /v1/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("username, email, password required", nil)
	}
	user, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		return err
	}
	return created(c, "User registered", dto.NewUserResponse(user))
}

// Refresh handles POST /v1/auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.RefreshToken == "" {
		return apperrors.NewValidationError("refresh_token required", nil)
	}
	pair, err := h.auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}
	return ok(c, "Token refreshed", tokenResponse(pair.AccessToken, pair.RefreshToken, pair.TokenType))
}

// RequestPasswordReset handles POST /v1/auth/reset-password-request.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	token, err := h.auth.RequestPasswordReset(c.UserContext(), req.Email)
	if err != nil {
		return err
	}
	return ok(c, "Password reset token issued", dto.ResetTokenResponse{ResetToken: token})
}

// ResetPassword handles POST /v1/auth/reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirm
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Token == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("token and new_password required", nil)
	}
	if err := h.auth.ResetPassword(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return ok(c, "Password has been reset", nil)
}

// ConfirmPassword handles POST /v1/auth/confirm-password.
func (h *AuthHandler) ConfirmPassword(c *fiber.Ctx) error {
	var req dto.ConfirmPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Username == "" || req.OldPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("username, old_password, new_password required", nil)
	}
	if err := h.auth.ConfirmPassword(c.UserContext(), req.Username, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return ok(c, "Password updated", nil)
}

func tokenResponse(access, refresh, kind string) dto.TokenResponse {
	return dto.TokenResponse{AccessToken: access, RefreshToken: refresh, TokenType: kind}
}
