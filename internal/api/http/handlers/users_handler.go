package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// UsersHandler exposes account endpoints for the caller and for admins.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Me GET /v1/users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	return h.get(c, id.UserID)
}

// UpdateMe PUT /v1/users/me.
func (h *UsersHandler) UpdateMe(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	return h.update(c, id, id.UserID)
}

// DeleteMe DELETE /v1/users/me.
func (h *UsersHandler) DeleteMe(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	return h.remove(c, id.UserID)
}

// List GET /v1/users (admin).
func (h *UsersHandler) List(c *fiber.Ctx) error {
	skip, limit := page(c)
	users, err := h.users.GetMulti(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	return ok(c, "Users retrieved", dto.MapSlice(users, dto.NewUserResponse))
}

// Create POST /v1/users (admin).
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("username, email, password required", nil)
	}
	in := service.UserCreate{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		IsActive:   true,
		IsVerified: req.IsVerified,
	}
	if req.IsActive != nil {
		in.IsActive = *req.IsActive
	}
	if req.Role != "" {
		role, err := domain.ParseUserRole(req.Role)
		if err != nil {
			return apperrors.NewValidationError(err.Error(), nil)
		}
		in.Role = role
	}
	user, err := h.users.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, "User created", dto.NewUserResponse(user))
}

// Get GET /v1/users/:id (admin).
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	userID, err := parseID(c)
	if err != nil {
		return err
	}
	return h.get(c, userID)
}

// Update PUT /v1/users/:id (admin).
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	userID, err := parseID(c)
	if err != nil {
		return err
	}
	return h.update(c, id, userID)
}

// Delete DELETE /v1/users/:id (admin).
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	userID, err := parseID(c)
	if err != nil {
		return err
	}
	return h.remove(c, userID)
}

func (h *UsersHandler) get(c *fiber.Ctx, userID int64) error {
	user, err := h.users.Get(c.UserContext(), userID)
	if err != nil {
		return err
	}
	if user == nil {
		return notFound("user", userID)
	}
	return ok(c, "User retrieved", dto.NewUserResponse(user))
}

func (h *UsersHandler) update(c *fiber.Ctx, id auth.Identity, userID int64) error {
	var req dto.UserUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if (req.Role != nil || req.IsActive != nil || req.IsVerified != nil) && !auth.IsAdmin(id.Role) {
		return apperrors.NewForbidden("The user doesn't have enough privileges")
	}
	in := service.UserUpdate{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		IsActive:   req.IsActive,
		IsVerified: req.IsVerified,
	}
	if req.Role != nil {
		role, err := domain.ParseUserRole(*req.Role)
		if err != nil {
			return apperrors.NewValidationError(err.Error(), nil)
		}
		in.Role = &role
	}

	existing, err := h.users.Get(c.UserContext(), userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound("user", userID)
	}
	user, err := h.users.Update(c.UserContext(), existing, in)
	if err != nil {
		return err
	}
	if user == nil {
		return notFound("user", userID)
	}
	return ok(c, "User updated", dto.NewUserResponse(user))
}

func (h *UsersHandler) remove(c *fiber.Ctx, userID int64) error {
	user, err := h.users.Remove(c.UserContext(), userID)
	if err != nil {
		return err
	}
	if user == nil {
		return notFound("user", userID)
	}
	return ok(c, "User deleted", dto.NewUserResponse(user))
}
