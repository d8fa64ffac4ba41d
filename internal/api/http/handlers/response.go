package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/auth"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

const defaultTaxRate = 0.07

func respond(c *fiber.Ctx, status int, msg string, data any) error {
	return c.Status(status).JSON(dto.SuccessResponse{
		Status: "success",
		Code:   status,
		Msg:    msg,
		Data:   data,
	})
}

func ok(c *fiber.Ctx, msg string, data any) error {
	return respond(c, http.StatusOK, msg, data)
}

func created(c *fiber.Ctx, msg string, data any) error {
	return respond(c, http.StatusCreated, msg, data)
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

func page(c *fiber.Ctx) (int, int) {
	return c.QueryInt("skip", 0), c.QueryInt("limit", 100)
}

func rate(c *fiber.Ctx, key string, fallback float64) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, apperrors.NewValidationError("invalid "+key, map[string]any{key: raw})
	}
	return v, nil
}

func caller(c *fiber.Ctx) (auth.Identity, error) {
	id, found := auth.IdentityFromCtx(c)
	if !found {
		return auth.Identity{}, apperrors.NewUnauthorized("Not authenticated")
	}
	return id, nil
}

func notFound(resource string, id int64) error {
	return apperrors.NewNotFound(resource, map[string]any{"id": id})
}

// ensureOwner rejects callers that neither own the resource nor hold the admin role.
func ensureOwner(id auth.Identity, ownerID int64) error {
	if !auth.CanAccess(id, ownerID) {
		return apperrors.NewForbidden("The user doesn't have enough privileges")
	}
	return nil
}
