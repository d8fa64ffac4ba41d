package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// CataloguesHandler serves the product catalogue. Writes are admin only.
type CataloguesHandler struct {
	catalogues *service.CatalogueService
}

// NewCataloguesHandler constructs handler.
func NewCataloguesHandler(catalogues *service.CatalogueService) *CataloguesHandler {
	return &CataloguesHandler{catalogues: catalogues}
}

// List GET /v1/catalogues.
func (h *CataloguesHandler) List(c *fiber.Ctx) error {
	skip, limit := page(c)
	items, err := h.catalogues.GetMulti(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	return ok(c, "Catalogues retrieved", dto.MapSlice(items, dto.NewCatalogueResponse))
}

// Get GET /v1/catalogues/:id.
func (h *CataloguesHandler) Get(c *fiber.Ctx) error {
	productID, err := parseID(c)
	if err != nil {
		return err
	}
	product, err := h.catalogues.Get(c.UserContext(), productID)
	if err != nil {
		return err
	}
	if product == nil {
		return notFound("catalogue", productID)
	}
	return ok(c, "Catalogue retrieved", dto.NewCatalogueResponse(product))
}

// Create POST /v1/catalogues.
func (h *CataloguesHandler) Create(c *fiber.Ctx) error {
	var req dto.CatalogueRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	if req.Price < 0 || req.Stock < 0 {
		return apperrors.NewValidationError("price and stock must not be negative", nil)
	}
	product, err := h.catalogues.Create(c.UserContext(), service.CatalogueCreate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
	})
	if err != nil {
		return err
	}
	return created(c, "Catalogue created", dto.NewCatalogueResponse(product))
}

// Update PUT /v1/catalogues/:id.
func (h *CataloguesHandler) Update(c *fiber.Ctx) error {
	productID, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.CatalogueUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if (req.Price != nil && *req.Price < 0) || (req.Stock != nil && *req.Stock < 0) {
		return apperrors.NewValidationError("price and stock must not be negative", nil)
	}
	existing, err := h.catalogues.Get(c.UserContext(), productID)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound("catalogue", productID)
	}
	product, err := h.catalogues.Update(c.UserContext(), existing, service.CatalogueUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
	})
	if err != nil {
		return err
	}
	if product == nil {
		return notFound("catalogue", productID)
	}
	return ok(c, "Catalogue updated", dto.NewCatalogueResponse(product))
}

// Delete DELETE /v1/catalogues/:id.
func (h *CataloguesHandler) Delete(c *fiber.Ctx) error {
	productID, err := parseID(c)
	if err != nil {
		return err
	}
	product, err := h.catalogues.Remove(c.UserContext(), productID)
	if err != nil {
		return err
	}
	if product == nil {
		return notFound("catalogue", productID)
	}
	return ok(c, "Catalogue deleted", dto.NewCatalogueResponse(product))
}
