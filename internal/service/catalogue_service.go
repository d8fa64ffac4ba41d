package service

import (
	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/persistence"
	"github.com/spec-kit/shop-service/internal/repository"
)

// CatalogueCreate describes a new product.
type CatalogueCreate struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
}

func (in CatalogueCreate) ColumnValues() map[string]any {
	return map[string]any{
		"name":        in.Name,
		"description": in.Description,
		"price":       in.Price,
		"stock":       in.Stock,
		"category":    in.Category,
	}
}

// CatalogueUpdate carries the product fields to change.
type CatalogueUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	Category    *string
}

func (in CatalogueUpdate) ColumnChanges() map[string]any {
	changes := map[string]any{}
	setString(changes, "name", in.Name)
	setString(changes, "description", in.Description)
	if in.Price != nil {
		changes["price"] = *in.Price
	}
	if in.Stock != nil {
		changes["stock"] = *in.Stock
	}
	setString(changes, "category", in.Category)
	return changes
}

// CatalogueService manages products.
type CatalogueService struct {
	*CRUD[domain.Catalogue, CatalogueCreate, CatalogueUpdate]
}

// NewCatalogueService builds the service.
func NewCatalogueService(db persistence.TxBeginner, logger *zap.Logger) *CatalogueService {
	crud := NewCRUD[domain.Catalogue, CatalogueCreate, CatalogueUpdate](db, repository.NewCatalogueTable(), "catalogue",
		func(c *domain.Catalogue) int64 { return c.ID }, logger)
	return &CatalogueService{CRUD: crud}
}
