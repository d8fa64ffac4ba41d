package service

import (
	"context"
	"net/http"

	squirrel "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/persistence"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// WishlistCreate saves a product for a customer. CustomerID is set by the service.
type WishlistCreate struct {
	CustomerID int64
	ProductID  int64
}

func (in WishlistCreate) ColumnValues() map[string]any {
	return map[string]any{
		"customer_id": in.CustomerID,
		"product_id":  in.ProductID,
	}
}

// WishlistUpdate has no mutable columns; entries are added and removed.
type WishlistUpdate struct{}

func (WishlistUpdate) ColumnChanges() map[string]any { return map[string]any{} }

// WishlistService manages saved products.
type WishlistService struct {
	*CRUD[domain.Wishlist, WishlistCreate, WishlistUpdate]
}

// NewWishlistService builds the service.
func NewWishlistService(db persistence.TxBeginner, logger *zap.Logger) *WishlistService {
	crud := NewCRUD[domain.Wishlist, WishlistCreate, WishlistUpdate](db, repository.NewWishlistTable(), "wishlist",
		func(w *domain.Wishlist) int64 { return w.ID }, logger)
	return &WishlistService{CRUD: crud}
}

// CreateForCustomer saves in on behalf of customerID. Saving the same product
// twice is a client error and an unknown product is not found.
func (s *WishlistService) CreateForCustomer(ctx context.Context, customerID int64, in WishlistCreate) (*domain.Wishlist, error) {
	in.CustomerID = customerID
	entry, err := s.Create(ctx, in)
	if err != nil && repository.IsUniqueViolation(err) {
		return nil, apperrors.NewDomainError("DUPLICATE", "Product already in wishlist", http.StatusBadRequest, nil)
	}
	return entry, err
}

// ListForCustomer pages through the wishlist of customerID.
func (s *WishlistService) ListForCustomer(ctx context.Context, customerID int64, skip, limit int) ([]domain.Wishlist, error) {
	return s.ListWhere(ctx, squirrel.Eq{"customer_id": customerID}, skip, limit)
}
