package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/persistence"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// CheckoutCreate starts a checkout. TotalAmount is snapshotted from the cart.
type CheckoutCreate struct {
	CartID      int64
	Status      domain.CheckoutStatus
	TotalAmount float64
}

func (in CheckoutCreate) ColumnValues() map[string]any {
	status := in.Status
	if status == "" {
		status = domain.CheckoutStatusInProgress
	}
	return map[string]any{
		"cart_id":      in.CartID,
		"status":       string(status),
		"total_amount": in.TotalAmount,
	}
}

// CheckoutUpdate moves a checkout to another status.
type CheckoutUpdate struct {
	Status *domain.CheckoutStatus
}

func (in CheckoutUpdate) ColumnChanges() map[string]any {
	changes := map[string]any{}
	if in.Status != nil {
		changes["status"] = string(*in.Status)
	}
	return changes
}

// CheckoutService manages checkouts.
type CheckoutService struct {
	*CRUD[domain.Checkout, CheckoutCreate, CheckoutUpdate]
	db    persistence.TxBeginner
	carts *repository.Table[domain.Cart]
}

// NewCheckoutService builds the service.
func NewCheckoutService(db persistence.TxBeginner, logger *zap.Logger) *CheckoutService {
	crud := NewCRUD[domain.Checkout, CheckoutCreate, CheckoutUpdate](db, repository.NewCheckoutTable(), "checkout",
		func(c *domain.Checkout) int64 { return c.ID }, logger)
	return &CheckoutService{CRUD: crud, db: db, carts: repository.NewCartTable()}
}

// Create snapshots the current total of the referenced cart.
func (s *CheckoutService) Create(ctx context.Context, in CheckoutCreate) (*domain.Checkout, error) {
	cart, err := s.carts.Get(ctx, s.db, in.CartID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("cart", map[string]any{"id": in.CartID})
		}
		return nil, apperrors.NewDatabaseError("failed to load cart", err)
	}
	in.TotalAmount = cart.TotalAmount
	return s.CRUD.Create(ctx, in)
}
