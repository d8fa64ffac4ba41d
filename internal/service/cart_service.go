package service

import (
	"context"
	"errors"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/persistence"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// CartCreate opens a cart. CustomerID is set by the service.
type CartCreate struct {
	CustomerID int64
}

func (in CartCreate) ColumnValues() map[string]any {
	return map[string]any{"customer_id": in.CustomerID, "total_amount": 0.0}
}

// CartUpdate reassigns a cart.
type CartUpdate struct {
	CustomerID *int64
}

func (in CartUpdate) ColumnChanges() map[string]any {
	changes := map[string]any{}
	if in.CustomerID != nil {
		changes["customer_id"] = *in.CustomerID
	}
	return changes
}

// CartService manages carts and their computed totals.
type CartService struct {
	*CRUD[domain.Cart, CartCreate, CartUpdate]
	db     persistence.TxBeginner
	store  *repository.CartStore
	logger *zap.Logger
}

// NewCartService builds the service.
func NewCartService(db persistence.TxBeginner, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := repository.NewCartStore()
	crud := NewCRUD[domain.Cart, CartCreate, CartUpdate](db, store.Carts, "cart",
		func(c *domain.Cart) int64 { return c.ID }, logger)
	return &CartService{CRUD: crud, db: db, store: store, logger: logger}
}

// CreateForCustomer opens a cart for customerID.
func (s *CartService) CreateForCustomer(ctx context.Context, customerID int64) (*domain.Cart, error) {
	return s.Create(ctx, CartCreate{CustomerID: customerID})
}

// ListForCustomer pages through carts owned by customerID.
func (s *CartService) ListForCustomer(ctx context.Context, customerID int64, skip, limit int) ([]domain.Cart, error) {
	return s.ListWhere(ctx, squirrel.Eq{"customer_id": customerID}, skip, limit)
}

// Lines returns the lines of cartID.
func (s *CartService) Lines(ctx context.Context, cartID int64) ([]domain.CartLine, error) {
	lines, err := s.store.LinesForCart(ctx, s.db, cartID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to list cart lines", err)
	}
	return lines, nil
}

// CalculateTotal folds the current lines of cartID at taxRate. Nothing is stored.
func (s *CartService) CalculateTotal(ctx context.Context, cartID int64, taxRate float64) (float64, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return 0, err
	}
	if cart == nil {
		return 0, apperrors.NewNotFound("cart", map[string]any{"id": cartID})
	}
	lines, err := s.Lines(ctx, cartID)
	if err != nil {
		return 0, err
	}
	return domain.CartTotal(lines, taxRate), nil
}

// ApplyDiscount discounts every line of cartID at rate and stores the lines and
// the recomputed cart total in one transaction. It returns the aggregate discount.
func (s *CartService) ApplyDiscount(ctx context.Context, cartID int64, rate float64) (float64, error) {
	var applied float64
	err := persistence.InTx(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := s.store.Carts.Get(ctx, tx, cartID); err != nil {
			return err
		}
		lines, err := s.store.LinesForCart(ctx, tx, cartID)
		if err != nil {
			return err
		}
		applied = domain.ApplyCartDiscount(lines, rate)
		for _, line := range lines {
			if _, err := s.store.Lines.Update(ctx, tx, line.ID, map[string]any{"discount_amount": line.DiscountAmount}); err != nil {
				return err
			}
		}
		_, err = s.store.RecomputeTotal(ctx, tx, cartID)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, apperrors.NewNotFound("cart", map[string]any{"id": cartID})
		}
		return 0, apperrors.NewDatabaseError("failed to apply cart discount", err)
	}
	s.logger.Info("cart discount applied",
		zap.Int64("cart_id", cartID),
		zap.Float64("rate", rate),
		zap.Float64("discount", applied))
	return applied, nil
}

// CartLineCreate adds a product to a cart. A nil Price takes the catalogue price.
type CartLineCreate struct {
	CartID    int64
	ProductID int64
	Quantity  int
	Price     *float64
}

func (in CartLineCreate) ColumnValues() map[string]any {
	values := map[string]any{
		"cart_id":         in.CartID,
		"product_id":      in.ProductID,
		"quantity":        in.Quantity,
		"discount_amount": 0.0,
		"added_at":        time.Now().UTC(),
	}
	if in.Price != nil {
		values["price"] = *in.Price
	}
	return values
}

// CartLineUpdate carries the line fields to change.
type CartLineUpdate struct {
	Quantity       *int
	Price          *float64
	DiscountAmount *float64
}

func (in CartLineUpdate) ColumnChanges() map[string]any {
	changes := map[string]any{}
	if in.Quantity != nil {
		changes["quantity"] = *in.Quantity
	}
	if in.Price != nil {
		changes["price"] = *in.Price
	}
	if in.DiscountAmount != nil {
		changes["discount_amount"] = *in.DiscountAmount
	}
	return changes
}

// CartLineService manages cart lines. Every write recomputes the owning cart
// total inside the same transaction.
type CartLineService struct {
	*CRUD[domain.CartLine, CartLineCreate, CartLineUpdate]
	db         persistence.TxBeginner
	store      *repository.CartStore
	catalogues *repository.Table[domain.Catalogue]
}

// NewCartLineService builds the service.
func NewCartLineService(db persistence.TxBeginner, logger *zap.Logger) *CartLineService {
	store := repository.NewCartStore()
	crud := NewCRUD[domain.CartLine, CartLineCreate, CartLineUpdate](db, store.Lines, "cart line",
		func(l *domain.CartLine) int64 { return l.ID }, logger)
	crud.WithAfterWrite(func(ctx context.Context, tx pgx.Tx, line *domain.CartLine) error {
		_, err := store.RecomputeTotal(ctx, tx, line.CartID)
		return err
	})
	return &CartLineService{CRUD: crud, db: db, store: store, catalogues: repository.NewCatalogueTable()}
}

// Create adds a line for an existing product, filling the price from the
// catalogue when it is not given.
func (s *CartLineService) Create(ctx context.Context, in CartLineCreate) (*domain.CartLine, error) {
	product, err := s.catalogues.Get(ctx, s.db, in.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("product", map[string]any{"id": in.ProductID})
		}
		return nil, apperrors.NewDatabaseError("failed to load product", err)
	}
	if in.Price == nil {
		price := product.Price
		in.Price = &price
	}
	return s.CRUD.Create(ctx, in)
}

// ApplyDiscount discounts a single line at rate and stores it with the recomputed cart total.
func (s *CartLineService) ApplyDiscount(ctx context.Context, lineID int64, rate float64) (*domain.CartLine, error) {
	var updated *domain.CartLine
	err := persistence.InTx(ctx, s.db, func(tx pgx.Tx) error {
		line, err := s.store.Lines.Get(ctx, tx, lineID)
		if err != nil {
			return err
		}
		line.ApplyDiscount(rate)
		updated, err = s.store.Lines.Update(ctx, tx, lineID, map[string]any{"discount_amount": line.DiscountAmount})
		if err != nil {
			return err
		}
		_, err = s.store.RecomputeTotal(ctx, tx, line.CartID)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("cart line", map[string]any{"id": lineID})
		}
		return nil, apperrors.NewDatabaseError("failed to apply line discount", err)
	}
	return updated, nil
}

// CalculateTax returns the tax charged on a line at taxRate.
func (s *CartLineService) CalculateTax(ctx context.Context, lineID int64, taxRate float64) (float64, error) {
	line, err := s.Get(ctx, lineID)
	if err != nil {
		return 0, err
	}
	if line == nil {
		return 0, apperrors.NewNotFound("cart line", map[string]any{"id": lineID})
	}
	return line.Tax(taxRate), nil
}
