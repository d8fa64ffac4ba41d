package repository

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/persistence"
)

// CartStore holds the queries that span carts and their lines.
type CartStore struct {
	Carts *Table[domain.Cart]
	Lines *Table[domain.CartLine]
}

// NewCartStore builds the cart tables.
func NewCartStore() *CartStore {
	return &CartStore{Carts: NewCartTable(), Lines: NewCartLineTable()}
}

// LinesForCart returns every line owned by cartID.
func (s *CartStore) LinesForCart(ctx context.Context, db persistence.DBTX, cartID int64) ([]domain.CartLine, error) {
	return s.Lines.List(ctx, db, ListOptions{Where: squirrel.Eq{"cart_id": cartID}})
}

// RecomputeTotal folds the current lines of cartID at tax 0 and stores the result.
func (s *CartStore) RecomputeTotal(ctx context.Context, db persistence.DBTX, cartID int64) (float64, error) {
	lines, err := s.LinesForCart(ctx, db, cartID)
	if err != nil {
		return 0, err
	}
	total := domain.CartTotal(lines, 0)
	if _, err := s.Carts.Update(ctx, db, cartID, map[string]any{"total_amount": total}); err != nil {
		return 0, fmt.Errorf("store cart total: %w", err)
	}
	return total, nil
}
