package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/spec-kit/shop-service/internal/domain"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

var (
	cartColumns     = []string{"id", "customer_id", "total_amount", "created_at", "updated_at"}
	cartLineColumns = []string{"id", "cart_id", "product_id", "quantity", "price", "discount_amount", "added_at", "created_at", "updated_at"}
)

func TestCartLineService_CreateRecomputesTotal(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCartLineService(mock, nil)
	now := time.Now().UTC()
	price := 10.0

	mock.ExpectQuery(`FROM catalogues WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(catalogueColumns).
			AddRow(int64(7), "Shuttlecock", "", 12.0, 40, "sports", now, now))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO cart_lines`).
		WillReturnRows(pgxmock.NewRows(cartLineColumns).
			AddRow(int64(11), int64(1), int64(7), 2, 10.0, 0.0, now, now, now))
	mock.ExpectQuery(`FROM cart_lines WHERE cart_id = \$1 ORDER BY id ASC`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(cartLineColumns).
			AddRow(int64(11), int64(1), int64(7), 2, 10.0, 0.0, now, now, now))
	mock.ExpectQuery(`UPDATE carts SET total_amount = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(20.0, int64(1)).
		WillReturnRows(pgxmock.NewRows(cartColumns).AddRow(int64(1), int64(1), 20.0, now, now))
	mock.ExpectCommit()

	line, err := svc.Create(context.Background(), CartLineCreate{CartID: 1, ProductID: 7, Quantity: 2, Price: &price})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if line.ID != 11 || line.Subtotal() != 20 {
		t.Fatalf("unexpected line %+v", line)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCartLineService_CreateUsesCataloguePrice(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCartLineService(mock, nil)

	mock.ExpectQuery(`FROM catalogues WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows(catalogueColumns))

	_, err := svc.Create(context.Background(), CartLineCreate{CartID: 1, ProductID: 99, Quantity: 1})
	de := apperrors.ToDomainError(err)
	if de == nil || de.HTTPStatus != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestCartService_CalculateTotal(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCartService(mock, nil)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM carts WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(cartColumns).AddRow(int64(1), int64(1), 20.0, now, now))
	mock.ExpectQuery(`FROM cart_lines WHERE cart_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(cartLineColumns).
			AddRow(int64(11), int64(1), int64(7), 2, 10.0, 0.0, now, now, now))

	total, err := svc.CalculateTotal(context.Background(), 1, 0.1)
	if err != nil {
		t.Fatalf("CalculateTotal returned error: %v", err)
	}
	if total != 22 {
		t.Fatalf("total = %v, want 22", total)
	}
}

func TestCartService_CalculateTotalMissingCart(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCartService(mock, nil)

	mock.ExpectQuery(`FROM carts WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows(cartColumns))

	_, err := svc.CalculateTotal(context.Background(), 3, 0.1)
	if de := apperrors.ToDomainError(err); de == nil || de.HTTPStatus != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestCartService_ApplyDiscount(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCartService(mock, nil)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM carts WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(cartColumns).AddRow(int64(1), int64(1), 20.0, now, now))
	mock.ExpectQuery(`FROM cart_lines WHERE cart_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(cartLineColumns).
			AddRow(int64(11), int64(1), int64(7), 2, 10.0, 0.0, now, now, now))
	mock.ExpectQuery(`UPDATE cart_lines SET discount_amount = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(10.0, int64(11)).
		WillReturnRows(pgxmock.NewRows(cartLineColumns).
			AddRow(int64(11), int64(1), int64(7), 2, 10.0, 10.0, now, now, now))
	mock.ExpectQuery(`FROM cart_lines WHERE cart_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(cartLineColumns).
			AddRow(int64(11), int64(1), int64(7), 2, 10.0, 10.0, now, now, now))
	mock.ExpectQuery(`UPDATE carts SET total_amount = \$1`).
		WithArgs(10.0, int64(1)).
		WillReturnRows(pgxmock.NewRows(cartColumns).AddRow(int64(1), int64(1), 10.0, now, now))
	mock.ExpectCommit()

	discount, err := svc.ApplyDiscount(context.Background(), 1, 0.5)
	if err != nil {
		t.Fatalf("ApplyDiscount returned error: %v", err)
	}
	if discount != 10 {
		t.Fatalf("discount = %v, want 10", discount)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCartService_ApplyDiscountRollsBackOnFailure(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCartService(mock, nil)
	now := time.Now().UTC()
	boom := errors.New("deadlock detected")

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM carts WHERE id = \$1`).
		WillReturnRows(pgxmock.NewRows(cartColumns).AddRow(int64(1), int64(1), 20.0, now, now))
	mock.ExpectQuery(`FROM cart_lines WHERE cart_id = \$1`).
		WillReturnRows(pgxmock.NewRows(cartLineColumns).
			AddRow(int64(11), int64(1), int64(7), 2, 10.0, 0.0, now, now, now))
	mock.ExpectQuery(`UPDATE cart_lines`).WillReturnError(boom)
	mock.ExpectRollback()

	_, err := svc.ApplyDiscount(context.Background(), 1, 0.5)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped driver error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCartLineService_CalculateTax(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCartLineService(mock, nil)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM cart_lines WHERE id = \$1`).
		WithArgs(int64(11)).
		WillReturnRows(pgxmock.NewRows(cartLineColumns).
			AddRow(int64(11), int64(1), int64(7), 2, 10.0, 10.0, now, now, now))

	tax, err := svc.CalculateTax(context.Background(), 11, 0.1)
	if err != nil {
		t.Fatalf("CalculateTax returned error: %v", err)
	}
	if tax != 1 {
		t.Fatalf("tax = %v, want 1", tax)
	}
}

func TestCartLineService_CreateWithPriceChecksProduct(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCartLineService(mock, nil)
	price := 10.0

	mock.ExpectQuery(`FROM catalogues WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows(catalogueColumns))

	_, err := svc.Create(context.Background(), CartLineCreate{CartID: 1, ProductID: 99, Quantity: 1, Price: &price})
	de := apperrors.ToDomainError(err)
	if de == nil || de.HTTPStatus != 404 || de.Message != "product not found" {
		t.Fatalf("expected product not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCartLineService_ForeignKeyViolationIsNotFound(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCartLineService(mock, nil)
	now := time.Now().UTC()
	price := 10.0

	mock.ExpectQuery(`FROM catalogues WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(catalogueColumns).
			AddRow(int64(7), "Shuttlecock", "", 12.0, 40, "sports", now, now))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO cart_lines`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "cart_lines_cart_id_fkey"})
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CartLineCreate{CartID: 404, ProductID: 7, Quantity: 1, Price: &price})
	de := apperrors.ToDomainError(err)
	if de == nil || de.HTTPStatus != 404 || de.Code != "NOT_FOUND" {
		t.Fatalf("expected 404, got %v", err)
	}
	if de.Details["constraint"] != "cart_lines_cart_id_fkey" {
		t.Fatalf("unexpected details %v", de.Details)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCartLineService_UpdateHookNotFoundIsNotAbsence(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCartLineService(mock, nil)
	now := time.Now().UTC()
	quantity := 3
	existing := &domain.CartLine{ID: 11, CartID: 1, ProductID: 7, Quantity: 2, Price: 10}

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE cart_lines SET quantity = \$1`).
		WillReturnRows(pgxmock.NewRows(cartLineColumns).
			AddRow(int64(11), int64(1), int64(7), 3, 10.0, 0.0, now, now, now))
	mock.ExpectQuery(`FROM cart_lines WHERE cart_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(cartLineColumns).
			AddRow(int64(11), int64(1), int64(7), 3, 10.0, 0.0, now, now, now))
	mock.ExpectQuery(`UPDATE carts SET total_amount`).
		WillReturnRows(pgxmock.NewRows(cartColumns))
	mock.ExpectRollback()

	line, err := svc.Update(context.Background(), existing, CartLineUpdate{Quantity: &quantity})
	if line != nil {
		t.Fatalf("expected no line, got %+v", line)
	}
	var dbErr *apperrors.DatabaseError
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected DatabaseError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
