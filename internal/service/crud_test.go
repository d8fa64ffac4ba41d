package service

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/shop-service/internal/domain"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

var catalogueColumns = []string{"id", "name", "description", "price", "stock", "category", "created_at", "updated_at"}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestCRUD_CreateCommits(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCatalogueService(mock, zaptest.NewLogger(t))
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO catalogues \(category,description,name,price,stock\)`).
		WithArgs("sports", "", "Racket", 89.5, 3).
		WillReturnRows(pgxmock.NewRows(catalogueColumns).
			AddRow(int64(1), "Racket", "", 89.5, 3, "sports", now, now))
	mock.ExpectCommit()

	got, err := svc.Create(context.Background(), CatalogueCreate{Name: "Racket", Price: 89.5, Stock: 3, Category: "sports"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if got.ID != 1 {
		t.Fatalf("unexpected id %d", got.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCRUD_CreateFailureRollsBack(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCatalogueService(mock, zaptest.NewLogger(t))
	boom := errors.New("check constraint violated")

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO catalogues`).WillReturnError(boom)
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CatalogueCreate{Name: "Broken", Price: -1})
	var dbErr *apperrors.DatabaseError
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected DatabaseError, got %v", err)
	}
	if dbErr.Message != "failed to create catalogue" || !errors.Is(err, boom) {
		t.Fatalf("unexpected error %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCRUD_GetMissingReturnsNil(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCatalogueService(mock, nil)

	mock.ExpectQuery(`FROM catalogues WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(catalogueColumns))

	got, err := svc.Get(context.Background(), 5)
	if err != nil || got != nil {
		t.Fatalf("Get = %v, %v; want nil, nil", got, err)
	}
}

func TestCRUD_UpdateOnlyChangesSetFields(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCatalogueService(mock, nil)
	now := time.Now().UTC()

	price := 79.0
	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE catalogues SET price = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(79.0, int64(1)).
		WillReturnRows(pgxmock.NewRows(catalogueColumns).
			AddRow(int64(1), "Racket", "", 79.0, 3, "sports", now, now))
	mock.ExpectCommit()

	current := &domain.Catalogue{ID: 1, Name: "Racket", Price: 89.5, Stock: 3, Category: "sports"}
	got, err := svc.Update(context.Background(), current, CatalogueUpdate{Price: &price})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.Price != 79 || got.Name != "Racket" {
		t.Fatalf("unexpected catalogue %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCRUD_RemoveMissingIsIdempotent(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCatalogueService(mock, nil)

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectQuery(`DELETE FROM catalogues WHERE id = \$1`).
			WithArgs(int64(42)).
			WillReturnRows(pgxmock.NewRows(catalogueColumns))
		mock.ExpectRollback()
	}

	for i := 0; i < 2; i++ {
		got, err := svc.Remove(context.Background(), 42)
		if err != nil || got != nil {
			t.Fatalf("Remove #%d = %v, %v; want nil, nil", i+1, got, err)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCRUD_GetMultiClampsLimit(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCatalogueService(mock, nil)

	mock.ExpectQuery(`FROM catalogues ORDER BY id ASC LIMIT 1000`).
		WillReturnRows(pgxmock.NewRows(catalogueColumns))

	items, err := svc.GetMulti(context.Background(), -3, 5000)
	if err != nil {
		t.Fatalf("GetMulti returned error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPage(t *testing.T) {
	cases := []struct {
		skip, limit         int
		wantSkip, wantLimit uint64
	}{
		{0, 0, 0, 100},
		{-5, 10, 0, 10},
		{20, 1, 20, 1},
		{0, 1001, 0, 1000},
		{3, -1, 3, 100},
	}
	for _, tc := range cases {
		skip, limit := Page(tc.skip, tc.limit)
		if skip != tc.wantSkip || limit != tc.wantLimit {
			t.Fatalf("Page(%d, %d) = %d, %d", tc.skip, tc.limit, skip, limit)
		}
	}
}
