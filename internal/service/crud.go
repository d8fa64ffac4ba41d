package service

import (
	"context"
	"errors"
	"net/http"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/persistence"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// CreateInput is a validated payload for a new row.
type CreateInput interface {
	ColumnValues() map[string]any
}

// UpdateInput is a partial payload; only fields that were set are returned.
type UpdateInput interface {
	ColumnChanges() map[string]any
}

// Resource is the CRUD surface shared by every domain resource. Lookups of
// missing rows return (nil, nil).
type Resource[E any, C CreateInput, U UpdateInput] interface {
	Get(ctx context.Context, id int64) (*E, error)
	GetMulti(ctx context.Context, skip, limit int) ([]E, error)
	Create(ctx context.Context, in C) (*E, error)
	Update(ctx context.Context, existing *E, in U) (*E, error)
	Remove(ctx context.Context, id int64) (*E, error)
}

// WriteHook runs inside the write transaction after the row was stored.
type WriteHook[E any] func(ctx context.Context, tx pgx.Tx, entity *E) error

// CRUD implements Resource over a repository.Table. Every write runs in its
// own transaction.
type CRUD[E any, C CreateInput, U UpdateInput] struct {
	db         persistence.TxBeginner
	table      *repository.Table[E]
	resource   string
	idOf       func(*E) int64
	afterWrite WriteHook[E]
	logger     *zap.Logger
}

// NewCRUD builds a generic service. idOf extracts the primary key of an entity.
func NewCRUD[E any, C CreateInput, U UpdateInput](db persistence.TxBeginner, table *repository.Table[E], resource string, idOf func(*E) int64, logger *zap.Logger) *CRUD[E, C, U] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CRUD[E, C, U]{
		db:       db,
		table:    table,
		resource: resource,
		idOf:     idOf,
		logger:   logger.With(zap.String("resource", resource)),
	}
}

// WithAfterWrite installs hook and returns the service.
func (s *CRUD[E, C, U]) WithAfterWrite(hook WriteHook[E]) *CRUD[E, C, U] {
	s.afterWrite = hook
	return s
}

func (s *CRUD[E, C, U]) dbError(op string, err error) error {
	if constraint, ok := repository.ForeignKeyViolation(err); ok {
		s.logger.Info("write references a missing row", zap.String("op", op), zap.String("constraint", constraint))
		return apperrors.NewDomainError("NOT_FOUND", "referenced resource not found", http.StatusNotFound,
			map[string]any{"constraint": constraint})
	}
	s.logger.Error("store operation failed", zap.String("op", op), zap.Error(err))
	return apperrors.NewDatabaseError("failed to "+op+" "+s.resource, err)
}

// Get returns the row with id.
func (s *CRUD[E, C, U]) Get(ctx context.Context, id int64) (*E, error) {
	entity, err := s.table.Get(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, s.dbError("get", err)
	}
	return entity, nil
}

// GetMulti returns a page of rows ordered by id.
func (s *CRUD[E, C, U]) GetMulti(ctx context.Context, skip, limit int) ([]E, error) {
	return s.list(ctx, nil, skip, limit)
}

// ListWhere returns a page of rows matching where.
func (s *CRUD[E, C, U]) ListWhere(ctx context.Context, where squirrel.Eq, skip, limit int) ([]E, error) {
	return s.list(ctx, where, skip, limit)
}

func (s *CRUD[E, C, U]) list(ctx context.Context, where squirrel.Eq, skip, limit int) ([]E, error) {
	offset, size := Page(skip, limit)
	items, err := s.table.List(ctx, s.db, repository.ListOptions{Skip: offset, Limit: size, Where: where})
	if err != nil {
		return nil, s.dbError("list", err)
	}
	return items, nil
}

// Create stores in and returns the inserted row.
func (s *CRUD[E, C, U]) Create(ctx context.Context, in C) (*E, error) {
	var created *E
	err := persistence.InTx(ctx, s.db, func(tx pgx.Tx) error {
		entity, err := s.table.Insert(ctx, tx, in.ColumnValues())
		if err != nil {
			return err
		}
		if err := s.runHook(ctx, tx, entity); err != nil {
			return err
		}
		created = entity
		return nil
	})
	if err != nil {
		return nil, s.dbError("create", err)
	}
	s.logger.Debug("created", zap.Int64("id", s.idOf(created)))
	return created, nil
}

// Update applies the set fields of in to existing.
func (s *CRUD[E, C, U]) Update(ctx context.Context, existing *E, in U) (*E, error) {
	if existing == nil {
		return nil, nil
	}
	id := s.idOf(existing)

	var (
		updated *E
		missing bool
	)
	err := persistence.InTx(ctx, s.db, func(tx pgx.Tx) error {
		entity, err := s.table.Update(ctx, tx, id, in.ColumnChanges())
		if err != nil {
			missing = errors.Is(err, repository.ErrNotFound)
			return err
		}
		if err := s.runHook(ctx, tx, entity); err != nil {
			return err
		}
		updated = entity
		return nil
	})
	if err != nil {
		if missing {
			return nil, nil
		}
		return nil, s.dbError("update", err)
	}
	return updated, nil
}

// Remove deletes the row with id and returns it. Removing a missing row is a no-op.
func (s *CRUD[E, C, U]) Remove(ctx context.Context, id int64) (*E, error) {
	var (
		removed *E
		missing bool
	)
	err := persistence.InTx(ctx, s.db, func(tx pgx.Tx) error {
		entity, err := s.table.Delete(ctx, tx, id)
		if err != nil {
			missing = errors.Is(err, repository.ErrNotFound)
			return err
		}
		if err := s.runHook(ctx, tx, entity); err != nil {
			return err
		}
		removed = entity
		return nil
	})
	if err != nil {
		if missing {
			return nil, nil
		}
		return nil, s.dbError("remove", err)
	}
	return removed, nil
}

func (s *CRUD[E, C, U]) runHook(ctx context.Context, tx pgx.Tx, entity *E) error {
	if s.afterWrite == nil {
		return nil
	}
	return s.afterWrite(ctx, tx, entity)
}

// Page clamps pagination input: skip is at least 0 and limit falls in [1, 1000]
// with 100 used when limit is not positive.
func Page(skip, limit int) (uint64, uint64) {
	if skip < 0 {
		skip = 0
	}
	switch {
	case limit <= 0:
		limit = defaultLimit
	case limit > maxLimit:
		limit = maxLimit
	}
	return uint64(skip), uint64(limit)
}
