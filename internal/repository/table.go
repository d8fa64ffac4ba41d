package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shop-service/internal/persistence"
)

// Table maps rows of a single postgres table onto E. Every method takes the
// executor explicitly so the same table can be used on the pool or inside a
// transaction.
type Table[E any] struct {
	name    string
	columns []string
	targets func(*E) []any
	builder squirrel.StatementBuilderType
}

// NewTable describes a table. targets must return scan destinations in column order.
func NewTable[E any](name string, columns []string, targets func(*E) []any) *Table[E] {
	return &Table[E]{
		name:    name,
		columns: columns,
		targets: targets,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Name returns the table name.
func (t *Table[E]) Name() string { return t.name }

// ListOptions control pagination and filtering for List.
type ListOptions struct {
	Skip  uint64
	Limit uint64
	Where squirrel.Eq
}

func (t *Table[E]) returning() string {
	return "RETURNING " + strings.Join(t.columns, ", ")
}

func (t *Table[E]) scanOne(row pgx.Row) (*E, error) {
	var entity E
	if err := row.Scan(t.targets(&entity)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// Get loads a row by primary key.
func (t *Table[E]) Get(ctx context.Context, db persistence.DBTX, id int64) (*E, error) {
	return t.GetBy(ctx, db, squirrel.Eq{"id": id})
}

// GetBy loads the first row matching where.
func (t *Table[E]) GetBy(ctx context.Context, db persistence.DBTX, where squirrel.Sqlizer) (*E, error) {
	stmt, args, err := t.builder.Select(t.columns...).
		From(t.name).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s sql: %w", t.name, err)
	}

	entity, err := t.scanOne(db.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("select %s: %w", t.name, err)
	}
	return entity, nil
}

// List returns rows ordered by id.
func (t *Table[E]) List(ctx context.Context, db persistence.DBTX, opts ListOptions) ([]E, error) {
	q := t.builder.Select(t.columns...).From(t.name).OrderBy("id ASC")
	if len(opts.Where) > 0 {
		q = q.Where(opts.Where)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Skip > 0 {
		q = q.Offset(opts.Skip)
	}

	stmt, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list %s sql: %w", t.name, err)
	}

	rows, err := db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", t.name, err)
	}
	defer rows.Close()

	items := make([]E, 0)
	for rows.Next() {
		var entity E
		if err := rows.Scan(t.targets(&entity)...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.name, err)
		}
		items = append(items, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", t.name, err)
	}
	return items, nil
}

// Insert writes a row and returns it as stored.
func (t *Table[E]) Insert(ctx context.Context, db persistence.DBTX, values map[string]any) (*E, error) {
	stmt, args, err := t.builder.Insert(t.name).
		SetMap(values).
		Suffix(t.returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert %s sql: %w", t.name, err)
	}

	entity, err := t.scanOne(db.QueryRow(ctx, stmt, args...))
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", t.name, err)
	}
	return entity, nil
}

// Update applies changes to the row with id and bumps updated_at.
func (t *Table[E]) Update(ctx context.Context, db persistence.DBTX, id int64, changes map[string]any) (*E, error) {
	stmt, args, err := t.builder.Update(t.name).
		SetMap(changes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix(t.returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update %s sql: %w", t.name, err)
	}

	entity, err := t.scanOne(db.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update %s: %w", t.name, err)
	}
	return entity, nil
}

// Delete removes the row with id and returns its last state.
func (t *Table[E]) Delete(ctx context.Context, db persistence.DBTX, id int64) (*E, error) {
	stmt, args, err := t.builder.Delete(t.name).
		Where(squirrel.Eq{"id": id}).
		Suffix(t.returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete %s sql: %w", t.name, err)
	}

	entity, err := t.scanOne(db.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("delete %s: %w", t.name, err)
	}
	return entity, nil
}
