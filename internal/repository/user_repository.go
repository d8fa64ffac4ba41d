package repository

import (
	"context"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/persistence"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	Create(ctx context.Context, values map[string]any) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}

type userRepository struct {
	db    persistence.TxBeginner
	table *Table[domain.User]
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db persistence.TxBeginner) UserRepository {
	return &userRepository{db: db, table: NewUserTable()}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.table.Get(ctx, r.db, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.table.GetBy(ctx, r.db, squirrel.Eq{"username": username})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.table.GetBy(ctx, r.db, squirrel.Eq{"email": email})
}

func (r *userRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	return r.table.GetBy(ctx, r.db, squirrel.Or{
		squirrel.Eq{"username": username},
		squirrel.Eq{"email": email},
	})
}

func (r *userRepository) Create(ctx context.Context, values map[string]any) (*domain.User, error) {
	var user *domain.User
	err := persistence.InTx(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		user, err = r.table.Insert(ctx, tx, values)
		return err
	})
	return user, err
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return persistence.InTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := r.table.Update(ctx, tx, id, map[string]any{"password_hash": passwordHash})
		return err
	})
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	return persistence.InTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := r.table.Update(ctx, tx, id, map[string]any{"last_login": at})
		return err
	})
}
