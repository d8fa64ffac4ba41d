package service

import (
	"context"

	squirrel "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/persistence"
	"github.com/spec-kit/shop-service/internal/repository"
)

// AddressCreate holds a new address book entry. UserID is set by the service.
type AddressCreate struct {
	UserID       int64
	Title        domain.AddressTitle
	FirstName    string
	LastName     string
	PhoneNumber  string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
}

func (in AddressCreate) ColumnValues() map[string]any {
	return map[string]any{
		"user_id":       in.UserID,
		"title":         string(in.Title),
		"first_name":    in.FirstName,
		"last_name":     in.LastName,
		"phone_number":  in.PhoneNumber,
		"address_line1": in.AddressLine1,
		"address_line2": in.AddressLine2,
		"city":          in.City,
		"state":         in.State,
		"postal_code":   in.PostalCode,
		"country":       in.Country,
	}
}

// AddressUpdate carries the fields to change.
type AddressUpdate struct {
	Title        *domain.AddressTitle
	FirstName    *string
	LastName     *string
	PhoneNumber  *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	State        *string
	PostalCode   *string
	Country      *string
}

func (in AddressUpdate) ColumnChanges() map[string]any {
	changes := map[string]any{}
	if in.Title != nil {
		changes["title"] = string(*in.Title)
	}
	setString(changes, "first_name", in.FirstName)
	setString(changes, "last_name", in.LastName)
	setString(changes, "phone_number", in.PhoneNumber)
	setString(changes, "address_line1", in.AddressLine1)
	setString(changes, "address_line2", in.AddressLine2)
	setString(changes, "city", in.City)
	setString(changes, "state", in.State)
	setString(changes, "postal_code", in.PostalCode)
	setString(changes, "country", in.Country)
	return changes
}

func setString(changes map[string]any, column string, v *string) {
	if v != nil {
		changes[column] = *v
	}
}

// AddressService manages address book entries.
type AddressService struct {
	*CRUD[domain.Address, AddressCreate, AddressUpdate]
}

// NewAddressService builds the service.
func NewAddressService(db persistence.TxBeginner, logger *zap.Logger) *AddressService {
	crud := NewCRUD[domain.Address, AddressCreate, AddressUpdate](db, repository.NewAddressTable(), "address",
		func(a *domain.Address) int64 { return a.ID }, logger)
	return &AddressService{CRUD: crud}
}

// CreateForUser stores in on behalf of userID.
func (s *AddressService) CreateForUser(ctx context.Context, userID int64, in AddressCreate) (*domain.Address, error) {
	in.UserID = userID
	return s.Create(ctx, in)
}

// ListForUser pages through the addresses owned by userID.
func (s *AddressService) ListForUser(ctx context.Context, userID int64, skip, limit int) ([]domain.Address, error) {
	return s.ListWhere(ctx, squirrel.Eq{"user_id": userID}, skip, limit)
}
