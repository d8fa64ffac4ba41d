package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/persistence"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// OfferCreate describes a new offer.
type OfferCreate struct {
	Name               string
	DiscountPercentage float64
	StartDate          time.Time
	EndDate            time.Time
	IsActive           bool
}

func (in OfferCreate) ColumnValues() map[string]any {
	return map[string]any{
		"name":                in.Name,
		"discount_percentage": in.DiscountPercentage,
		"start_date":          in.StartDate,
		"end_date":            in.EndDate,
		"is_active":           in.IsActive,
	}
}

// OfferUpdate carries the offer fields to change.
type OfferUpdate struct {
	Name               *string
	DiscountPercentage *float64
	StartDate          *time.Time
	EndDate            *time.Time
	IsActive           *bool
}

func (in OfferUpdate) ColumnChanges() map[string]any {
	changes := map[string]any{}
	setString(changes, "name", in.Name)
	if in.DiscountPercentage != nil {
		changes["discount_percentage"] = *in.DiscountPercentage
	}
	if in.StartDate != nil {
		changes["start_date"] = *in.StartDate
	}
	if in.EndDate != nil {
		changes["end_date"] = *in.EndDate
	}
	if in.IsActive != nil {
		changes["is_active"] = *in.IsActive
	}
	return changes
}

// OfferService manages percentage offers.
type OfferService struct {
	*CRUD[domain.Offer, OfferCreate, OfferUpdate]
}

// NewOfferService builds the service.
func NewOfferService(db persistence.TxBeginner, logger *zap.Logger) *OfferService {
	crud := NewCRUD[domain.Offer, OfferCreate, OfferUpdate](db, repository.NewOfferTable(), "offer",
		func(o *domain.Offer) int64 { return o.ID }, logger)
	return &OfferService{CRUD: crud}
}

// Create rejects inverted windows before storing the offer.
func (s *OfferService) Create(ctx context.Context, in OfferCreate) (*domain.Offer, error) {
	if in.EndDate.Before(in.StartDate) {
		return nil, apperrors.NewValidationError("end_date must not be before start_date", nil)
	}
	return s.CRUD.Create(ctx, in)
}

// Update validates the resulting window against the stored offer.
func (s *OfferService) Update(ctx context.Context, existing *domain.Offer, in OfferUpdate) (*domain.Offer, error) {
	if existing == nil {
		return nil, nil
	}
	start, end := existing.StartDate, existing.EndDate
	if in.StartDate != nil {
		start = *in.StartDate
	}
	if in.EndDate != nil {
		end = *in.EndDate
	}
	if end.Before(start) {
		return nil, apperrors.NewValidationError("end_date must not be before start_date", nil)
	}
	return s.CRUD.Update(ctx, existing, in)
}

// VoucherCreate describes a new voucher. Code is normalized before storing.
type VoucherCreate struct {
	Code           string
	DiscountAmount float64
	ExpiryDate     time.Time
}

func (in VoucherCreate) ColumnValues() map[string]any {
	return map[string]any{
		"code":            domain.NormalizeVoucherCode(in.Code),
		"discount_amount": in.DiscountAmount,
		"expiry_date":     in.ExpiryDate,
		"is_used":         false,
	}
}

// VoucherUpdate carries the voucher fields to change.
type VoucherUpdate struct {
	DiscountAmount *float64
	ExpiryDate     *time.Time
	IsUsed         *bool
}

func (in VoucherUpdate) ColumnChanges() map[string]any {
	changes := map[string]any{}
	if in.DiscountAmount != nil {
		changes["discount_amount"] = *in.DiscountAmount
	}
	if in.ExpiryDate != nil {
		changes["expiry_date"] = *in.ExpiryDate
	}
	if in.IsUsed != nil {
		changes["is_used"] = *in.IsUsed
	}
	return changes
}

// VoucherService manages single use vouchers.
type VoucherService struct {
	*CRUD[domain.Voucher, VoucherCreate, VoucherUpdate]
	db    persistence.TxBeginner
	table *repository.Table[domain.Voucher]
}

// NewVoucherService builds the service.
func NewVoucherService(db persistence.TxBeginner, logger *zap.Logger) *VoucherService {
	table := repository.NewVoucherTable()
	crud := NewCRUD[domain.Voucher, VoucherCreate, VoucherUpdate](db, table, "voucher",
		func(v *domain.Voucher) int64 { return v.ID }, logger)
	return &VoucherService{CRUD: crud, db: db, table: table}
}

// Create stores the voucher; a taken code is a client error.
func (s *VoucherService) Create(ctx context.Context, in VoucherCreate) (*domain.Voucher, error) {
	if domain.NormalizeVoucherCode(in.Code) == "" {
		return nil, apperrors.NewValidationError("code required", nil)
	}
	voucher, err := s.CRUD.Create(ctx, in)
	if err != nil && repository.IsUniqueViolation(err) {
		return nil, apperrors.NewDomainError("DUPLICATE", "Voucher code already exists", http.StatusBadRequest, nil)
	}
	return voucher, err
}

// GetByCode looks a voucher up by its normalized code. Missing codes return (nil, nil).
func (s *VoucherService) GetByCode(ctx context.Context, code string) (*domain.Voucher, error) {
	voucher, err := s.table.GetBy(ctx, s.db, squirrel.Eq{"code": domain.NormalizeVoucherCode(code)})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewDatabaseError("failed to get voucher", err)
	}
	return voucher, nil
}
