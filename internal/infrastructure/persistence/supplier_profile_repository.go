package persistence

import (
	"context"
	"errors"

	"github.com/souqbun/backend/internal/domain/identity"
	"github.com/souqbun/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSupplierProfileRepository implements identity.SupplierProfileRepository using GORM
type GormSupplierProfileRepository struct {
	db *gorm.DB
}

// Ensure GormSupplierProfileRepository implements identity.SupplierProfileRepository
var _ identity.SupplierProfileRepository = (*GormSupplierProfileRepository)(nil)

// NewGormSupplierProfileRepository creates a new GORM supplier profile repository
func NewGormSupplierProfileRepository(db *gorm.DB) *GormSupplierProfileRepository {
	return &GormSupplierProfileRepository{db: db}
}

// FindByID retrieves a supplier profile by ID
func (r *GormSupplierProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.SupplierProfile, error) {
	var profile identity.SupplierProfile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// FindByUserID retrieves the profile belonging to a user
func (r *GormSupplierProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.SupplierProfile, error) {
	var profile identity.SupplierProfile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// FindAll retrieves supplier profiles matching the filter with a total count.
// Supported filter key: "status".
func (r *GormSupplierProfileRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.SupplierProfile, int64, error) {
	query := r.db.WithContext(ctx).Model(&identity.SupplierProfile{})

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter)

	var profiles []identity.SupplierProfile
	if err := query.Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

// Save persists a supplier profile (insert or update)
func (r *GormSupplierProfileRepository) Save(ctx context.Context, profile *identity.SupplierProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// applyPagination applies ordering and paging from a shared.Filter
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}
	orderDir := filter.OrderDir
	if orderDir != "asc" {
		orderDir = "desc"
	}
	query = query.Order(orderBy + " " + orderDir)

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	return query
}
