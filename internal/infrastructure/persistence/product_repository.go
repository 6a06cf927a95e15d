package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/souqbun/backend/internal/domain/catalog"
	"github.com/souqbun/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// Ensure GormProductRepository implements catalog.ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)

// NewGormProductRepository creates a new GORM product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// withChildren preloads the owned child collections used for hydration
func withChildren(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Attributes").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("ShippingZones", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("PriceTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("min_quantity ASC")
		})
}

// FindByID retrieves a product with its children. Soft-deleted products
// are not returned.
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	err := withChildren(r.db.WithContext(ctx)).
		First(&product, "id = ? AND deleted_at IS NULL", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// List returns active products matching the filter plus the total count
// over the unpaged set. Attribute conditions are OR'd together into one
// candidate set which the remaining conditions intersect; an attribute
// filter matching nothing yields an empty result, not an error.
func (r *GormProductRepository) List(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("deleted_at IS NULL").
		Where("is_active = ?", true)

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("(LOWER(name_en) LIKE ? OR LOWER(name_ar) LIKE ?)", pattern, pattern)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.PriceMin != nil {
		query = query.Where("base_price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		query = query.Where("base_price <= ?", *filter.PriceMax)
	}
	if filter.InStockOnly {
		query = query.Where("stock_quantity > 0")
	}

	if filter.HasAttributeFilters() {
		var conds []string
		var args []any
		for key, values := range filter.Attributes {
			if len(values) == 0 {
				continue
			}
			conds = append(conds, "(key = ? AND value IN ?)")
			args = append(args, key.String(), values)
		}
		sub := r.db.Model(&catalog.ProductAttribute{}).
			Select("product_id").
			Where(strings.Join(conds, " OR "), args...)
		query = query.Where("id IN (?)", sub)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case catalog.SortPriceAsc:
		query = query.Order("base_price ASC")
	case catalog.SortPriceDesc:
		query = query.Order("base_price DESC")
	default:
		query = query.Order("created_at DESC")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	if filter.Limit > 0 {
		query = query.Offset((page - 1) * filter.Limit).Limit(filter.Limit)
	}

	var products []catalog.Product
	if err := withChildren(query).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListBySupplier returns all non-deleted products owned by a supplier,
// including inactive ones
func (r *GormProductRepository) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	err := withChildren(r.db.WithContext(ctx)).
		Where("supplier_id = ? AND deleted_at IS NULL", supplierID).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

// Create inserts a product row and its children in one transaction
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return err
		}
		return createChildren(tx, product)
	})
}

// Update persists the product row and replaces its attribute, zone and
// tier children wholesale in one transaction
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(product).Error; err != nil {
			return err
		}

		for _, child := range []any{
			&catalog.ProductAttribute{},
			&catalog.ShippingZone{},
			&catalog.PriceTier{},
		} {
			if err := tx.Where("product_id = ?", product.ID).Delete(child).Error; err != nil {
				return err
			}
		}

		return createChildren(tx, product)
	})
}

func createChildren(tx *gorm.DB, product *catalog.Product) error {
	if len(product.Attributes) > 0 {
		if err := tx.Create(&product.Attributes).Error; err != nil {
			return err
		}
	}
	if len(product.ShippingZones) > 0 {
		if err := tx.Create(&product.ShippingZones).Error; err != nil {
			return err
		}
	}
	if len(product.PriceTiers) > 0 {
		if err := tx.Create(&product.PriceTiers).Error; err != nil {
			return err
		}
	}
	return nil
}

// AddImage appends an image record to a product
func (r *GormProductRepository) AddImage(ctx context.Context, image *catalog.ProductImage) error {
	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(image).Error
}

// SoftDelete marks a product deleted and hides it from listings.
// Order history keeps referencing the row.
func (r *GormProductRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{
			"deleted_at": time.Now(),
			"is_active":  false,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
