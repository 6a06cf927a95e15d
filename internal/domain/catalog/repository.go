package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sort orders accepted by product listing
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// ProductFilter carries the buyer-facing listing filters.
// Attribute values are OR'd together into one candidate set which is
// then intersected with the remaining conditions.
type ProductFilter struct {
	Search      string
	CategoryID  *uuid.UUID
	Attributes  map[AttributeKey][]string
	PriceMin    *decimal.Decimal
	PriceMax    *decimal.Decimal
	InStockOnly bool
	SupplierID  *uuid.UUID
	Sort        string
	Page        int
	Limit       int
}

// HasAttributeFilters reports whether any attribute filter is set
func (f ProductFilter) HasAttributeFilters() bool {
	for _, values := range f.Attributes {
		if len(values) > 0 {
			return true
		}
	}
	return false
}

// ProductRepository defines persistence operations for products.
// Reads return products hydrated with attributes, images, zones and
// tiers unless noted otherwise.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// List returns active, non-deleted products matching the filter
	// plus the total count over the unpaged set.
	List(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	// ListBySupplier returns all non-deleted products owned by a
	// supplier, including inactive ones.
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]Product, error)
	Create(ctx context.Context, product *Product) error
	// Update persists the product row and replaces its attribute,
	// zone and tier children wholesale in one transaction.
	Update(ctx context.Context, product *Product) error
	AddImage(ctx context.Context, image *ProductImage) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	Save(ctx context.Context, category *Category) error
}
