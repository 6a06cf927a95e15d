package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/souqbun/backend/internal/domain/order"
	"github.com/souqbun/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements order.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// Ensure GormOrderRepository implements order.OrderRepository
var _ order.OrderRepository = (*GormOrderRepository)(nil)

// NewGormOrderRepository creates a new GORM order repository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// CreateWithItems commits the order atomically. Stock is re-checked
// inside the transaction and decremented with a relative update, so two
// concurrent checkouts for the last units cannot both succeed. Any
// failed check rolls everything back.
func (r *GormOrderRepository) CreateWithItems(ctx context.Context, o *order.Order, decrements []order.StockDecrement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dec := range decrements {
			result := tx.Table("products").
				Where("id = ? AND deleted_at IS NULL AND stock_quantity >= ?", dec.ProductID, dec.Quantity).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", dec.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("product %s: %w", dec.ProductID, shared.ErrInsufficientStock)
			}
		}

		if err := tx.Omit(clause.Associations).Create(o).Error; err != nil {
			return err
		}
		if len(o.Items) > 0 {
			if err := tx.Create(&o.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID retrieves an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByBuyer retrieves a buyer's orders, newest first
func (r *GormOrderRepository) FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]order.Order, error) {
	var orders []order.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// FindAll retrieves orders matching the filter with a total count.
// Supported filter keys: "status", "payment_status".
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&order.Order{})

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if paymentStatus, ok := filter.Filters["payment_status"]; ok {
		query = query.Where("payment_status = ?", paymentStatus)
	}
	if search := filter.Search; search != "" {
		query = query.Where("order_number LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter)

	var orders []order.Order
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// FindItemByID retrieves a single order item
func (r *GormOrderRepository) FindItemByID(ctx context.Context, itemID uuid.UUID) (*order.OrderItem, error) {
	var item order.OrderItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindItemsBySupplier retrieves a supplier's line items across all
// orders, newest first
func (r *GormOrderRepository) FindItemsBySupplier(ctx context.Context, supplierID uuid.UUID) ([]order.OrderItem, error) {
	var items []order.OrderItem
	err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// SaveItem persists an order item
func (r *GormOrderRepository) SaveItem(ctx context.Context, item *order.OrderItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}
