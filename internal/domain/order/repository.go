package order

import (
	"context"

	"github.com/souqbun/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockDecrement is one inventory deduction applied during order commit
type StockDecrement struct {
	ProductID uuid.UUID
	Quantity  int
}

// OrderRepository defines persistence operations for orders and their
// line items.
type OrderRepository interface {
	// CreateWithItems commits an assembled order atomically: stock is
	// re-validated inside the transaction, the order and item rows are
	// inserted, and every decrement is applied as a relative update.
	// Any failure rolls the whole transaction back.
	CreateWithItems(ctx context.Context, o *Order, decrements []StockDecrement) error

	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, int64, error)

	FindItemByID(ctx context.Context, itemID uuid.UUID) (*OrderItem, error)
	FindItemsBySupplier(ctx context.Context, supplierID uuid.UUID) ([]OrderItem, error)
	SaveItem(ctx context.Context, item *OrderItem) error
}
