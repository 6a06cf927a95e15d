package order

import (
	"strings"
	"time"

	"github.com/souqbun/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemStatus represents the fulfillment state of a single order line.
// Each line is fulfilled independently by its supplier, so an order can
// be partially shipped.
type ItemStatus string

const (
	ItemStatusPending    ItemStatus = "PENDING"
	ItemStatusProcessing ItemStatus = "PROCESSING"
	ItemStatusShipped    ItemStatus = "SHIPPED"
	ItemStatusDelivered  ItemStatus = "DELIVERED"
)

// IsValid checks if the status is a valid ItemStatus
func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusPending, ItemStatusProcessing, ItemStatusShipped, ItemStatusDelivered:
		return true
	}
	return false
}

// String returns the string representation of ItemStatus
func (s ItemStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can advance to the target.
// Fulfillment only moves forward, one step at a time.
func (s ItemStatus) CanTransitionTo(target ItemStatus) bool {
	switch s {
	case ItemStatusPending:
		return target == ItemStatusProcessing
	case ItemStatusProcessing:
		return target == ItemStatusShipped
	case ItemStatusShipped:
		return target == ItemStatusDelivered
	}
	return false
}

// OrderItem is one product line within an order. Product name and
// supplier are captured at order time so later catalog edits do not
// rewrite order history.
type OrderItem struct {
	shared.BaseEntity
	OrderID        uuid.UUID
	ProductID      uuid.UUID
	SupplierID     uuid.UUID
	ProductNameEn  string
	ProductNameAr  string
	Quantity       int
	UnitPrice      decimal.Decimal
	Subtotal       decimal.Decimal
	ShippingCost   decimal.Decimal
	SupplierPayout decimal.Decimal
	ItemStatus     ItemStatus
	TrackingNumber *string
}

// NewOrderItem creates a pending line item. The supplier payout is the
// line subtotal minus the platform's cut (feeRate), rounded to 2dp.
func NewOrderItem(productID, supplierID uuid.UUID, nameEn, nameAr string, quantity int, unitPrice, shippingCost, feeRate decimal.Decimal) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID is required")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}
	if shippingCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_SHIPPING_COST", "Shipping cost cannot be negative")
	}

	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	payout := subtotal.Mul(decimal.NewFromInt(1).Sub(feeRate)).Round(2)

	return &OrderItem{
		BaseEntity:     shared.NewBaseEntity(),
		ProductID:      productID,
		SupplierID:     supplierID,
		ProductNameEn:  nameEn,
		ProductNameAr:  nameAr,
		Quantity:       quantity,
		UnitPrice:      unitPrice,
		Subtotal:       subtotal,
		ShippingCost:   shippingCost,
		SupplierPayout: payout,
		ItemStatus:     ItemStatusPending,
	}, nil
}

// AdvanceStatus moves fulfillment forward. A tracking number may be
// attached when the item ships.
func (i *OrderItem) AdvanceStatus(target ItemStatus, trackingNumber string) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown item status: "+target.String())
	}
	if !i.ItemStatus.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot move item from "+i.ItemStatus.String()+" to "+target.String())
	}

	i.ItemStatus = target
	if target == ItemStatusShipped {
		if trackingNumber = strings.TrimSpace(trackingNumber); trackingNumber != "" {
			i.TrackingNumber = &trackingNumber
		}
	}
	i.UpdatedAt = time.Now()
	return nil
}

// IsFulfilledBy reports whether the item belongs to the given supplier
func (i *OrderItem) IsFulfilledBy(supplierID uuid.UUID) bool {
	return i.SupplierID == supplierID
}
