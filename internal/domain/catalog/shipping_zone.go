package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShippingZone is a supplier-configured delivery option for a product.
// Checkout charges the cost of the product's first configured zone; no
// matching against the buyer's address takes place.
type ShippingZone struct {
	ID            uuid.UUID
	ProductID     uuid.UUID
	ZoneNameEn    string
	ZoneNameAr    string
	Cost          decimal.Decimal
	EstimatedDays int
	CODAvailable  bool
	CreatedAt     time.Time
}

// PriceTier is a quantity bracket with its own per-unit price.
// MaxQuantity nil means the bracket is unbounded above.
type PriceTier struct {
	ID           uuid.UUID
	ProductID    uuid.UUID
	MinQuantity  int
	MaxQuantity  *int
	PricePerUnit decimal.Decimal
	CreatedAt    time.Time
}

// Matches reports whether the quantity falls inside this tier's range
func (t PriceTier) Matches(quantity int) bool {
	if quantity < t.MinQuantity {
		return false
	}
	return t.MaxQuantity == nil || quantity <= *t.MaxQuantity
}
