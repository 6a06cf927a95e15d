package report

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierDashboard is a read model summarizing one supplier's activity.
// Revenue counts only delivered items, since payouts before delivery are
// not yet owed.
type SupplierDashboard struct {
	ProductCount     int64           `json:"product_count"`
	TotalItemCount   int64           `json:"total_item_count"`
	PendingItemCount int64           `json:"pending_item_count"`
	Revenue          decimal.Decimal `json:"revenue"`
}

// StatusPayout is one row of a payout breakdown grouped by item status
type StatusPayout struct {
	Status      string          `json:"status"`
	ItemCount   int64           `json:"item_count"`
	PayoutTotal decimal.Decimal `json:"payout_total"`
}

// SupplierFinances breaks a supplier's payouts down by item status
type SupplierFinances struct {
	Payouts     []StatusPayout  `json:"payouts"`
	TotalPayout decimal.Decimal `json:"total_payout"`
}

// AdminDashboard is the platform-wide read model for the admin console
type AdminDashboard struct {
	UserCount          int64           `json:"user_count"`
	SupplierCount      int64           `json:"supplier_count"`
	ProductCount       int64           `json:"product_count"`
	OrderCount         int64           `json:"order_count"`
	GrossVolume        decimal.Decimal `json:"gross_volume"`
	PlatformFeeRevenue decimal.Decimal `json:"platform_fee_revenue"`
}

// AdminFinances breaks platform money flow down by item status
type AdminFinances struct {
	GrossVolume        decimal.Decimal `json:"gross_volume"`
	PlatformFeeRevenue decimal.Decimal `json:"platform_fee_revenue"`
	Payouts            []StatusPayout  `json:"payouts"`
}

// Repository defines the aggregate queries behind the dashboards.
// Implementations run SQL aggregations; nothing here mutates state.
type Repository interface {
	SupplierDashboard(ctx context.Context, supplierID uuid.UUID) (*SupplierDashboard, error)
	SupplierFinances(ctx context.Context, supplierID uuid.UUID) (*SupplierFinances, error)
	AdminDashboard(ctx context.Context) (*AdminDashboard, error)
	AdminFinances(ctx context.Context) (*AdminFinances, error)
}
