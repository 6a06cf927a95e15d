package persistence

import (
	"context"

	"github.com/souqbun/backend/internal/domain/catalog"
	"github.com/souqbun/backend/internal/domain/identity"
	"github.com/souqbun/backend/internal/domain/order"
	"github.com/souqbun/backend/internal/domain/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReportRepository implements report.Repository with SQL aggregates
type GormReportRepository struct {
	db *gorm.DB
}

// Ensure GormReportRepository implements report.Repository
var _ report.Repository = (*GormReportRepository)(nil)

// NewGormReportRepository creates a new GORM report repository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// statusPayoutRow is the scan target for grouped payout queries
type statusPayoutRow struct {
	ItemStatus  string
	ItemCount   int64
	PayoutTotal decimal.Decimal
}

// SupplierDashboard summarizes a supplier's catalog and fulfillment load
func (r *GormReportRepository) SupplierDashboard(ctx context.Context, supplierID uuid.UUID) (*report.SupplierDashboard, error) {
	dashboard := &report.SupplierDashboard{Revenue: decimal.Zero}

	err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("supplier_id = ? AND deleted_at IS NULL", supplierID).
		Count(&dashboard.ProductCount).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&order.OrderItem{}).
		Where("supplier_id = ?", supplierID).
		Count(&dashboard.TotalItemCount).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&order.OrderItem{}).
		Where("supplier_id = ? AND item_status = ?", supplierID, order.ItemStatusPending).
		Count(&dashboard.PendingItemCount).Error
	if err != nil {
		return nil, err
	}

	var revenue decimal.NullDecimal
	err = r.db.WithContext(ctx).Model(&order.OrderItem{}).
		Select("SUM(supplier_payout)").
		Where("supplier_id = ? AND item_status = ?", supplierID, order.ItemStatusDelivered).
		Scan(&revenue).Error
	if err != nil {
		return nil, err
	}
	if revenue.Valid {
		dashboard.Revenue = revenue.Decimal
	}
	return dashboard, nil
}

// SupplierFinances groups a supplier's payouts by item status
func (r *GormReportRepository) SupplierFinances(ctx context.Context, supplierID uuid.UUID) (*report.SupplierFinances, error) {
	var rows []statusPayoutRow
	err := r.db.WithContext(ctx).Model(&order.OrderItem{}).
		Select("item_status, COUNT(*) AS item_count, SUM(supplier_payout) AS payout_total").
		Where("supplier_id = ?", supplierID).
		Group("item_status").
		Order("item_status ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	finances := &report.SupplierFinances{
		Payouts:     make([]report.StatusPayout, 0, len(rows)),
		TotalPayout: decimal.Zero,
	}
	for _, row := range rows {
		finances.Payouts = append(finances.Payouts, report.StatusPayout{
			Status:      row.ItemStatus,
			ItemCount:   row.ItemCount,
			PayoutTotal: row.PayoutTotal,
		})
		finances.TotalPayout = finances.TotalPayout.Add(row.PayoutTotal)
	}
	return finances, nil
}

// AdminDashboard aggregates platform-wide counts and money flow
func (r *GormReportRepository) AdminDashboard(ctx context.Context) (*report.AdminDashboard, error) {
	dashboard := &report.AdminDashboard{
		GrossVolume:        decimal.Zero,
		PlatformFeeRevenue: decimal.Zero,
	}

	counts := []struct {
		model any
		query *gorm.DB
		dest  *int64
	}{
		{dest: &dashboard.UserCount, query: r.db.WithContext(ctx).Model(&identity.User{})},
		{dest: &dashboard.SupplierCount, query: r.db.WithContext(ctx).Model(&identity.SupplierProfile{}).Where("status = ?", identity.SupplierStatusApproved)},
		{dest: &dashboard.ProductCount, query: r.db.WithContext(ctx).Model(&catalog.Product{}).Where("deleted_at IS NULL")},
		{dest: &dashboard.OrderCount, query: r.db.WithContext(ctx).Model(&order.Order{})},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	var sums struct {
		GrossVolume decimal.NullDecimal
		FeeRevenue  decimal.NullDecimal
	}
	err := r.db.WithContext(ctx).Model(&order.Order{}).
		Select("SUM(total_amount) AS gross_volume, SUM(platform_fee) AS fee_revenue").
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}
	if sums.GrossVolume.Valid {
		dashboard.GrossVolume = sums.GrossVolume.Decimal
	}
	if sums.FeeRevenue.Valid {
		dashboard.PlatformFeeRevenue = sums.FeeRevenue.Decimal
	}
	return dashboard, nil
}

// AdminFinances breaks the platform money flow down by item status
func (r *GormReportRepository) AdminFinances(ctx context.Context) (*report.AdminFinances, error) {
	finances := &report.AdminFinances{
		GrossVolume:        decimal.Zero,
		PlatformFeeRevenue: decimal.Zero,
	}

	var sums struct {
		GrossVolume decimal.NullDecimal
		FeeRevenue  decimal.NullDecimal
	}
	err := r.db.WithContext(ctx).Model(&order.Order{}).
		Select("SUM(total_amount) AS gross_volume, SUM(platform_fee) AS fee_revenue").
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}
	if sums.GrossVolume.Valid {
		finances.GrossVolume = sums.GrossVolume.Decimal
	}
	if sums.FeeRevenue.Valid {
		finances.PlatformFeeRevenue = sums.FeeRevenue.Decimal
	}

	var rows []statusPayoutRow
	err = r.db.WithContext(ctx).Model(&order.OrderItem{}).
		Select("item_status, COUNT(*) AS item_count, SUM(supplier_payout) AS payout_total").
		Group("item_status").
		Order("item_status ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	finances.Payouts = make([]report.StatusPayout, 0, len(rows))
	for _, row := range rows {
		finances.Payouts = append(finances.Payouts, report.StatusPayout{
			Status:      row.ItemStatus,
			ItemCount:   row.ItemCount,
			PayoutTotal: row.PayoutTotal,
		})
	}
	return finances, nil
}
