// Package report exposes the dashboard and finance read models backed
// by SQL aggregation.
package report

import (
	"context"

	"github.com/souqbun/backend/internal/domain/report"
	"github.com/google/uuid"
)

// ReportService serves the supplier and admin dashboards
type ReportService struct {
	reportRepo report.Repository
}

// NewReportService creates a new report service
func NewReportService(reportRepo report.Repository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// SupplierDashboard summarizes one supplier's catalog and orders
func (s *ReportService) SupplierDashboard(ctx context.Context, supplierID uuid.UUID) (*report.SupplierDashboard, error) {
	return s.reportRepo.SupplierDashboard(ctx, supplierID)
}

// SupplierFinances breaks one supplier's payouts down by item status
func (s *ReportService) SupplierFinances(ctx context.Context, supplierID uuid.UUID) (*report.SupplierFinances, error) {
	return s.reportRepo.SupplierFinances(ctx, supplierID)
}

// AdminDashboard summarizes platform-wide activity
func (s *ReportService) AdminDashboard(ctx context.Context) (*report.AdminDashboard, error) {
	return s.reportRepo.AdminDashboard(ctx)
}

// AdminFinances summarizes platform-wide money flow
func (s *ReportService) AdminFinances(ctx context.Context) (*report.AdminFinances, error) {
	return s.reportRepo.AdminFinances(ctx)
}
