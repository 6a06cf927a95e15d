package handler

import (
	identityapp "github.com/souqbun/backend/internal/application/identity"
	reportapp "github.com/souqbun/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// SupplierHandler handles supplier onboarding and the supplier's own
// dashboard and finances
type SupplierHandler struct {
	BaseHandler
	supplierService *identityapp.SupplierService
	reportService   *reportapp.ReportService
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(supplierService *identityapp.SupplierService, reportService *reportapp.ReportService) *SupplierHandler {
	return &SupplierHandler{
		supplierService: supplierService,
		reportService:   reportService,
	}
}

// Apply handles POST /api/supplier/apply
func (h *SupplierHandler) Apply(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.ApplySupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profile, err := h.supplierService.Apply(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, profile)
}

// Profile handles GET /api/supplier/profile
func (h *SupplierHandler) Profile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	profile, err := h.supplierService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// Dashboard handles GET /api/supplier/dashboard
func (h *SupplierHandler) Dashboard(c *gin.Context) {
	supplierID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	dashboard, err := h.reportService.SupplierDashboard(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// Finances handles GET /api/supplier/finances
func (h *SupplierHandler) Finances(c *gin.Context) {
	supplierID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	finances, err := h.reportService.SupplierFinances(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, finances)
}
