package handler

import (
	identityapp "github.com/souqbun/backend/internal/application/identity"
	reportapp "github.com/souqbun/backend/internal/application/report"
	"github.com/souqbun/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles supplier moderation and the platform dashboards
type AdminHandler struct {
	BaseHandler
	supplierService *identityapp.SupplierService
	reportService   *reportapp.ReportService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(supplierService *identityapp.SupplierService, reportService *reportapp.ReportService) *AdminHandler {
	return &AdminHandler{
		supplierService: supplierService,
		reportService:   reportService,
	}
}

// ListSuppliers handles GET /api/admin/suppliers
func (h *AdminHandler) ListSuppliers(c *gin.Context) {
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profiles, total, err := h.supplierService.List(c.Request.Context(),
		c.Query("status"), page.Page, page.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, profiles, total, page.Page, page.PageSize)
}

// ApproveSupplier handles PUT /api/admin/suppliers/:id/approve
func (h *AdminHandler) ApproveSupplier(c *gin.Context) {
	profileID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	profile, err := h.supplierService.Approve(c.Request.Context(), profileID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// RejectSupplier handles PUT /api/admin/suppliers/:id/reject
func (h *AdminHandler) RejectSupplier(c *gin.Context) {
	profileID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req identityapp.RejectSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profile, err := h.supplierService.Reject(c.Request.Context(), profileID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// Dashboard handles GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.AdminDashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// Finances handles GET /api/admin/finances
func (h *AdminHandler) Finances(c *gin.Context) {
	finances, err := h.reportService.AdminFinances(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, finances)
}
