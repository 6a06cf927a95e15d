package handler

import (
	catalogapp "github.com/souqbun/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles the public catalog and the supplier's own
// product management
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	imageService   *catalogapp.ImageService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *catalogapp.ProductService, imageService *catalogapp.ImageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		imageService:   imageService,
	}
}

// List handles GET /api/products
func (h *ProductHandler) List(c *gin.Context) {
	var query catalogapp.ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	products, total, err := h.productService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit <= 0 {
		limit = len(products)
	}
	h.SuccessWithMeta(c, products, total, page, limit)
}

// Get handles GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ListMine handles GET /api/supplier/products
func (h *ProductHandler) ListMine(c *gin.Context) {
	supplierID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	products, err := h.productService.ListBySupplier(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Create handles POST /api/supplier/products
func (h *ProductHandler) Create(c *gin.Context) {
	supplierID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), supplierID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update handles PUT /api/supplier/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	supplierID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req catalogapp.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), supplierID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete handles DELETE /api/supplier/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	supplierID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), supplierID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GenerateUploadURL handles POST /api/supplier/products/:id/images/upload-url
func (h *ProductHandler) GenerateUploadURL(c *gin.Context) {
	supplierID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req catalogapp.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.imageService.GenerateUploadURL(c.Request.Context(), supplierID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AttachImage handles POST /api/supplier/products/:id/images
func (h *ProductHandler) AttachImage(c *gin.Context) {
	supplierID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req catalogapp.AttachImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	image, err := h.imageService.AttachImage(c.Request.Context(), supplierID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, image)
}
