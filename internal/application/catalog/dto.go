package catalog

import (
	"time"

	"github.com/souqbun/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryRequest represents a request to create a category
type CategoryRequest struct {
	NameEn string `json:"name_en" binding:"required,min=1,max=200"`
	NameAr string `json:"name_ar" binding:"max=200"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID     uuid.UUID `json:"id"`
	NameEn string    `json:"name_en"`
	NameAr string    `json:"name_ar,omitempty"`
	Slug   string    `json:"slug"`
}

// AttributeInput is one key-value attribute on a product request
type AttributeInput struct {
	Key   string `json:"key" binding:"required,oneof=processing_method roast_level origin_country brew_method"`
	Value string `json:"value" binding:"required,min=1,max=100"`
}

// ShippingZoneInput is one delivery option on a product request
type ShippingZoneInput struct {
	ZoneNameEn    string          `json:"zone_name_en" binding:"max=100"`
	ZoneNameAr    string          `json:"zone_name_ar" binding:"max=100"`
	Cost          decimal.Decimal `json:"cost"`
	EstimatedDays int             `json:"estimated_days" binding:"min=0"`
	CODAvailable  bool            `json:"cod_available"`
}

// PriceTierInput is one quantity bracket on a product request
type PriceTierInput struct {
	MinQuantity  int             `json:"min_quantity" binding:"required,min=1"`
	MaxQuantity  *int            `json:"max_quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" binding:"required"`
}

// ProductRequest carries the supplier-provided fields for creating or
// updating a product. Attributes, shipping zones and price tiers
// replace the existing sets wholesale.
type ProductRequest struct {
	CategoryID       *uuid.UUID          `json:"category_id"`
	NameEn           string              `json:"name_en" binding:"required,min=1,max=200"`
	NameAr           string              `json:"name_ar" binding:"max=200"`
	DescriptionEn    string              `json:"description_en" binding:"max=5000"`
	DescriptionAr    string              `json:"description_ar" binding:"max=5000"`
	BasePrice        decimal.Decimal     `json:"base_price" binding:"required"`
	Unit             string              `json:"unit" binding:"required,oneof=KG G PACK"`
	StockQuantity    int                 `json:"stock_quantity" binding:"min=0"`
	MinOrderQuantity int                 `json:"min_order_quantity" binding:"required,min=1"`
	Attributes       []AttributeInput    `json:"attributes" binding:"max=20,dive"`
	ShippingZones    []ShippingZoneInput `json:"shipping_zones" binding:"max=20,dive"`
	PriceTiers       []PriceTierInput    `json:"price_tiers" binding:"max=20,dive"`
}

// ListProductsQuery carries the buyer-facing listing filters as query
// parameters. Attribute parameters may be repeated.
type ListProductsQuery struct {
	Search           string   `form:"search"`
	CategoryID       *string  `form:"category_id"`
	ProcessingMethod []string `form:"processing_method"`
	RoastLevel       []string `form:"roast_level"`
	OriginCountry    []string `form:"origin_country"`
	BrewMethod       []string `form:"brew_method"`
	PriceMin         *string  `form:"price_min"`
	PriceMax         *string  `form:"price_max"`
	InStock          bool     `form:"in_stock"`
	Sort             string   `form:"sort" binding:"omitempty,oneof=newest price_asc price_desc"`
	Page             int      `form:"page" binding:"omitempty,min=1"`
	Limit            int      `form:"limit" binding:"omitempty,min=1,max=100"`
}

// AttributeResponse is one attribute row in API responses
type AttributeResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ImageResponse is one product image in API responses
type ImageResponse struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	SortOrder int       `json:"sort_order"`
	IsPrimary bool      `json:"is_primary"`
}

// ShippingZoneResponse is one delivery option in API responses
type ShippingZoneResponse struct {
	ID            uuid.UUID       `json:"id"`
	ZoneNameEn    string          `json:"zone_name_en,omitempty"`
	ZoneNameAr    string          `json:"zone_name_ar,omitempty"`
	Cost          decimal.Decimal `json:"cost"`
	EstimatedDays int             `json:"estimated_days"`
	CODAvailable  bool            `json:"cod_available"`
}

// PriceTierResponse is one quantity bracket in API responses
type PriceTierResponse struct {
	MinQuantity  int             `json:"min_quantity"`
	MaxQuantity  *int            `json:"max_quantity,omitempty"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID               uuid.UUID              `json:"id"`
	SupplierID       uuid.UUID              `json:"supplier_id"`
	CategoryID       *uuid.UUID             `json:"category_id,omitempty"`
	NameEn           string                 `json:"name_en"`
	NameAr           string                 `json:"name_ar,omitempty"`
	DescriptionEn    string                 `json:"description_en,omitempty"`
	DescriptionAr    string                 `json:"description_ar,omitempty"`
	Slug             string                 `json:"slug"`
	BasePrice        decimal.Decimal        `json:"base_price"`
	Unit             string                 `json:"unit"`
	StockQuantity    int                    `json:"stock_quantity"`
	MinOrderQuantity int                    `json:"min_order_quantity"`
	IsActive         bool                   `json:"is_active"`
	Attributes       []AttributeResponse    `json:"attributes"`
	Images           []ImageResponse        `json:"images"`
	ShippingZones    []ShippingZoneResponse `json:"shipping_zones"`
	PriceTiers       []PriceTierResponse    `json:"price_tiers"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// UploadURLRequest asks for a presigned upload slot for a product image
type UploadURLRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=255"`
	ContentType string `json:"content_type" binding:"required"`
}

// UploadURLResponse carries the presigned URL and the storage key the
// client must echo back when attaching the image
type UploadURLResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// AttachImageRequest registers an uploaded object as a product image
type AttachImageRequest struct {
	StorageKey string `json:"storage_key" binding:"required,max=500"`
	SortOrder  int    `json:"sort_order" binding:"min=0"`
	IsPrimary  bool   `json:"is_primary"`
}

// ToCategoryResponse converts a category to its API representation
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:     c.ID,
		NameEn: c.NameEn,
		NameAr: c.NameAr,
		Slug:   c.Slug,
	}
}

// ToProductResponse converts a product aggregate to its API representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	attrs := make([]AttributeResponse, len(p.Attributes))
	for i, a := range p.Attributes {
		attrs[i] = AttributeResponse{Key: a.Key.String(), Value: a.Value}
	}
	images := make([]ImageResponse, len(p.Images))
	for i, img := range p.Images {
		images[i] = ImageResponse{ID: img.ID, URL: img.URL, SortOrder: img.SortOrder, IsPrimary: img.IsPrimary}
	}
	zones := make([]ShippingZoneResponse, len(p.ShippingZones))
	for i, z := range p.ShippingZones {
		zones[i] = ShippingZoneResponse{
			ID:            z.ID,
			ZoneNameEn:    z.ZoneNameEn,
			ZoneNameAr:    z.ZoneNameAr,
			Cost:          z.Cost,
			EstimatedDays: z.EstimatedDays,
			CODAvailable:  z.CODAvailable,
		}
	}
	tiers := make([]PriceTierResponse, len(p.PriceTiers))
	for i, t := range p.PriceTiers {
		tiers[i] = PriceTierResponse{
			MinQuantity:  t.MinQuantity,
			MaxQuantity:  t.MaxQuantity,
			PricePerUnit: t.PricePerUnit,
		}
	}

	return ProductResponse{
		ID:               p.ID,
		SupplierID:       p.SupplierID,
		CategoryID:       p.CategoryID,
		NameEn:           p.NameEn,
		NameAr:           p.NameAr,
		DescriptionEn:    p.DescriptionEn,
		DescriptionAr:    p.DescriptionAr,
		Slug:             p.Slug,
		BasePrice:        p.BasePrice,
		Unit:             p.Unit.String(),
		StockQuantity:    p.StockQuantity,
		MinOrderQuantity: p.MinOrderQuantity,
		IsActive:         p.IsActive,
		Attributes:       attrs,
		Images:           images,
		ShippingZones:    zones,
		PriceTiers:       tiers,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
