package catalog

import (
	"strconv"
	"strings"
	"time"

	"github.com/souqbun/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// Unit represents the unit of measure a product is sold in
type Unit string

const (
	UnitKilogram Unit = "KG"
	UnitGram     Unit = "G"
	UnitPack     Unit = "PACK"
)

// IsValid checks if the unit is a known Unit
func (u Unit) IsValid() bool {
	switch u {
	case UnitKilogram, UnitGram, UnitPack:
		return true
	}
	return false
}

// String returns the string representation of Unit
func (u Unit) String() string {
	return string(u)
}

// Product is the aggregate root for a supplier's catalog entry.
// Attributes, images, shipping zones and price tiers are owned children
// and are replaced wholesale on update.
type Product struct {
	shared.BaseEntity
	SupplierID       uuid.UUID
	CategoryID       *uuid.UUID
	NameEn           string
	NameAr           string
	DescriptionEn    string
	DescriptionAr    string
	Slug             string
	BasePrice        decimal.Decimal
	Unit             Unit
	StockQuantity    int
	MinOrderQuantity int
	IsActive         bool
	DeletedAt        *time.Time

	Attributes    []ProductAttribute
	Images        []ProductImage
	ShippingZones []ShippingZone
	PriceTiers    []PriceTier
}

// ProductSpec carries the supplier-provided fields for creating or
// updating a product
type ProductSpec struct {
	CategoryID       *uuid.UUID
	NameEn           string
	NameAr           string
	DescriptionEn    string
	DescriptionAr    string
	BasePrice        decimal.Decimal
	Unit             Unit
	StockQuantity    int
	MinOrderQuantity int
}

// NewProduct creates an active product owned by the given supplier
func NewProduct(supplierID uuid.UUID, spec ProductSpec) (*Product, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID is required")
	}
	if err := spec.validate(); err != nil {
		return nil, err
	}

	nameEn := normalizeText(spec.NameEn)
	p := &Product{
		BaseEntity:       shared.NewBaseEntity(),
		SupplierID:       supplierID,
		CategoryID:       spec.CategoryID,
		NameEn:           nameEn,
		NameAr:           normalizeText(spec.NameAr),
		DescriptionEn:    normalizeText(spec.DescriptionEn),
		DescriptionAr:    normalizeText(spec.DescriptionAr),
		Slug:             newProductSlug(nameEn),
		BasePrice:        spec.BasePrice.Round(2),
		Unit:             spec.Unit,
		StockQuantity:    spec.StockQuantity,
		MinOrderQuantity: spec.MinOrderQuantity,
		IsActive:         true,
	}
	return p, nil
}

// ApplySpec overwrites the supplier-editable fields. The slug is kept
// stable so existing links keep working.
func (p *Product) ApplySpec(spec ProductSpec) error {
	if err := spec.validate(); err != nil {
		return err
	}
	p.CategoryID = spec.CategoryID
	p.NameEn = normalizeText(spec.NameEn)
	p.NameAr = normalizeText(spec.NameAr)
	p.DescriptionEn = normalizeText(spec.DescriptionEn)
	p.DescriptionAr = normalizeText(spec.DescriptionAr)
	p.BasePrice = spec.BasePrice.Round(2)
	p.Unit = spec.Unit
	p.StockQuantity = spec.StockQuantity
	p.MinOrderQuantity = spec.MinOrderQuantity
	p.UpdatedAt = time.Now()
	return nil
}

func (s ProductSpec) validate() error {
	if normalizeText(s.NameEn) == "" {
		return shared.NewDomainError("INVALID_NAME", "English product name is required")
	}
	if s.BasePrice.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Base price must be positive")
	}
	if !s.Unit.IsValid() {
		return shared.NewDomainError("INVALID_UNIT", "Unknown unit of measure")
	}
	if s.StockQuantity < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}
	if s.MinOrderQuantity < 1 {
		return shared.NewDomainError("INVALID_MIN_ORDER", "Minimum order quantity must be at least 1")
	}
	return nil
}

// ReplaceAttributes swaps the attribute set, validating keys
func (p *Product) ReplaceAttributes(attrs []ProductAttribute) error {
	for i := range attrs {
		if !attrs[i].Key.IsValid() {
			return shared.NewDomainError("INVALID_ATTRIBUTE", "Unknown attribute key: "+attrs[i].Key.String())
		}
		if attrs[i].ID == uuid.Nil {
			attrs[i].ID = uuid.New()
		}
		attrs[i].ProductID = p.ID
	}
	p.Attributes = attrs
	p.UpdatedAt = time.Now()
	return nil
}

// ReplaceShippingZones swaps the shipping zone set
func (p *Product) ReplaceShippingZones(zones []ShippingZone) error {
	for i := range zones {
		if zones[i].Cost.IsNegative() {
			return shared.NewDomainError("INVALID_SHIPPING_COST", "Shipping cost cannot be negative")
		}
		if zones[i].ID == uuid.Nil {
			zones[i].ID = uuid.New()
		}
		zones[i].ProductID = p.ID
	}
	p.ShippingZones = zones
	p.UpdatedAt = time.Now()
	return nil
}

// ReplacePriceTiers swaps the tier set. Ranges are accepted as given;
// the pricing scan resolves any overlap.
func (p *Product) ReplacePriceTiers(tiers []PriceTier) error {
	for i := range tiers {
		if tiers[i].MinQuantity < 1 {
			return shared.NewDomainError("INVALID_TIER", "Tier minimum quantity must be at least 1")
		}
		if tiers[i].MaxQuantity != nil && *tiers[i].MaxQuantity < tiers[i].MinQuantity {
			return shared.NewDomainError("INVALID_TIER", "Tier maximum cannot be below its minimum")
		}
		if tiers[i].PricePerUnit.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_TIER", "Tier price must be positive")
		}
		if tiers[i].ID == uuid.Nil {
			tiers[i].ID = uuid.New()
		}
		tiers[i].ProductID = p.ID
	}
	p.PriceTiers = tiers
	p.UpdatedAt = time.Now()
	return nil
}

// Deactivate hides the product from buyer-facing listings
func (p *Product) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
}

// Activate makes the product visible to buyers again
func (p *Product) Activate() {
	p.IsActive = true
	p.UpdatedAt = time.Now()
}

// SoftDelete marks the product deleted without removing order history
func (p *Product) SoftDelete() {
	now := time.Now()
	p.DeletedAt = &now
	p.IsActive = false
	p.UpdatedAt = now
}

// IsDeleted reports whether the product has been soft deleted
func (p *Product) IsDeleted() bool {
	return p.DeletedAt != nil
}

// InStock reports whether the requested quantity is available
func (p *Product) InStock(quantity int) bool {
	return p.StockQuantity >= quantity
}

// newProductSlug builds a URL slug from the English name plus a base36
// timestamp suffix for uniqueness
func newProductSlug(nameEn string) string {
	suffix := strconv.FormatInt(time.Now().UnixMilli(), 36)
	base := slugify(nameEn)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

// normalizeText trims whitespace and applies Unicode NFC normalization,
// keeping Arabic input in a single canonical form for search
func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
