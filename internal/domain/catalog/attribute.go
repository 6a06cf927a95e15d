package catalog

import (
	"time"

	"github.com/google/uuid"
)

// AttributeKey identifies a filterable product attribute
type AttributeKey string

const (
	AttrProcessingMethod AttributeKey = "processing_method"
	AttrRoastLevel       AttributeKey = "roast_level"
	AttrOriginCountry    AttributeKey = "origin_country"
	AttrBrewMethod       AttributeKey = "brew_method"
)

// IsValid checks if the key is a known AttributeKey
func (k AttributeKey) IsValid() bool {
	switch k {
	case AttrProcessingMethod, AttrRoastLevel, AttrOriginCountry, AttrBrewMethod:
		return true
	}
	return false
}

// String returns the string representation of AttributeKey
func (k AttributeKey) String() string {
	return string(k)
}

// ProductAttribute is one key-value row describing a product
// (e.g. roast_level=dark). A product may carry several values for the
// same key.
type ProductAttribute struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Key       AttributeKey
	Value     string
	CreatedAt time.Time
}

// ProductImage is an ordered image reference for a product. The binary
// itself lives in object storage under StorageKey.
type ProductImage struct {
	ID         uuid.UUID
	ProductID  uuid.UUID
	URL        string
	StorageKey string
	SortOrder  int
	IsPrimary  bool
	CreatedAt  time.Time
}
