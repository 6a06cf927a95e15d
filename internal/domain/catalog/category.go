package catalog

import (
	"strings"

	"github.com/souqbun/backend/internal/domain/shared"
)

// Category is a flat grouping for products (e.g. single origin, blends, tea)
type Category struct {
	shared.BaseEntity
	NameEn string
	NameAr string
	Slug   string
}

// NewCategory creates a category with a slug derived from the English name
func NewCategory(nameEn, nameAr string) (*Category, error) {
	nameEn = normalizeText(nameEn)
	nameAr = normalizeText(nameAr)
	if nameEn == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "English category name is required")
	}

	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		NameEn:     nameEn,
		NameAr:     nameAr,
		Slug:       slugify(nameEn),
	}, nil
}

// slugify lowercases a name and replaces runs of non-alphanumerics with dashes
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
