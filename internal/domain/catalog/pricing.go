package catalog

import (
	"sort"

	"github.com/shopspring/decimal"
)

// EffectiveUnitPrice resolves the per-unit price for a quantity against
// a product's tier table.
//
// Tiers are scanned in ascending minQuantity order and every matching
// tier overwrites the price, so with overlapping ranges the last match
// wins. Callers depend on this exact resolution; do not short-circuit
// on the first match or reject overlaps here.
func EffectiveUnitPrice(basePrice decimal.Decimal, tiers []PriceTier, quantity int) decimal.Decimal {
	if len(tiers) == 0 {
		return basePrice
	}

	sorted := make([]PriceTier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinQuantity < sorted[j].MinQuantity
	})

	price := basePrice
	for _, tier := range sorted {
		if tier.Matches(quantity) {
			price = tier.PricePerUnit
		}
	}
	return price
}
