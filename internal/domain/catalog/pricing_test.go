package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func tier(min int, max *int, price int64) PriceTier {
	return PriceTier{
		MinQuantity:  min,
		MaxQuantity:  max,
		PricePerUnit: decimal.NewFromInt(price),
	}
}

func intPtr(v int) *int { return &v }

func TestEffectiveUnitPrice(t *testing.T) {
	base := decimal.NewFromInt(100)

	t.Run("no tiers returns base price", func(t *testing.T) {
		for _, qty := range []int{1, 7, 1000} {
			got := EffectiveUnitPrice(base, nil, qty)
			assert.True(t, got.Equal(base), "quantity %d", qty)
		}
	})

	t.Run("picks the bracket containing the quantity", func(t *testing.T) {
		tiers := []PriceTier{
			tier(1, intPtr(4), 100),
			tier(5, intPtr(9), 90),
			tier(10, nil, 80),
		}

		cases := []struct {
			qty  int
			want int64
		}{
			{3, 100},
			{7, 90},
			{15, 80},
			{4, 100},
			{5, 90},
			{10, 80},
		}
		for _, tc := range cases {
			got := EffectiveUnitPrice(base, tiers, tc.qty)
			assert.True(t, got.Equal(decimal.NewFromInt(tc.want)), "quantity %d: got %s", tc.qty, got)
		}
	})

	t.Run("quantity below every tier falls back to base price", func(t *testing.T) {
		tiers := []PriceTier{tier(5, nil, 90)}
		got := EffectiveUnitPrice(base, tiers, 2)
		assert.True(t, got.Equal(base))
	})

	t.Run("overlapping tiers resolve to the later tier by min quantity", func(t *testing.T) {
		// Both tiers match quantity 6; after sorting ascending by
		// minQuantity the (5..20) tier is scanned last and wins.
		tiers := []PriceTier{
			tier(5, intPtr(20), 85),
			tier(1, intPtr(10), 95),
		}
		got := EffectiveUnitPrice(base, tiers, 6)
		assert.True(t, got.Equal(decimal.NewFromInt(85)), "got %s", got)
	})

	t.Run("equal min quantities keep input order for the tie", func(t *testing.T) {
		tiers := []PriceTier{
			tier(1, nil, 70),
			tier(1, nil, 60),
		}
		got := EffectiveUnitPrice(base, tiers, 3)
		assert.True(t, got.Equal(decimal.NewFromInt(60)), "got %s", got)
	})

	t.Run("input slice is not reordered", func(t *testing.T) {
		tiers := []PriceTier{
			tier(10, nil, 80),
			tier(1, intPtr(9), 95),
		}
		EffectiveUnitPrice(base, tiers, 12)
		assert.Equal(t, 10, tiers[0].MinQuantity)
	})
}

func TestPriceTierMatches(t *testing.T) {
	bounded := tier(5, intPtr(9), 90)
	assert.False(t, bounded.Matches(4))
	assert.True(t, bounded.Matches(5))
	assert.True(t, bounded.Matches(9))
	assert.False(t, bounded.Matches(10))

	unbounded := tier(10, nil, 80)
	assert.True(t, unbounded.Matches(10))
	assert.True(t, unbounded.Matches(100000))
	assert.False(t, unbounded.Matches(9))
}
