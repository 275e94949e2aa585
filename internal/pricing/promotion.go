package pricing

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"api_pos/internal/domain"
)

// PromotionApplies reports whether promo can be applied to quantity units of
// productID at the given instant. The validity window is inclusive.
func PromotionApplies(promo domain.Promotion, productID string, quantity int, at time.Time) bool {
	if !promo.Active {
		return false
	}
	if at.Before(promo.StartDate) || at.After(promo.EndDate) {
		return false
	}
	if len(promo.ProductIDs) > 0 && !slices.Contains(promo.ProductIDs, productID) {
		return false
	}
	if promo.MinQuantity > 0 && quantity < promo.MinQuantity {
		return false
	}
	return true
}

// PromotionDiscount returns the amount promo takes off gross. A percentage
// promotion is clamped to 0..100 and a fixed one never exceeds gross.
func PromotionDiscount(promo domain.Promotion, gross decimal.Decimal) decimal.Decimal {
	if gross.IsNegative() || promo.Value.IsNegative() {
		return decimal.Zero
	}

	switch promo.Type {
	case domain.PromotionPercentage:
		pct := decimal.Min(promo.Value, hundred)
		return RoundMinor(gross.Mul(pct).Shift(-2))
	case domain.PromotionFixed:
		return decimal.Min(promo.Value, gross)
	default:
		return decimal.Zero
	}
}

// ApplicablePromotions filters promos down to the ones that apply to the
// given product and quantity at the given instant, keeping their order.
func ApplicablePromotions(promos []domain.Promotion, productID string, quantity int, at time.Time) []domain.Promotion {
	out := make([]domain.Promotion, 0)
	for _, p := range promos {
		if PromotionApplies(p, productID, quantity, at) {
			out = append(out, p)
		}
	}
	return out
}
