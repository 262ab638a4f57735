package usecase

import "github.com/hotriluan/vuki-sub000/internal/domain/model"

// ResolveUnitPrice derives the authoritative per-line unit price from
// the catalog snapshot. The product's sale price applies when set and
// lower than the list price; a variant override replaces the result
// entirely, otherwise a variant diff (possibly negative) is added.
// Pure function, no I/O; the caller has already checked that the
// variant belongs to the product.
func ResolveUnitPrice(p model.Product, v *model.ProductVariant) int64 {
	price := p.EffectivePrice()

	if v != nil {
		switch {
		case v.PriceOverride != nil:
			price = *v.PriceOverride
		case v.PriceDiff != nil:
			price += *v.PriceDiff
		}
	}

	// a large negative diff must not sell the line for less than free
	if price < 0 {
		price = 0
	}
	return price
}
