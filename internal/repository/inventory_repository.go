package repository

import "context"

type InventoryRepository interface {
	// DecreaseProductStockIfEnough decrements the product's own stock
	// counter only when the current value covers qty. Returns false when
	// the conditional update matched no row.
	DecreaseProductStockIfEnough(ctx context.Context, productID string, qty int64) (bool, error)

	// DecreaseVariantStockIfEnough is the same conditional decrement
	// against a variant's independent stock pool.
	DecreaseVariantStockIfEnough(ctx context.Context, variantID string, qty int64) (bool, error)
}
