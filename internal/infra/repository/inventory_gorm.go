package repository

import (
	"context"

	"github.com/hotriluan/vuki-sub000/internal/domain/model"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// DecreaseProductStockIfEnough issues the conditional decrement as one
// atomic UPDATE. RowsAffected == 0 means the stock check failed; the
// row is never driven negative even under concurrent callers.
func (r *InventoryGormRepository) DecreaseProductStockIfEnough(ctx context.Context, productID string, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// DecreaseVariantStockIfEnough decrements only the variant's pool; the
// parent product's counter is untouched.
func (r *InventoryGormRepository) DecreaseVariantStockIfEnough(ctx context.Context, variantID string, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.ProductVariant{}).
		Where("id = ? AND stock >= ?", variantID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}
