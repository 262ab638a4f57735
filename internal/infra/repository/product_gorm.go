package repository

import (
	"context"

	"github.com/hotriluan/vuki-sub000/internal/domain/model"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// FindManyWithVariants returns the requested products with variants
// preloaded. Soft-deleted rows are filtered by gorm, so fewer rows than
// ids means at least one product is gone.
func (r *ProductGormRepository) FindManyWithVariants(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("id IN ?", ids).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}
