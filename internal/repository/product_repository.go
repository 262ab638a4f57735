package repository

import (
	"context"
	"errors"

	"github.com/hotriluan/vuki-sub000/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

type ProductRepository interface {
	// FindManyWithVariants loads every product in ids together with its
	// variants in one read. Soft-deleted products are not returned, so
	// the caller detects missing products by comparing counts.
	FindManyWithVariants(ctx context.Context, ids []string) ([]model.Product, error)
}
