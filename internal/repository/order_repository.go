package repository

import (
	"context"

	"github.com/hotriluan/vuki-sub000/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (string, error)
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	ListByUserID(ctx context.Context, userID string, page int, limit int) ([]model.Order, int64, error)
}
