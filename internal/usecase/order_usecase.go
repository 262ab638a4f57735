package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hotriluan/vuki-sub000/internal/apperr"
	"github.com/hotriluan/vuki-sub000/internal/domain/model"
	repo "github.com/hotriluan/vuki-sub000/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	maxOrderLines   = 50
	maxLineQuantity = 99
)

type OrderUsecase struct {
	tx       repo.TransactionManager
	products repo.ProductRepository
	logger   *zap.Logger
}

func NewOrderUsecase(tx repo.TransactionManager, products repo.ProductRepository, logger *zap.Logger) *OrderUsecase {
	return &OrderUsecase{tx: tx, products: products, logger: logger}
}

type PlaceOrderItem struct {
	ProductID string
	VariantID string // empty means the line targets the product itself
	Quantity  int64
}

type PlaceOrderInput struct {
	Items []PlaceOrderItem
}

type OrderItemOutput struct {
	ProductID string  `json:"productId"`
	VariantID *string `json:"variantId"`
	Quantity  int64   `json:"quantity"`
	UnitPrice int64   `json:"unitPrice"`
}

type OrderOutput struct {
	OrderID   string            `json:"orderId"`
	Total     int64             `json:"total"`
	Currency  string            `json:"currency"`
	Items     []OrderItemOutput `json:"items"`
	CreatedAt time.Time         `json:"createdAt"`
}

// PlaceOrder runs the whole checkout pipeline: structural validation,
// catalog snapshot, price resolution, then stock reservation and order
// persistence inside one transaction. Every failure aborts the request
// with no side effects.
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID *string, in PlaceOrderInput) (OrderOutput, error) {
	if err := validateItems(in.Items); err != nil {
		return OrderOutput{}, err
	}

	// snapshot read outside the write transaction; it fixes prices but
	// is never trusted as a stock guarantee
	ids := distinctProductIDs(in.Items)
	products, err := u.products.FindManyWithVariants(ctx, ids)
	if err != nil {
		return OrderOutput{}, u.txFailure("catalog snapshot read failed", err)
	}

	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		if p.IsActive {
			byID[p.ID] = p
		}
	}
	if len(byID) < len(ids) {
		for _, id := range ids {
			if _, ok := byID[id]; !ok {
				return OrderOutput{}, apperr.New(apperr.CodeProductNotFound, "product not found").WithProduct(id)
			}
		}
	}

	lines, total, err := resolveLines(in.Items, byID)
	if err != nil {
		return OrderOutput{}, err
	}

	u.logger.Info("checkout started",
		zap.Int("lines", len(lines)),
		zap.Int64("total", total))

	now := time.Now()
	var orderID string

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// conditional decrements in caller order; the first line whose
		// decrement matches no row aborts the whole transaction
		for _, ln := range lines {
			if ln.VariantID != nil {
				ok, err := r.Inventory().DecreaseVariantStockIfEnough(ctx, *ln.VariantID, ln.Quantity)
				if err != nil {
					return err
				}
				if !ok {
					return apperr.New(apperr.CodeInsufficientVariantStock, "insufficient variant stock").
						WithProduct(ln.ProductID).
						WithVariant(*ln.VariantID)
				}
			} else {
				ok, err := r.Inventory().DecreaseProductStockIfEnough(ctx, ln.ProductID, ln.Quantity)
				if err != nil {
					return err
				}
				if !ok {
					return apperr.New(apperr.CodeInsufficientProductStock, "insufficient product stock").
						WithProduct(ln.ProductID)
				}
			}
		}

		id, err := r.Orders().Create(ctx, model.Order{
			UserID:    userID,
			Total:     total,
			Currency:  model.CurrencyVND,
			CreatedAt: now,
		})
		if err != nil {
			return err
		}

		if err := r.OrderItems().CreateBulk(ctx, id, lines); err != nil {
			return err
		}

		orderID = id
		return nil
	})
	if err != nil {
		if ae, ok := apperr.As(err); ok {
			u.logger.Warn("checkout rejected",
				zap.String("code", string(ae.Code)),
				zap.String("productId", ae.ProductID),
				zap.String("variantId", ae.VariantID))
			return OrderOutput{}, ae
		}
		return OrderOutput{}, u.txFailure("order transaction failed", err)
	}

	u.logger.Info("order placed",
		zap.String("orderId", orderID),
		zap.Int64("total", total),
		zap.Int("lines", len(lines)))

	return OrderOutput{
		OrderID:   orderID,
		Total:     total,
		Currency:  model.CurrencyVND,
		Items:     toItemOutputs(lines),
		CreatedAt: now,
	}, nil
}

func (u *OrderUsecase) GetMyOrder(ctx context.Context, userID string, orderID string) (OrderOutput, error) {
	if userID == "" {
		return OrderOutput{}, apperr.New(apperr.CodeUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return OrderOutput{}, apperr.New(apperr.CodeOrderNotFound, "order not found")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.New(apperr.CodeOrderNotFound, "order not found")
		}
		if err != nil {
			return err
		}
		// another user's order reads as missing
		if o.UserID == nil || *o.UserID != userID {
			return apperr.New(apperr.CodeOrderNotFound, "order not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return err
		}

		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		if ae, ok := apperr.As(err); ok {
			return OrderOutput{}, ae
		}
		return OrderOutput{}, u.txFailure("order lookup failed", err)
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID string) ([]OrderOutput, error) {
	if userID == "" {
		return []OrderOutput{}, apperr.New(apperr.CodeUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, userID, 1, 50)
		if err != nil {
			return err
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return err
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})
	if err != nil {
		if ae, ok := apperr.As(err); ok {
			return []OrderOutput{}, ae
		}
		return []OrderOutput{}, u.txFailure("order list failed", err)
	}
	return outs, nil
}

func validateItems(items []PlaceOrderItem) error {
	if len(items) == 0 {
		return apperr.New(apperr.CodeInvalidItems, "items must be a non-empty list")
	}
	if len(items) > maxOrderLines {
		return apperr.New(apperr.CodeTooManyItems, "too many order lines")
	}
	for _, it := range items {
		if strings.TrimSpace(it.ProductID) == "" {
			return apperr.New(apperr.CodeInvalidProductID, "productId is required")
		}
		if it.Quantity < 1 || it.Quantity > maxLineQuantity {
			return apperr.New(apperr.CodeInvalidQuantity, "quantity must be between 1 and 99").
				WithProduct(it.ProductID)
		}
	}
	return nil
}

func distinctProductIDs(items []PlaceOrderItem) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}

// resolveLines freezes the unit price of every line from the snapshot.
// Pure per-line computation; no I/O.
func resolveLines(items []PlaceOrderItem, byID map[string]model.Product) ([]model.OrderItem, int64, error) {
	lines := make([]model.OrderItem, 0, len(items))
	var total int64

	for _, it := range items {
		p := byID[it.ProductID]

		var variant *model.ProductVariant
		var variantID *string
		if it.VariantID != "" {
			v, ok := p.Variant(it.VariantID)
			if !ok {
				return nil, 0, apperr.New(apperr.CodeVariantMismatch, "variant does not belong to product").
					WithProduct(it.ProductID).
					WithVariant(it.VariantID)
			}
			variant = &v
			id := it.VariantID
			variantID = &id
		}

		unit := ResolveUnitPrice(p, variant)
		lines = append(lines, model.OrderItem{
			ProductID: it.ProductID,
			VariantID: variantID,
			Quantity:  it.Quantity,
			UnitPrice: unit,
		})
		total += unit * it.Quantity
	}

	return lines, total, nil
}

func (u *OrderUsecase) txFailure(msg string, cause error) *apperr.Error {
	if isSerializationFailure(cause) {
		u.logger.Warn("transaction conflict, caller may retry", zap.Error(cause))
	} else {
		u.logger.Error(msg, zap.Error(cause))
	}
	return apperr.Wrap(apperr.CodeOrderTransactionFailed, msg, cause)
}

// Postgres aborts one of two competing transactions with a
// serialization (40001) or deadlock (40P01) SQLSTATE; both roll back
// cleanly and the whole request is safe to retry.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

func toItemOutputs(items []model.OrderItem) []OrderItemOutput {
	outs := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outs = append(outs, OrderItemOutput{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return outs
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	return OrderOutput{
		OrderID:   o.ID,
		Total:     o.Total,
		Currency:  o.Currency,
		Items:     toItemOutputs(items),
		CreatedAt: o.CreatedAt,
	}
}
