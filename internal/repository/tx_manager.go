package repository

import "context"

// TxRepos are the repositories bound to one open transaction.
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Inventory() InventoryRepository
}

// TransactionManager hides begin/commit/rollback from the usecase. An
// error returned by fn rolls the whole transaction back.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
