package domain

import "context"

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetOrderByID(ctx context.Context, orderID int64) (*Order, error)
	// UpdateOrderStatus persists status only if the stored version still equals
	// expectedVersion, and returns the updated order. Mismatch -> ErrVersionConflict.
	UpdateOrderStatus(ctx context.Context, orderID int64, expectedVersion int64, newStatus OrderStatus) (*Order, error)
	FindRecentByUserID(ctx context.Context, userID int64, limit int) ([]*Order, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	ListOrders(ctx context.Context, filter OrderFilter, page PageRequest) ([]*Order, int64, error)
}

type UserRepository interface {
	ExistsByID(ctx context.Context, userID int64) (bool, error)
}
