package usecase

import (
	"context"

	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
	"github.com/LavaJover/shvark-trade-order-service/internal/infrastructure/cache"
	"github.com/LavaJover/shvark-trade-order-service/internal/infrastructure/metrics"
	orderdto "github.com/LavaJover/shvark-trade-order-service/internal/usecase/dto/order"
)

type OrderUsecase interface {
	CreateOrder(ctx context.Context, caller domain.Caller, input *orderdto.CreateOrderInput) (*orderdto.OrderOutput, error)
	GetOrderByID(ctx context.Context, caller domain.Caller, orderID int64) (*orderdto.OrderOutput, error)
	ListOrders(ctx context.Context, caller domain.Caller, input *orderdto.ListOrdersInput) (*orderdto.PagedOrdersOutput, error)
	UpdateOrderStatus(ctx context.Context, caller domain.Caller, orderID int64, input *orderdto.UpdateOrderStatusInput) (*orderdto.OrderOutput, error)

	CountUserOrders(ctx context.Context, caller domain.Caller, userID int64) (*orderdto.OrderCountOutput, error)
	GetRecentOrders(ctx context.Context, caller domain.Caller, userID int64) ([]*orderdto.OrderOutput, error)

	RepairDirtyViews(ctx context.Context) (int, error)
}

type DefaultOrderUsecase struct {
	OrderRepo    domain.OrderRepository
	UserRepo     domain.UserRepository
	Views        *cache.OwnerViews
	OrderCache   *cache.OrderCache
	Publisher    domain.PublisherPort
	EventsTopic  string
	Metrics      *metrics.OrderMetrics
	CacheMetrics *metrics.CacheMetrics
}

// NewDefaultOrderUsecase wires the use case. publisher and both metrics
// sets are optional.
func NewDefaultOrderUsecase(
	orderRepo domain.OrderRepository,
	userRepo domain.UserRepository,
	views *cache.OwnerViews,
	orderCache *cache.OrderCache,
	publisher domain.PublisherPort,
	eventsTopic string,
	orderMetrics *metrics.OrderMetrics,
	cacheMetrics *metrics.CacheMetrics,
) *DefaultOrderUsecase {

	return &DefaultOrderUsecase{
		OrderRepo:    orderRepo,
		UserRepo:     userRepo,
		Views:        views,
		OrderCache:   orderCache,
		Publisher:    publisher,
		EventsTopic:  eventsTopic,
		Metrics:      orderMetrics,
		CacheMetrics: cacheMetrics,
	}
}

func (uc *DefaultOrderUsecase) requireUser(ctx context.Context, userID int64) error {
	exists, err := uc.UserRepo.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFoundError("User not found with id: %d", userID)
	}
	return nil
}

func orderNotFound(orderID int64) error {
	return domain.NewNotFoundError("Order not found with id: %d", orderID)
}
