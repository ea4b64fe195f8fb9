package setup

import (
	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
	"github.com/LavaJover/shvark-trade-order-service/internal/infrastructure/cache"
	"github.com/LavaJover/shvark-trade-order-service/internal/infrastructure/metrics"
	usecase "github.com/LavaJover/shvark-trade-order-service/internal/usecase/order"
)

type UseCases struct {
	OrderUsecase usecase.OrderUsecase
	HTTPMetrics  *metrics.HTTPMetrics
}

func InitializeUseCases(deps *Dependencies) *UseCases {
	cfg := deps.Config

	orderMetrics := metrics.NewOrderMetrics(deps.Registry)
	cacheMetrics := metrics.NewCacheMetrics(deps.Registry)

	views := cache.NewOwnerViews(
		deps.CacheStore,
		cache.ViewsConfig{
			RecentLimit: cfg.Cache.RecentLimit,
			CountTTL:    cfg.Cache.CountTTL,
			RecentTTL:   cfg.Cache.RecentTTL,
		},
		cache.WithRecorder(cacheMetrics),
	)
	orderCache := cache.NewOrderCache(deps.CacheStore, cfg.Cache.OrderTTL, cache.WithRecorder(cacheMetrics))

	// A nil *DefaultKafkaPublisher must not become a non-nil interface.
	var eventPublisher domain.PublisherPort
	if deps.Publisher != nil {
		eventPublisher = deps.Publisher
	}

	orderUsecase := usecase.NewDefaultOrderUsecase(
		deps.Repositories.OrderRepo,
		deps.Repositories.UserRepo,
		views,
		orderCache,
		eventPublisher,
		cfg.KafkaService.Topic,
		orderMetrics,
		cacheMetrics,
	)

	return &UseCases{
		OrderUsecase: orderUsecase,
		HTTPMetrics:  metrics.NewHTTPMetrics(deps.Registry),
	}
}
