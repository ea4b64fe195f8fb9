package usecase

import (
	"errors"

	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
	"github.com/LavaJover/shvark-trade-order-service/internal/infrastructure/cache"
)

// recordOrderCreatedMetrics - вызывается при создании заказа
func (uc *DefaultOrderUsecase) recordOrderCreatedMetrics(order *domain.Order) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordOrderCreated(string(order.Type), order.Quantity)
}

// recordTransitionMetrics - вызывается после успешной смены статуса
func (uc *DefaultOrderUsecase) recordTransitionMetrics(from domain.OrderStatus, order *domain.Order) {
	if uc.Metrics == nil {
		return
	}

	uc.Metrics.RecordStatusTransition(string(from), string(order.Status))

	if domain.IsTerminal(order.Status) && !order.CreatedAt.IsZero() {
		duration := order.UpdatedAt.Sub(order.CreatedAt).Seconds()
		uc.Metrics.RecordOrderProcessingDuration(string(order.Status), duration)
	}
}

func (uc *DefaultOrderUsecase) recordVersionConflict() {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordVersionConflict()
}

func (uc *DefaultOrderUsecase) recordError(operation string, err error) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordError(operation, errorKind(err))
}

func (uc *DefaultOrderUsecase) recordReseed(view cache.ViewKind, ok bool) {
	if uc.CacheMetrics == nil {
		return
	}
	uc.CacheMetrics.RecordReseed(view, ok)
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrAccessDenied):
		return "access_denied"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
