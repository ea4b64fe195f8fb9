package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
	"github.com/LavaJover/shvark-trade-order-service/internal/usecase/access"
	orderdto "github.com/LavaJover/shvark-trade-order-service/internal/usecase/dto/order"
)

func (uc *DefaultOrderUsecase) UpdateOrderStatus(
	ctx context.Context,
	caller domain.Caller,
	orderID int64,
	input *orderdto.UpdateOrderStatusInput,
) (*orderdto.OrderOutput, error) {
	if _, err := access.ResolveScope(caller, nil, access.OpTransition); err != nil {
		return nil, err
	}
	if input == nil || strings.TrimSpace(input.Status) == "" {
		return nil, domain.NewValidationError("status is required")
	}

	order, err := uc.RequestTransition(ctx, orderID, input.Status)
	if err != nil {
		uc.recordError("update_status", err)
		return nil, err
	}
	return orderdto.ToOrderOutput(order), nil
}

// RequestTransition moves an order to target if the state machine allows it
// and nobody else changed the order since it was read. There is no retry:
// a concurrent change surfaces as a conflict.
func (uc *DefaultOrderUsecase) RequestTransition(ctx context.Context, orderID int64, target string) (*domain.Order, error) {
	newStatus, err := domain.ParseOrderStatus(target)
	if err != nil {
		return nil, err
	}

	current, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, orderNotFound(orderID)
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if err := domain.CheckTransition(current.Status, newStatus); err != nil {
		return nil, err
	}

	updated, err := uc.OrderRepo.UpdateOrderStatus(ctx, orderID, current.Version, newStatus)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVersionConflict):
			uc.recordVersionConflict()
			return nil, domain.NewConflictError("Order %d was modified by another request. Reload it and retry", orderID)
		case errors.Is(err, domain.ErrRecordNotFound):
			return nil, orderNotFound(orderID)
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	// Committed. Cache cleanup is best-effort and never undoes the write.
	uc.OrderCache.Evict(ctx, orderID)
	uc.Views.InvalidateRecent(ctx, updated.UserID)

	uc.recordTransitionMetrics(current.Status, updated)
	uc.publishOrderEvent(newOrderStatusChangedEvent(updated, current.Status))

	slog.Info("order status changed",
		"order_id", orderID,
		"from", current.Status,
		"to", updated.Status,
		"version", updated.Version,
	)
	return updated, nil
}
