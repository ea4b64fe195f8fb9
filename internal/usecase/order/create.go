package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
	"github.com/LavaJover/shvark-trade-order-service/internal/usecase/access"
	orderdto "github.com/LavaJover/shvark-trade-order-service/internal/usecase/dto/order"
)

func (uc *DefaultOrderUsecase) CreateOrder(
	ctx context.Context,
	caller domain.Caller,
	input *orderdto.CreateOrderInput,
) (*orderdto.OrderOutput, error) {
	scope, err := access.ResolveScope(caller, input.UserID, access.OpCreate)
	if err != nil {
		return nil, err
	}
	if scope.OwnerID != caller.UserID {
		if err := uc.requireUser(ctx, scope.OwnerID); err != nil {
			return nil, err
		}
	}

	order, err := buildOrder(scope.OwnerID, input)
	if err != nil {
		uc.recordError("create", err)
		return nil, err
	}

	if err := uc.OrderRepo.CreateOrder(ctx, order); err != nil {
		uc.recordError("create", err)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Cache updates are best-effort, failures only mark the views dirty.
	uc.Views.IncrementCount(ctx, order.UserID)
	uc.Views.PushRecent(ctx, order.UserID, order)

	uc.recordOrderCreatedMetrics(order)
	uc.publishOrderEvent(newOrderCreatedEvent(order))

	slog.Info("order created", "order_id", order.ID, "user_id", order.UserID, "type", order.Type)
	return orderdto.ToOrderOutput(order), nil
}

func buildOrder(ownerID int64, input *orderdto.CreateOrderInput) (*domain.Order, error) {
	if strings.TrimSpace(input.OrderType) == "" {
		return nil, domain.NewValidationError("orderType is required")
	}
	orderType, err := domain.ParseOrderType(input.OrderType)
	if err != nil {
		return nil, err
	}

	if input.Quantity == nil {
		return nil, domain.NewValidationError("quantity is required")
	}
	if *input.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity must be greater than 0")
	}

	if input.Price == nil {
		return nil, domain.NewValidationError("price is required")
	}
	if err := domain.ValidatePrice(*input.Price); err != nil {
		return nil, err
	}

	return &domain.Order{
		Type:     orderType,
		Quantity: *input.Quantity,
		Price:    *input.Price,
		Status:   domain.StatusNew,
		UserID:   ownerID,
	}, nil
}
