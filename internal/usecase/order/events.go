package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
	publisher "github.com/LavaJover/shvark-trade-order-service/internal/infrastructure/kafka"
)

const publishTimeout = 5 * time.Second

func newOrderCreatedEvent(order *domain.Order) publisher.OrderEvent {
	return publisher.NewOrderCreatedEvent(order)
}

func newOrderStatusChangedEvent(order *domain.Order, previous domain.OrderStatus) publisher.OrderEvent {
	return publisher.NewOrderStatusChangedEvent(order, previous)
}

// publishOrderEvent sends the event in the background. Failures are logged
// and never affect the request that produced the event.
func (uc *DefaultOrderUsecase) publishOrderEvent(event publisher.OrderEvent) {
	if uc.Publisher == nil {
		return
	}

	msg, err := event.Message()
	if err != nil {
		slog.Error("failed to encode order event", "order_id", event.OrderID, "error", err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := uc.Publisher.Publish(ctx, uc.EventsTopic, msg); err != nil {
			slog.Error("failed to publish order event",
				"event_type", event.EventType,
				"order_id", event.OrderID,
				"error", err,
			)
		}
	}()
}
