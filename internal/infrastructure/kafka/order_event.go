package publisher

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
	"github.com/google/uuid"
)

const (
	EventOrderCreated       = "ORDER_CREATED"
	EventOrderStatusChanged = "ORDER_STATUS_CHANGED"
)

type OrderEvent struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	OrderID        int64     `json:"order_id"`
	UserID         int64     `json:"user_id"`
	OrderType      string    `json:"order_type"`
	Quantity       int64     `json:"quantity"`
	Price          string    `json:"price"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Version        int64     `json:"version"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func newOrderEvent(eventType string, order *domain.Order) OrderEvent {
	return OrderEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OrderID:    order.ID,
		UserID:     order.UserID,
		OrderType:  string(order.Type),
		Quantity:   order.Quantity,
		Price:      order.Price.String(),
		Status:     string(order.Status),
		Version:    order.Version,
		OccurredAt: time.Now().UTC(),
	}
}

func NewOrderCreatedEvent(order *domain.Order) OrderEvent {
	return newOrderEvent(EventOrderCreated, order)
}

func NewOrderStatusChangedEvent(order *domain.Order, previous domain.OrderStatus) OrderEvent {
	event := newOrderEvent(EventOrderStatusChanged, order)
	event.PreviousStatus = string(previous)
	return event
}

// Message keys the event by owner so one user's events stay ordered.
func (e OrderEvent) Message() (domain.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{
		Key:   []byte(strconv.FormatInt(e.UserID, 10)),
		Value: value,
	}, nil
}
