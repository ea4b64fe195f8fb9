package orderdto

import (
	"time"

	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
	"github.com/shopspring/decimal"
)

type OrderOutput struct {
	OrderID   int64              `json:"orderId"`
	OrderType domain.OrderType   `json:"orderType"`
	Quantity  int64              `json:"quantity"`
	Price     decimal.Decimal    `json:"price"`
	Status    domain.OrderStatus `json:"status"`
	UserID    int64              `json:"userId"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func ToOrderOutput(order *domain.Order) *OrderOutput {
	return &OrderOutput{
		OrderID:   order.ID,
		OrderType: order.Type,
		Quantity:  order.Quantity,
		Price:     order.Price,
		Status:    order.Status,
		UserID:    order.UserID,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

func ToOrderOutputs(orders []*domain.Order) []*OrderOutput {
	out := make([]*OrderOutput, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderOutput(o))
	}
	return out
}

type PagedOrdersOutput struct {
	Content       []*OrderOutput `json:"content"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
	Last          bool           `json:"last"`
}

type OrderCountOutput struct {
	UserID     int64 `json:"userId"`
	OrderCount int64 `json:"orderCount"`
}
