package mappers

import (
	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
	"github.com/LavaJover/shvark-trade-order-service/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	return &domain.Order{
		ID:        model.ID,
		Type:      model.OrderType,
		Quantity:  model.Quantity,
		Price:     model.Price,
		Status:    model.Status,
		UserID:    model.UserID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		Version:   model.Version,
	}
}

func ToDomainOrders(rows []models.OrderModel) []*domain.Order {
	orders := make([]*domain.Order, len(rows))
	for i := range rows {
		orders[i] = ToDomainOrder(&rows[i])
	}
	return orders
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:        order.ID,
		OrderType: order.Type,
		Quantity:  order.Quantity,
		Price:     order.Price,
		Status:    order.Status,
		UserID:    order.UserID,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
		Version:   order.Version,
	}
}
