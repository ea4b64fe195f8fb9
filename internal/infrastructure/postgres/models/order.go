package models

import (
	"time"

	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
	"github.com/shopspring/decimal"
)

type OrderModel struct {
	ID        int64              `gorm:"primaryKey;autoIncrement"`
	OrderType domain.OrderType   `gorm:"type:varchar(8);not null"`
	Quantity  int64              `gorm:"not null"`
	Price     decimal.Decimal    `gorm:"type:numeric(19,4);not null"`
	Status    domain.OrderStatus `gorm:"type:varchar(16);not null;index:idx_orders_status"`
	UserID    int64              `gorm:"not null;index:idx_orders_user_created,priority:1"`
	CreatedAt time.Time          `gorm:"not null;index:idx_orders_user_created,priority:2"`
	UpdatedAt time.Time          `gorm:"not null"`
	Version   int64              `gorm:"not null;default:0"`
}

func (OrderModel) TableName() string {
	return "orders"
}
