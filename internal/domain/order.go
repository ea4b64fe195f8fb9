package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	TypeBuy  OrderType = "BUY"
	TypeSell OrderType = "SELL"
)

var orderTypes = []OrderType{TypeBuy, TypeSell}

// PriceScale is the number of fractional digits the store keeps for prices.
const PriceScale = 4

type Order struct {
	ID        int64           `json:"orderId"`
	Type      OrderType       `json:"orderType"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Status    OrderStatus     `json:"status"`
	UserID    int64           `json:"userId"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Version   int64           `json:"version"`
}

// ParseOrderType accepts BUY or SELL in any case, surrounding spaces ignored.
func ParseOrderType(raw string) (OrderType, error) {
	candidate := OrderType(strings.ToUpper(strings.TrimSpace(raw)))
	for _, t := range orderTypes {
		if t == candidate {
			return t, nil
		}
	}
	return "", NewValidationError("Invalid orderType. Accepted values: %s", joinTypes(orderTypes))
}

func joinTypes(types []OrderType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// ValidatePrice checks that price is positive and fits the stored scale.
func ValidatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return NewValidationError("price must be greater than 0")
	}
	if !price.Equal(price.Truncate(PriceScale)) {
		return NewValidationError("price must have at most %d decimal places", PriceScale)
	}
	return nil
}

func (o *Order) String() string {
	return fmt.Sprintf("order %d (%s %d @ %s, %s, v%d)", o.ID, o.Type, o.Quantity, o.Price.String(), o.Status, o.Version)
}
