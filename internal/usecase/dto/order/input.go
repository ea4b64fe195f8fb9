package orderdto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderInput carries optional fields as pointers so that "missing"
// and "zero" can be told apart during validation.
type CreateOrderInput struct {
	OrderType string           `json:"orderType"`
	Quantity  *int64           `json:"quantity"`
	Price     *decimal.Decimal `json:"price"`
	UserID    *int64           `json:"userId,omitempty"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status"`
}

type ListOrdersInput struct {
	UserID      *int64
	OrderType   string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	MinQty      *int64
	MaxQty      *int64

	Page    int
	Size    int
	SortBy  string
	SortDir string
}

func NewListOrdersInput() *ListOrdersInput {
	return &ListOrdersInput{
		Page:    0,
		Size:    20,
		SortBy:  "createdAt",
		SortDir: "desc",
	}
}
