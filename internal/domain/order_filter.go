package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderFilter is a conjunction of optional predicates. A nil field adds no
// constraint; ranges may be open on either side.
type OrderFilter struct {
	UserID      *int64
	Type        *OrderType
	Status      *OrderStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	MinQuantity *int64
	MaxQuantity *int64
}

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

const (
	SortByCreatedAt = "createdAt"
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// sortColumns maps the public sort field names to order columns.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"price":     "price",
	"quantity":  "quantity",
	"orderId":   "id",
	"status":    "status",
	"orderType": "order_type",
}

type Sort struct {
	Field     string
	Column    string
	Direction SortDirection
}

// ResolveSort never fails: unknown fields fall back to createdAt and any
// direction other than "asc" means descending.
func ResolveSort(field, direction string) Sort {
	column, ok := sortColumns[field]
	if !ok {
		field, column = SortByCreatedAt, sortColumns[SortByCreatedAt]
	}
	dir := SortDesc
	if strings.EqualFold(strings.TrimSpace(direction), "asc") {
		dir = SortAsc
	}
	return Sort{Field: field, Column: column, Direction: dir}
}

// PageRequest is zero-based.
type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Validate checks the filter's ranges.
func (f OrderFilter) Validate() error {
	if f.CreatedFrom != nil && f.CreatedTo != nil && f.CreatedFrom.After(*f.CreatedTo) {
		return NewValidationError("createdFrom must not be after createdTo")
	}
	if f.MinPrice != nil && f.MinPrice.IsNegative() {
		return NewValidationError("minPrice must be >= 0")
	}
	if f.MaxPrice != nil && f.MaxPrice.IsNegative() {
		return NewValidationError("maxPrice must be >= 0")
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return NewValidationError("minPrice must not be greater than maxPrice")
	}
	if f.MinQuantity != nil && *f.MinQuantity < 0 {
		return NewValidationError("minQty must be >= 0")
	}
	if f.MaxQuantity != nil && *f.MaxQuantity < 0 {
		return NewValidationError("maxQty must be >= 0")
	}
	if f.MinQuantity != nil && f.MaxQuantity != nil && *f.MinQuantity > *f.MaxQuantity {
		return NewValidationError("minQty must not be greater than maxQty")
	}
	return nil
}

func (p PageRequest) Validate() error {
	if p.Page < 0 {
		return NewValidationError("page must be >= 0")
	}
	if p.Size < 1 || p.Size > MaxPageSize {
		return NewValidationError("size must be between 1 and %d", MaxPageSize)
	}
	return nil
}

// TotalPages returns the number of pages of size needed for total items.
func TotalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) > 0 {
		pages++
	}
	return int(pages)
}
