package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
	"github.com/LavaJover/shvark-trade-order-service/internal/usecase/access"
	orderdto "github.com/LavaJover/shvark-trade-order-service/internal/usecase/dto/order"
)

// GetOrderByID reads through the single-order cache. Ownership is checked
// against the loaded order on hits and misses alike.
func (uc *DefaultOrderUsecase) GetOrderByID(ctx context.Context, caller domain.Caller, orderID int64) (*orderdto.OrderOutput, error) {
	order, ok := uc.OrderCache.Get(ctx, orderID)
	if !ok {
		var err error
		order, err = uc.OrderRepo.GetOrderByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return nil, orderNotFound(orderID)
			}
			return nil, fmt.Errorf("failed to load order: %w", err)
		}
		uc.OrderCache.Put(ctx, order)
	}

	if err := access.AuthorizeRead(caller, order); err != nil {
		return nil, err
	}
	return orderdto.ToOrderOutput(order), nil
}

func (uc *DefaultOrderUsecase) ListOrders(
	ctx context.Context,
	caller domain.Caller,
	input *orderdto.ListOrdersInput,
) (*orderdto.PagedOrdersOutput, error) {
	scope, err := access.ResolveScope(caller, input.UserID, access.OpList)
	if err != nil {
		return nil, err
	}
	if caller.Role == domain.RoleAdmin && input.UserID != nil {
		if err := uc.requireUser(ctx, *input.UserID); err != nil {
			return nil, err
		}
	}

	filter, err := buildFilter(scope, input)
	if err != nil {
		return nil, err
	}

	page := domain.PageRequest{
		Page: input.Page,
		Size: input.Size,
		Sort: domain.ResolveSort(input.SortBy, input.SortDir),
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	orders, total, err := uc.OrderRepo.ListOrders(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	totalPages := domain.TotalPages(total, page.Size)
	if page.Page > 0 && page.Page >= totalPages {
		return nil, domain.NewValidationError("Page index %d out of bounds. Total pages: %d", page.Page, totalPages)
	}

	return &orderdto.PagedOrdersOutput{
		Content:       orderdto.ToOrderOutputs(orders),
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          page.Page+1 >= totalPages,
	}, nil
}

func buildFilter(scope domain.Scope, input *orderdto.ListOrdersInput) (domain.OrderFilter, error) {
	filter := domain.OrderFilter{
		UserID:      scope.OwnerFilter(),
		CreatedFrom: input.CreatedFrom,
		CreatedTo:   input.CreatedTo,
		MinPrice:    input.MinPrice,
		MaxPrice:    input.MaxPrice,
		MinQuantity: input.MinQty,
		MaxQuantity: input.MaxQty,
	}

	if strings.TrimSpace(input.OrderType) != "" {
		orderType, err := domain.ParseOrderType(input.OrderType)
		if err != nil {
			return filter, err
		}
		filter.Type = &orderType
	}
	if strings.TrimSpace(input.Status) != "" {
		status, err := domain.ParseOrderStatus(input.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if err := filter.Validate(); err != nil {
		return filter, err
	}
	return filter, nil
}
