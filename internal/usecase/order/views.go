package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
	"github.com/LavaJover/shvark-trade-order-service/internal/infrastructure/cache"
	"github.com/LavaJover/shvark-trade-order-service/internal/usecase/access"
	orderdto "github.com/LavaJover/shvark-trade-order-service/internal/usecase/dto/order"
)

func (uc *DefaultOrderUsecase) ownerViewScope(ctx context.Context, caller domain.Caller, userID int64) (int64, error) {
	scope, err := access.ResolveScope(caller, &userID, access.OpOwnerViews)
	if err != nil {
		return 0, err
	}
	if caller.Role != domain.RoleUser {
		if err := uc.requireUser(ctx, scope.OwnerID); err != nil {
			return 0, err
		}
	}
	return scope.OwnerID, nil
}

func (uc *DefaultOrderUsecase) CountUserOrders(ctx context.Context, caller domain.Caller, userID int64) (*orderdto.OrderCountOutput, error) {
	owner, err := uc.ownerViewScope(ctx, caller, userID)
	if err != nil {
		return nil, err
	}

	if count, ok := uc.Views.GetCount(ctx, owner); ok {
		return &orderdto.OrderCountOutput{UserID: owner, OrderCount: count}, nil
	}

	slog.Warn("order count view unavailable, falling back to store", "user_id", owner)
	count, err := uc.reseedCount(ctx, owner)
	if err != nil {
		return nil, err
	}
	return &orderdto.OrderCountOutput{UserID: owner, OrderCount: count}, nil
}

func (uc *DefaultOrderUsecase) GetRecentOrders(ctx context.Context, caller domain.Caller, userID int64) ([]*orderdto.OrderOutput, error) {
	owner, err := uc.ownerViewScope(ctx, caller, userID)
	if err != nil {
		return nil, err
	}

	if orders, ok := uc.Views.GetRecent(ctx, owner); ok {
		return orderdto.ToOrderOutputs(orders), nil
	}

	slog.Warn("recent orders view unavailable, falling back to store", "user_id", owner)
	orders, err := uc.reseedRecent(ctx, owner)
	if err != nil {
		return nil, err
	}
	return orderdto.ToOrderOutputs(orders), nil
}

// reseedCount recomputes the count from the store and writes it back. The
// snapshot is taken before the store read.
func (uc *DefaultOrderUsecase) reseedCount(ctx context.Context, owner int64) (int64, error) {
	snap := uc.Views.Snapshot(cache.ViewCount, owner)
	count, err := uc.OrderRepo.CountByUserID(ctx, owner)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	uc.recordReseed(cache.ViewCount, uc.Views.SeedCountSince(ctx, snap, count))
	return count, nil
}

func (uc *DefaultOrderUsecase) reseedRecent(ctx context.Context, owner int64) ([]*domain.Order, error) {
	snap := uc.Views.Snapshot(cache.ViewRecent, owner)
	orders, err := uc.OrderRepo.FindRecentByUserID(ctx, owner, uc.Views.RecentLimit())
	if err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}
	uc.recordReseed(cache.ViewRecent, uc.Views.ReseedRecentSince(ctx, snap, orders))
	return orders, nil
}

// RepairDirtyViews reseeds every view still marked dirty and returns how
// many were reseeded. Store failures are collected and the sweep goes on.
func (uc *DefaultOrderUsecase) RepairDirtyViews(ctx context.Context) (int, error) {
	var errs []error
	repaired := 0

	for _, owner := range uc.Views.DirtyOwners(cache.ViewCount) {
		if err := ctx.Err(); err != nil {
			return repaired, err
		}
		if _, err := uc.reseedCount(ctx, owner); err != nil {
			errs = append(errs, err)
			continue
		}
		if !uc.Views.IsDirty(cache.ViewCount, owner) {
			repaired++
		}
	}

	for _, owner := range uc.Views.DirtyOwners(cache.ViewRecent) {
		if err := ctx.Err(); err != nil {
			return repaired, err
		}
		if _, err := uc.reseedRecent(ctx, owner); err != nil {
			errs = append(errs, err)
			continue
		}
		if !uc.Views.IsDirty(cache.ViewRecent, owner) {
			repaired++
		}
	}

	return repaired, errors.Join(errs...)
}
