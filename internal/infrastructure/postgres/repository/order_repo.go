package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
	"github.com/LavaJover/shvark-trade-order-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-trade-order-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	orderModel := mappers.ToGORMOrder(order)
	if err := r.DB.WithContext(ctx).Create(orderModel).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	created := mappers.ToDomainOrder(orderModel)
	*order = *created
	return nil
}

func (r *DefaultOrderRepository) GetOrderByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	var order models.OrderModel
	if err := r.DB.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get order %d: %w", orderID, err)
	}

	return mappers.ToDomainOrder(&order), nil
}

// UpdateOrderStatus is a compare-and-set on the version column: the row is
// only written while it still carries expectedVersion.
func (r *DefaultOrderRepository) UpdateOrderStatus(
	ctx context.Context,
	orderID, expectedVersion int64,
	newStatus domain.OrderStatus,
) (*domain.Order, error) {
	db := r.DB.WithContext(ctx)

	res := db.Model(&models.OrderModel{}).
		Where("id = ? AND version = ?", orderID, expectedVersion).
		Updates(map[string]interface{}{
			"status":     newStatus,
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update order %d status: %w", orderID, res.Error)
	}

	if res.RowsAffected == 0 {
		var exists int64
		if err := db.Model(&models.OrderModel{}).Where("id = ?", orderID).Count(&exists).Error; err != nil {
			return nil, fmt.Errorf("failed to check order %d: %w", orderID, err)
		}
		if exists == 0 {
			return nil, domain.ErrRecordNotFound
		}
		return nil, domain.ErrVersionConflict
	}

	return r.GetOrderByID(ctx, orderID)
}

func (r *DefaultOrderRepository) FindRecentByUserID(ctx context.Context, userID int64, limit int) ([]*domain.Order, error) {
	var orderModels []models.OrderModel
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&orderModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find recent orders: %w", err)
	}

	return mappers.ToDomainOrders(orderModels), nil
}

func (r *DefaultOrderRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return total, nil
}

func (r *DefaultOrderRepository) ListOrders(
	ctx context.Context,
	filter domain.OrderFilter,
	page domain.PageRequest,
) ([]*domain.Order, int64, error) {
	var orderModels []models.OrderModel
	var total int64

	baseQuery := func() *gorm.DB {
		return r.DB.WithContext(ctx).
			Model(&models.OrderModel{}).
			Scopes(FilterScopes(filter)...)
	}

	if err := baseQuery().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	err := baseQuery().
		Scopes(SortScope(page.Sort)).
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&orderModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find orders: %w", err)
	}

	return mappers.ToDomainOrders(orderModels), total, nil
}

// FilterScopes turns each present predicate of filter into a WHERE clause.
func FilterScopes(filter domain.OrderFilter) []func(*gorm.DB) *gorm.DB {
	var scopes []func(*gorm.DB) *gorm.DB
	where := func(query string, arg interface{}) {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(query, arg)
		})
	}

	if filter.UserID != nil {
		where("user_id = ?", *filter.UserID)
	}
	if filter.Type != nil {
		where("order_type = ?", *filter.Type)
	}
	if filter.Status != nil {
		where("status = ?", *filter.Status)
	}
	if filter.CreatedFrom != nil {
		where("created_at >= ?", filter.CreatedFrom.UTC())
	}
	if filter.CreatedTo != nil {
		where("created_at <= ?", filter.CreatedTo.UTC())
	}
	if filter.MinPrice != nil {
		where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		where("price <= ?", *filter.MaxPrice)
	}
	if filter.MinQuantity != nil {
		where("quantity >= ?", *filter.MinQuantity)
	}
	if filter.MaxQuantity != nil {
		where("quantity <= ?", *filter.MaxQuantity)
	}
	return scopes
}

// SortScope orders by an allow-listed column, with id as the tie-breaker.
func SortScope(sort domain.Sort) func(*gorm.DB) *gorm.DB {
	if sort.Column == "" {
		sort = domain.ResolveSort(sort.Field, string(sort.Direction))
	}
	desc := sort.Direction != domain.SortAsc
	return func(db *gorm.DB) *gorm.DB {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: sort.Column}, Desc: desc})
		if sort.Column != "id" {
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc})
		}
		return db
	}
}
