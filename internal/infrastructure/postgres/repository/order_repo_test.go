package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
	"github.com/LavaJover/shvark-trade-order-service/internal/infrastructure/postgres/models"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var t0 = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbName := filepath.Join(t.TempDir(), "orders.db")
	db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger:  logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.AutoMigrate(&models.UserModel{}, &models.OrderModel{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedOrder(t *testing.T, repo *DefaultOrderRepository, o domain.Order) *domain.Order {
	t.Helper()
	if o.Type == "" {
		o.Type = domain.TypeBuy
	}
	if o.Status == "" {
		o.Status = domain.StatusNew
	}
	if o.Quantity == 0 {
		o.Quantity = 1
	}
	if o.Price.IsZero() {
		o.Price = decimal.NewFromInt(100)
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = t0
	}
	o.UpdatedAt = o.CreatedAt
	if err := repo.CreateOrder(context.Background(), &o); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	return &o
}

func TestCreateAndGetOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewDefaultOrderRepository(setupTestDB(t))

	order := &domain.Order{
		Type:     domain.TypeSell,
		Quantity: 5,
		Price:    decimal.RequireFromString("12.3456"),
		Status:   domain.StatusNew,
		UserID:   7,
	}
	if err := repo.CreateOrder(ctx, order); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.ID == 0 {
		t.Fatal("store should assign an id")
	}
	if order.CreatedAt.IsZero() || order.UpdatedAt.IsZero() {
		t.Fatal("timestamps should be set on create")
	}

	got, err := repo.GetOrderByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetOrderByID: %v", err)
	}
	if got.Type != domain.TypeSell || got.Quantity != 5 || got.UserID != 7 || got.Version != 0 {
		t.Fatalf("got %+v", got)
	}
	if !got.Price.Equal(decimal.RequireFromString("12.3456")) {
		t.Fatalf("price = %s", got.Price)
	}

	if _, err := repo.GetOrderByID(ctx, order.ID+100); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("absent order error = %v", err)
	}
}

func TestUpdateOrderStatusVersionCheck(t *testing.T) {
	ctx := context.Background()
	repo := NewDefaultOrderRepository(setupTestDB(t))
	order := seedOrder(t, repo, domain.Order{UserID: 1})

	updated, err := repo.UpdateOrderStatus(ctx, order.ID, 0, domain.StatusProcessing)
	if err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	if updated.Status != domain.StatusProcessing || updated.Version != 1 {
		t.Fatalf("updated = %+v", updated)
	}
	if !updated.CreatedAt.Equal(order.CreatedAt) {
		t.Fatalf("created_at changed: %v -> %v", order.CreatedAt, updated.CreatedAt)
	}

	_, err = repo.UpdateOrderStatus(ctx, order.ID, 0, domain.StatusCancelled)
	if !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("stale version error = %v", err)
	}

	current, _ := repo.GetOrderByID(ctx, order.ID)
	if current.Status != domain.StatusProcessing || current.Version != 1 {
		t.Fatalf("stale write must not change the row: %+v", current)
	}

	if _, err := repo.UpdateOrderStatus(ctx, 9999, 0, domain.StatusProcessing); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("absent order error = %v", err)
	}
}

func TestFindRecentAndCount(t *testing.T) {
	ctx := context.Background()
	repo := NewDefaultOrderRepository(setupTestDB(t))

	for i := 0; i < 4; i++ {
		seedOrder(t, repo, domain.Order{UserID: 1, CreatedAt: t0.Add(time.Duration(i) * time.Minute)})
	}
	seedOrder(t, repo, domain.Order{UserID: 2, CreatedAt: t0.Add(time.Hour)})

	recent, err := repo.FindRecentByUserID(ctx, 1, 3)
	if err != nil {
		t.Fatalf("FindRecentByUserID: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("len = %d, want 3", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].CreatedAt.After(recent[i-1].CreatedAt) {
			t.Fatalf("not newest first: %v", recent)
		}
	}
	if !recent[0].CreatedAt.Equal(t0.Add(3 * time.Minute)) {
		t.Fatalf("head created at %v", recent[0].CreatedAt)
	}

	count, err := repo.CountByUserID(ctx, 1)
	if err != nil || count != 4 {
		t.Fatalf("CountByUserID = %d, %v; want 4", count, err)
	}
	if count, _ := repo.CountByUserID(ctx, 3); count != 0 {
		t.Fatalf("count for unknown owner = %d", count)
	}
}

func ptr[T any](v T) *T {
	return &v
}

func TestListOrdersFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewDefaultOrderRepository(setupTestDB(t))

	seedOrder(t, repo, domain.Order{UserID: 1, Type: domain.TypeBuy, Quantity: 1, Price: decimal.NewFromInt(10), CreatedAt: t0})
	seedOrder(t, repo, domain.Order{UserID: 1, Type: domain.TypeSell, Quantity: 5, Price: decimal.NewFromInt(20), CreatedAt: t0.Add(time.Hour)})
	seedOrder(t, repo, domain.Order{UserID: 2, Type: domain.TypeBuy, Quantity: 10, Price: decimal.RequireFromString("30.5"), Status: domain.StatusCompleted, CreatedAt: t0.Add(2 * time.Hour)})
	seedOrder(t, repo, domain.Order{UserID: 3, Type: domain.TypeSell, Quantity: 20, Price: decimal.NewFromInt(40), Status: domain.StatusCancelled, CreatedAt: t0.Add(3 * time.Hour)})

	defaultPage := domain.PageRequest{Page: 0, Size: 20, Sort: domain.ResolveSort("", "")}

	tests := []struct {
		name    string
		filter  domain.OrderFilter
		page    domain.PageRequest
		wantQty []int64
		total   int64
	}{
		{"no filters newest first", domain.OrderFilter{}, defaultPage, []int64{20, 10, 5, 1}, 4},
		{"owner", domain.OrderFilter{UserID: ptr(int64(1))}, defaultPage, []int64{5, 1}, 2},
		{"type", domain.OrderFilter{Type: ptr(domain.TypeBuy)}, defaultPage, []int64{10, 1}, 2},
		{"status", domain.OrderFilter{Status: ptr(domain.StatusCancelled)}, defaultPage, []int64{20}, 1},
		{"created from only", domain.OrderFilter{CreatedFrom: ptr(t0.Add(2 * time.Hour))}, defaultPage, []int64{20, 10}, 2},
		{"created range", domain.OrderFilter{CreatedFrom: ptr(t0.Add(time.Hour)), CreatedTo: ptr(t0.Add(2 * time.Hour))}, defaultPage, []int64{10, 5}, 2},
		{"min price", domain.OrderFilter{MinPrice: ptr(decimal.NewFromInt(25))}, defaultPage, []int64{20, 10}, 2},
		{"max price", domain.OrderFilter{MaxPrice: ptr(decimal.NewFromInt(20))}, defaultPage, []int64{5, 1}, 2},
		{"quantity range", domain.OrderFilter{MinQuantity: ptr(int64(5)), MaxQuantity: ptr(int64(10))}, defaultPage, []int64{10, 5}, 2},
		{"combined", domain.OrderFilter{UserID: ptr(int64(1)), Type: ptr(domain.TypeSell)}, defaultPage, []int64{5}, 1},
		{"price ascending", domain.OrderFilter{}, domain.PageRequest{Size: 20, Sort: domain.ResolveSort("price", "ASC")}, []int64{1, 5, 10, 20}, 4},
		{"unknown sort field", domain.OrderFilter{}, domain.PageRequest{Size: 20, Sort: domain.ResolveSort("DROP TABLE", "asc")}, []int64{1, 5, 10, 20}, 4},
		{"second page", domain.OrderFilter{}, domain.PageRequest{Page: 1, Size: 3, Sort: domain.ResolveSort("quantity", "desc")}, []int64{1}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders, total, err := repo.ListOrders(ctx, tt.filter, tt.page)
			if err != nil {
				t.Fatalf("ListOrders: %v", err)
			}
			if total != tt.total {
				t.Errorf("total = %d, want %d", total, tt.total)
			}
			got := make([]int64, len(orders))
			for i, o := range orders {
				got[i] = o.Quantity
			}
			if len(got) != len(tt.wantQty) {
				t.Fatalf("quantities = %v, want %v", got, tt.wantQty)
			}
			for i := range got {
				if got[i] != tt.wantQty[i] {
					t.Fatalf("quantities = %v, want %v", got, tt.wantQty)
				}
			}
		})
	}
}

func TestUserExists(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewDefaultUserRepository(db)

	user := models.UserModel{Email: "trader@example.com", Role: "USER"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	if ok, err := repo.ExistsByID(ctx, user.ID); err != nil || !ok {
		t.Fatalf("ExistsByID(%d) = %v, %v", user.ID, ok, err)
	}
	if ok, err := repo.ExistsByID(ctx, user.ID+1); err != nil || ok {
		t.Fatalf("ExistsByID(absent) = %v, %v", ok, err)
	}
}
