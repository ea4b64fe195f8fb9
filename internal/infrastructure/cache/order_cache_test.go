package cache

import (
	"context"
	"testing"
	"time"
)

func TestOrderCacheReadThrough(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	orders := NewOrderCache(store, time.Minute, WithLogger(discardLogger()))

	if _, ok := orders.Get(ctx, 5); ok {
		t.Fatal("empty cache should miss")
	}

	order := testOrder(5, 2, baseTime)
	order.Version = 3
	orders.Put(ctx, order)

	got, ok := orders.Get(ctx, 5)
	if !ok {
		t.Fatal("cached order should hit")
	}
	if got.ID != 5 || got.UserID != 2 || got.Version != 3 || !got.Price.Equal(order.Price) {
		t.Fatalf("cached order = %+v", got)
	}

	if err := orders.Evict(ctx, 5); err != nil {
		t.Fatalf("Evict: %v", err)
	}
	if _, ok := orders.Get(ctx, 5); ok {
		t.Fatal("evicted order should miss")
	}
}

func TestOrderCacheExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := baseTime
	store.now = func() time.Time { return now }
	orders := NewOrderCache(store, time.Minute, WithLogger(discardLogger()))

	orders.Put(ctx, testOrder(1, 1, baseTime))
	now = now.Add(61 * time.Second)

	if _, ok := orders.Get(ctx, 1); ok {
		t.Fatal("order should have expired")
	}
}

func TestOrderCacheFailures(t *testing.T) {
	ctx := context.Background()
	store := newFaultyStore()
	orders := NewOrderCache(store, time.Minute, WithLogger(discardLogger()))

	orders.Put(ctx, testOrder(1, 1, baseTime))
	store.setFail("get", true)
	if _, ok := orders.Get(ctx, 1); ok {
		t.Fatal("read failure should miss")
	}

	store.setFail("del", true)
	if err := orders.Evict(ctx, 1); err == nil {
		t.Fatal("Evict should surface the delete failure")
	}
}
