package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
)

// OrderCache is a read-through cache of single orders keyed by id.
type OrderCache struct {
	store Store
	ttl   time.Duration
	log   *slog.Logger
	rec   Recorder
}

func NewOrderCache(store Store, ttl time.Duration, opts ...Option) *OrderCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	o := buildOptions(opts)
	return &OrderCache{store: store, ttl: ttl, log: o.log, rec: o.recorder}
}

func (c *OrderCache) Get(ctx context.Context, orderID int64) (*domain.Order, bool) {
	raw, err := c.store.Get(ctx, OrderKey(orderID))
	if err != nil {
		if !IsMiss(err) {
			c.rec.CacheError("get")
			c.log.Warn("failed to read cached order", "order_id", orderID, "error", err)
		}
		c.rec.CacheMiss(ViewOrder, "absent")
		return nil, false
	}

	var order domain.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		c.rec.CacheMiss(ViewOrder, "undecodable")
		return nil, false
	}
	c.rec.CacheHit(ViewOrder)
	return &order, true
}

func (c *OrderCache) Put(ctx context.Context, order *domain.Order) {
	payload, err := json.Marshal(order)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, OrderKey(order.ID), payload, c.ttl); err != nil {
		c.rec.CacheError("set")
		c.log.Warn("failed to cache order", "order_id", order.ID, "error", err)
	}
}

func (c *OrderCache) Evict(ctx context.Context, orderID int64) error {
	if err := c.store.Delete(ctx, OrderKey(orderID)); err != nil {
		c.rec.CacheError("del")
		c.log.Warn("failed to evict cached order", "order_id", orderID, "error", err)
		return err
	}
	return nil
}
