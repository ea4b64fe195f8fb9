package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
)

const ViewOrder ViewKind = "order"

func CountKey(owner int64) string {
	return fmt.Sprintf("user:%d:order_count", owner)
}

func RecentKey(owner int64) string {
	return fmt.Sprintf("user:%d:recent_orders", owner)
}

func OrderKey(orderID int64) string {
	return fmt.Sprintf("order:%d", orderID)
}

// Recorder receives cache outcomes, typically a Prometheus collector.
type Recorder interface {
	CacheHit(view ViewKind)
	CacheMiss(view ViewKind, reason string)
	DirtyMarked(view ViewKind)
	CacheError(op string)
}

type nopRecorder struct{}

func (nopRecorder) CacheHit(ViewKind)          {}
func (nopRecorder) CacheMiss(ViewKind, string) {}
func (nopRecorder) DirtyMarked(ViewKind)       {}
func (nopRecorder) CacheError(string)          {}

type ViewsConfig struct {
	RecentLimit int
	CountTTL    time.Duration
	RecentTTL   time.Duration
}

func DefaultViewsConfig() ViewsConfig {
	return ViewsConfig{
		RecentLimit: 10,
		CountTTL:    5 * time.Minute,
		RecentTTL:   5 * time.Minute,
	}
}

type Option func(*options)

type options struct {
	log      *slog.Logger
	recorder Recorder
}

func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

func WithRecorder(rec Recorder) Option {
	return func(o *options) { o.recorder = rec }
}

func buildOptions(opts []Option) options {
	o := options{log: slog.Default(), recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = slog.Default()
	}
	if o.recorder == nil {
		o.recorder = nopRecorder{}
	}
	return o
}

// OwnerViews maintains the per-owner order counter and recent-orders list.
// Cache failures never reach callers: they mark the view dirty, and a dirty
// view reads as unknown until a complete reseed clears it.
type OwnerViews struct {
	store  Store
	cfg    ViewsConfig
	log    *slog.Logger
	rec    Recorder
	count  *dirtySet
	recent *dirtySet
}

func NewOwnerViews(store Store, cfg ViewsConfig, opts ...Option) *OwnerViews {
	defaults := DefaultViewsConfig()
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = defaults.RecentLimit
	}
	if cfg.CountTTL <= 0 {
		cfg.CountTTL = defaults.CountTTL
	}
	if cfg.RecentTTL <= 0 {
		cfg.RecentTTL = defaults.RecentTTL
	}

	o := buildOptions(opts)
	seq := new(atomic.Uint64)
	return &OwnerViews{
		store:  store,
		cfg:    cfg,
		log:    o.log,
		rec:    o.recorder,
		count:  newDirtySet(seq),
		recent: newDirtySet(seq),
	}
}

func (v *OwnerViews) RecentLimit() int {
	return v.cfg.RecentLimit
}

func (v *OwnerViews) dirty(kind ViewKind) *dirtySet {
	if kind == ViewCount {
		return v.count
	}
	return v.recent
}

func (v *OwnerViews) markDirty(kind ViewKind, owner int64, reason string, err error) {
	v.dirty(kind).mark(owner)
	v.rec.DirtyMarked(kind)
	if err != nil {
		v.log.Warn("cache view marked dirty", "view", kind, "owner", owner, "reason", reason, "error", err)
		return
	}
	v.log.Debug("cache view marked dirty", "view", kind, "owner", owner, "reason", reason)
}

func (v *OwnerViews) cacheError(op string) {
	v.rec.CacheError(op)
}

func (v *OwnerViews) IsDirty(kind ViewKind, owner int64) bool {
	return v.dirty(kind).isDirty(owner)
}

// DirtyOwners lists owners whose view of the given kind is currently dirty.
func (v *OwnerViews) DirtyOwners(kind ViewKind) []int64 {
	return v.dirty(kind).owners()
}

// Snapshot must be taken before the authoritative store is read, so that a
// mark landing between that read and the reseed write survives the reseed.
func (v *OwnerViews) Snapshot(kind ViewKind, owner int64) Snapshot {
	gen, dirty := v.dirty(kind).generation(owner)
	return Snapshot{Kind: kind, Owner: owner, gen: gen, dirty: dirty}
}

func (v *OwnerViews) settle(snap Snapshot) {
	if snap.dirty {
		v.dirty(snap.Kind).clear(snap.Owner, snap.gen)
	}
}

// discardCreated handles a write that created the key: the fresh value only
// reflects this write, so the key is dropped and the view left for a reseed.
func (v *OwnerViews) discardCreated(ctx context.Context, kind ViewKind, owner int64, key string) {
	v.markDirty(kind, owner, "write created key", nil)
	if err := v.store.Delete(ctx, key); err != nil {
		v.cacheError("del")
		v.log.Warn("failed to drop freshly created cache key", "key", key, "error", err)
	}
}

func (v *OwnerViews) IncrementCount(ctx context.Context, owner int64) {
	if v.count.isDirty(owner) {
		v.markDirty(ViewCount, owner, "write to dirty view", nil)
		return
	}

	key := CountKey(owner)
	n, err := v.store.Incr(ctx, key)
	if err != nil {
		v.cacheError("incr")
		v.markDirty(ViewCount, owner, "increment failed", err)
		return
	}
	if n == 1 {
		v.discardCreated(ctx, ViewCount, owner, key)
	}
}

func (v *OwnerViews) GetCount(ctx context.Context, owner int64) (int64, bool) {
	if v.count.isDirty(owner) {
		v.rec.CacheMiss(ViewCount, "dirty")
		return 0, false
	}

	raw, err := v.store.Get(ctx, CountKey(owner))
	if err != nil {
		if IsMiss(err) {
			v.rec.CacheMiss(ViewCount, "absent")
			return 0, false
		}
		v.cacheError("get")
		v.rec.CacheMiss(ViewCount, "error")
		v.log.Warn("failed to read order count view", "owner", owner, "error", err)
		return 0, false
	}

	count, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		v.rec.CacheMiss(ViewCount, "undecodable")
		return 0, false
	}

	v.rec.CacheHit(ViewCount)
	return count, true
}

func (v *OwnerViews) SeedCount(ctx context.Context, owner int64, value int64) bool {
	return v.SeedCountSince(ctx, v.Snapshot(ViewCount, owner), value)
}

// SeedCountSince writes an absolute count and reports whether the write
// succeeded. The dirty mark captured by snap is cleared on success only.
func (v *OwnerViews) SeedCountSince(ctx context.Context, snap Snapshot, value int64) bool {
	key := CountKey(snap.Owner)
	if err := v.store.Set(ctx, key, []byte(strconv.FormatInt(value, 10)), v.cfg.CountTTL); err != nil {
		v.cacheError("set")
		v.markDirty(ViewCount, snap.Owner, "seed failed", err)
		return false
	}
	v.settle(snap)
	return true
}

func (v *OwnerViews) PushRecent(ctx context.Context, owner int64, order *domain.Order) {
	if v.recent.isDirty(owner) {
		v.markDirty(ViewRecent, owner, "write to dirty view", nil)
		return
	}

	payload, err := json.Marshal(order)
	if err != nil {
		v.markDirty(ViewRecent, owner, "encode failed", err)
		return
	}

	key := RecentKey(owner)
	length, err := v.store.LPush(ctx, key, payload)
	if err != nil {
		v.cacheError("lpush")
		v.markDirty(ViewRecent, owner, "push failed", err)
		return
	}
	if length == 1 {
		v.discardCreated(ctx, ViewRecent, owner, key)
		return
	}

	if err := v.store.LTrim(ctx, key, 0, int64(v.cfg.RecentLimit-1)); err != nil {
		v.cacheError("ltrim")
		v.markDirty(ViewRecent, owner, "trim failed", err)
		return
	}
	if err := v.store.Expire(ctx, key, v.cfg.RecentTTL); err != nil {
		v.cacheError("expire")
		v.markDirty(ViewRecent, owner, "expire failed", err)
	}
}

// InvalidateRecent marks the view dirty before attempting the delete, so a
// failed delete cannot leave a trusted stale list behind.
func (v *OwnerViews) InvalidateRecent(ctx context.Context, owner int64) {
	v.markDirty(ViewRecent, owner, "invalidated", nil)
	if err := v.store.Delete(ctx, RecentKey(owner)); err != nil {
		v.cacheError("del")
		v.log.Warn("failed to delete recent orders view", "owner", owner, "error", err)
	}
}

func (v *OwnerViews) GetRecent(ctx context.Context, owner int64) ([]*domain.Order, bool) {
	if v.recent.isDirty(owner) {
		v.rec.CacheMiss(ViewRecent, "dirty")
		return nil, false
	}

	items, err := v.store.LRange(ctx, RecentKey(owner), 0, int64(v.cfg.RecentLimit-1))
	if err != nil {
		v.cacheError("lrange")
		v.rec.CacheMiss(ViewRecent, "error")
		v.log.Warn("failed to read recent orders view", "owner", owner, "error", err)
		return nil, false
	}
	if len(items) == 0 {
		v.rec.CacheMiss(ViewRecent, "absent")
		return nil, false
	}

	orders := make([]*domain.Order, 0, len(items))
	for _, item := range items {
		var order domain.Order
		if err := json.Unmarshal(item, &order); err != nil {
			v.rec.CacheMiss(ViewRecent, "undecodable")
			v.log.Warn("undecodable recent orders entry", "owner", owner, "error", err)
			return nil, false
		}
		orders = append(orders, &order)
	}

	v.rec.CacheHit(ViewRecent)
	return orders, true
}

func (v *OwnerViews) ReseedRecent(ctx context.Context, owner int64, orders []*domain.Order) bool {
	return v.ReseedRecentSince(ctx, v.Snapshot(ViewRecent, owner), orders)
}

// ReseedRecentSince replaces the list with orders (newest first). An empty
// slice only deletes the key.
func (v *OwnerViews) ReseedRecentSince(ctx context.Context, snap Snapshot, orders []*domain.Order) bool {
	if len(orders) > v.cfg.RecentLimit {
		orders = orders[:v.cfg.RecentLimit]
	}

	// Oldest first, so the newest ends up at the head.
	payloads := make([][]byte, 0, len(orders))
	for i := len(orders) - 1; i >= 0; i-- {
		payload, err := json.Marshal(orders[i])
		if err != nil {
			v.markDirty(ViewRecent, snap.Owner, "encode failed", err)
			return false
		}
		payloads = append(payloads, payload)
	}

	key := RecentKey(snap.Owner)
	if err := v.store.Delete(ctx, key); err != nil {
		v.cacheError("del")
		v.markDirty(ViewRecent, snap.Owner, "reseed delete failed", err)
		return false
	}
	if len(payloads) == 0 {
		v.settle(snap)
		return true
	}

	if _, err := v.store.LPush(ctx, key, payloads...); err != nil {
		v.cacheError("lpush")
		v.markDirty(ViewRecent, snap.Owner, "reseed push failed", err)
		return false
	}
	if err := v.store.LTrim(ctx, key, 0, int64(v.cfg.RecentLimit-1)); err != nil {
		v.cacheError("ltrim")
		v.markDirty(ViewRecent, snap.Owner, "reseed trim failed", err)
		return false
	}
	if err := v.store.Expire(ctx, key, v.cfg.RecentTTL); err != nil {
		v.cacheError("expire")
		v.markDirty(ViewRecent, snap.Owner, "reseed expire failed", err)
		return false
	}

	v.settle(snap)
	return true
}
