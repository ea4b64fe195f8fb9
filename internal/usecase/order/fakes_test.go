package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
	"github.com/LavaJover/shvark-trade-order-service/internal/infrastructure/cache"
)

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[int64]*domain.Order
	nextID int64
	now    time.Time

	countCalls  int
	recentCalls int

	// afterRead runs after GetOrderByID has copied the order, outside the lock.
	afterRead func()
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: map[int64]*domain.Order{},
		now:    time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (r *fakeOrderRepo) CreateOrder(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.now = r.now.Add(time.Second)
	order.ID = r.nextID
	order.CreatedAt = r.now
	order.UpdatedAt = r.now
	order.Version = 0

	stored := *order
	r.orders[order.ID] = &stored
	return nil
}

func (r *fakeOrderRepo) put(order domain.Order) *domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.now = r.now.Add(time.Second)
	order.ID = r.nextID
	order.CreatedAt = r.now
	order.UpdatedAt = r.now
	r.orders[order.ID] = &order
	copied := order
	return &copied
}

func (r *fakeOrderRepo) GetOrderByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	r.mu.Lock()
	stored, ok := r.orders[orderID]
	var copied domain.Order
	if ok {
		copied = *stored
	}
	hook := r.afterRead
	r.mu.Unlock()

	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	if hook != nil {
		hook()
	}
	return &copied, nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(ctx context.Context, orderID, expectedVersion int64, newStatus domain.OrderStatus) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	if stored.Version != expectedVersion {
		return nil, domain.ErrVersionConflict
	}
	r.now = r.now.Add(time.Second)
	stored.Status = newStatus
	stored.Version++
	stored.UpdatedAt = r.now

	copied := *stored
	return &copied, nil
}

func (r *fakeOrderRepo) ownerOrders(userID int64) []*domain.Order {
	var out []*domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			copied := *o
			out = append(out, &copied)
		}
	}
	sortNewestFirst(out)
	return out
}

func sortNewestFirst(orders []*domain.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

func (r *fakeOrderRepo) FindRecentByUserID(ctx context.Context, userID int64, limit int) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.recentCalls++
	out := r.ownerOrders(userID)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeOrderRepo) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.countCalls++
	return int64(len(r.ownerOrders(userID))), nil
}

func (r *fakeOrderRepo) ListOrders(ctx context.Context, filter domain.OrderFilter, page domain.PageRequest) ([]*domain.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*domain.Order
	for _, o := range r.orders {
		if filter.UserID != nil && o.UserID != *filter.UserID {
			continue
		}
		if filter.Type != nil && o.Type != *filter.Type {
			continue
		}
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		copied := *o
		matched = append(matched, &copied)
	}
	sortNewestFirst(matched)

	total := int64(len(matched))
	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeOrderRepo) calls() (count, recent int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.countCalls, r.recentCalls
}

type fakeUserRepo struct {
	users map[int64]bool
}

func (r *fakeUserRepo) ExistsByID(ctx context.Context, userID int64) (bool, error) {
	return r.users[userID], nil
}

var errCacheDown = errors.New("cache unavailable")

// flakyStore fails the named operations, or every operation while down.
type flakyStore struct {
	*cache.MemoryStore

	mu   sync.Mutex
	down bool
	fail map[string]bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: cache.NewMemoryStore(), fail: map[string]bool{}}
}

func (s *flakyStore) setDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = down
}

func (s *flakyStore) setFail(op string, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[op] = on
}

func (s *flakyStore) check(op, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down || s.fail[op] {
		return &cache.Error{Op: op, Key: key, Err: errCacheDown}
	}
	return nil
}

func (s *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := s.check("get", key); err != nil {
		return nil, err
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.check("set", key); err != nil {
		return err
	}
	return s.MemoryStore.Set(ctx, key, value, ttl)
}

func (s *flakyStore) Incr(ctx context.Context, key string) (int64, error) {
	if err := s.check("incr", key); err != nil {
		return 0, err
	}
	return s.MemoryStore.Incr(ctx, key)
}

func (s *flakyStore) Delete(ctx context.Context, key string) error {
	if err := s.check("del", key); err != nil {
		return err
	}
	return s.MemoryStore.Delete(ctx, key)
}

func (s *flakyStore) LPush(ctx context.Context, key string, values ...[]byte) (int64, error) {
	if err := s.check("lpush", key); err != nil {
		return 0, err
	}
	return s.MemoryStore.LPush(ctx, key, values...)
}

func (s *flakyStore) LTrim(ctx context.Context, key string, start, stop int64) error {
	if err := s.check("ltrim", key); err != nil {
		return err
	}
	return s.MemoryStore.LTrim(ctx, key, start, stop)
}

func (s *flakyStore) LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error) {
	if err := s.check("lrange", key); err != nil {
		return nil, err
	}
	return s.MemoryStore.LRange(ctx, key, start, stop)
}

func (s *flakyStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if err := s.check("expire", key); err != nil {
		return err
	}
	return s.MemoryStore.Expire(ctx, key, ttl)
}

type capturePublisher struct {
	topics chan string
	msgs   chan domain.Message
}

func newCapturePublisher() *capturePublisher {
	return &capturePublisher{topics: make(chan string, 64), msgs: make(chan domain.Message, 64)}
}

func (p *capturePublisher) Publish(ctx context.Context, topic string, msgs ...domain.Message) error {
	for _, m := range msgs {
		p.topics <- topic
		p.msgs <- m
	}
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
