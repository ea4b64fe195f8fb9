package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
	"github.com/shopspring/decimal"
)

var errInjected = errors.New("injected failure")

// faultyStore wraps a MemoryStore and fails the operations named in fail.
type faultyStore struct {
	*MemoryStore

	mu     sync.Mutex
	fail   map[string]bool
	before func(op string)
}

func newFaultyStore() *faultyStore {
	return &faultyStore{MemoryStore: NewMemoryStore(), fail: map[string]bool{}}
}

func (s *faultyStore) setFail(op string, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[op] = on
}

func (s *faultyStore) check(op, key string) error {
	s.mu.Lock()
	hook := s.before
	failing := s.fail[op]
	s.mu.Unlock()

	if hook != nil {
		hook(op)
	}
	if failing {
		return &Error{Op: op, Key: key, Err: errInjected}
	}
	return nil
}

func (s *faultyStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := s.check("get", key); err != nil {
		return nil, err
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *faultyStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.check("set", key); err != nil {
		return err
	}
	return s.MemoryStore.Set(ctx, key, value, ttl)
}

func (s *faultyStore) Incr(ctx context.Context, key string) (int64, error) {
	if err := s.check("incr", key); err != nil {
		return 0, err
	}
	return s.MemoryStore.Incr(ctx, key)
}

func (s *faultyStore) Delete(ctx context.Context, key string) error {
	if err := s.check("del", key); err != nil {
		return err
	}
	return s.MemoryStore.Delete(ctx, key)
}

func (s *faultyStore) LPush(ctx context.Context, key string, values ...[]byte) (int64, error) {
	if err := s.check("lpush", key); err != nil {
		return 0, err
	}
	return s.MemoryStore.LPush(ctx, key, values...)
}

func (s *faultyStore) LTrim(ctx context.Context, key string, start, stop int64) error {
	if err := s.check("ltrim", key); err != nil {
		return err
	}
	return s.MemoryStore.LTrim(ctx, key, start, stop)
}

func (s *faultyStore) LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error) {
	if err := s.check("lrange", key); err != nil {
		return nil, err
	}
	return s.MemoryStore.LRange(ctx, key, start, stop)
}

func (s *faultyStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if err := s.check("expire", key); err != nil {
		return err
	}
	return s.MemoryStore.Expire(ctx, key, ttl)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testOrder(id, owner int64, created time.Time) *domain.Order {
	return &domain.Order{
		ID:        id,
		Type:      domain.TypeBuy,
		Quantity:  1,
		Price:     decimal.RequireFromString("10.5"),
		Status:    domain.StatusNew,
		UserID:    owner,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func orderIDs(orders []*domain.Order) []int64 {
	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	return ids
}

func equalIDs(got, want []int64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
