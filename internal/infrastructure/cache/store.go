package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrMiss is returned (wrapped in *Error) when a key does not exist.
var ErrMiss = errors.New("cache: key not found")

// Error describes a failed cache operation.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cache %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func IsMiss(err error) bool {
	return errors.Is(err, ErrMiss)
}

// Store is the capability set the views need from a key-value cache.
// Lists follow Redis semantics: index 0 is the head, LPush prepends and
// negative indexes count from the tail.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
	Delete(ctx context.Context, key string) error
	LPush(ctx context.Context, key string, values ...[]byte) (int64, error)
	LTrim(ctx context.Context, key string, start, stop int64) error
	LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close() error
}
