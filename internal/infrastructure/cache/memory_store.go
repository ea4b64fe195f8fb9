package cache

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"
)

var errWrongType = errors.New("WRONGTYPE operation against a key holding the wrong kind of value")

type memoryEntry struct {
	value     []byte
	list      [][]byte
	isList    bool
	expiresAt time.Time
}

// MemoryStore is an in-process Store for single-instance runs and tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

// lookup returns the live entry for key, dropping it if expired. Callers hold mu.
func (s *MemoryStore) lookup(key string) (*memoryEntry, bool) {
	entry, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.entries, key)
		return nil, false
	}
	return entry, true
}

func (s *MemoryStore) deadline(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return s.now().Add(ttl)
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.lookup(key)
	if !ok {
		return nil, &Error{Op: "get", Key: key, Err: ErrMiss}
	}
	if entry.isList {
		return nil, &Error{Op: "get", Key: key, Err: errWrongType}
	}
	return append([]byte(nil), entry.value...), nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &memoryEntry{
		value:     append([]byte(nil), value...),
		expiresAt: s.deadline(ttl),
	}
	return nil
}

func (s *MemoryStore) Incr(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.lookup(key)
	if !ok {
		entry = &memoryEntry{value: []byte("0")}
		s.entries[key] = entry
	}
	if entry.isList {
		return 0, &Error{Op: "incr", Key: key, Err: errWrongType}
	}
	current, err := strconv.ParseInt(string(entry.value), 10, 64)
	if err != nil {
		return 0, &Error{Op: "incr", Key: key, Err: err}
	}
	current++
	entry.value = []byte(strconv.FormatInt(current, 10))
	return current, nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) LPush(ctx context.Context, key string, values ...[]byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.lookup(key)
	if !ok {
		entry = &memoryEntry{isList: true}
		s.entries[key] = entry
	}
	if !entry.isList {
		return 0, &Error{Op: "lpush", Key: key, Err: errWrongType}
	}

	pushed := make([][]byte, 0, len(values)+len(entry.list))
	for i := len(values) - 1; i >= 0; i-- {
		pushed = append(pushed, append([]byte(nil), values[i]...))
	}
	entry.list = append(pushed, entry.list...)
	return int64(len(entry.list)), nil
}

func (s *MemoryStore) LTrim(ctx context.Context, key string, start, stop int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.lookup(key)
	if !ok {
		return nil
	}
	if !entry.isList {
		return &Error{Op: "ltrim", Key: key, Err: errWrongType}
	}

	from, to := listBounds(int64(len(entry.list)), start, stop)
	if from > to {
		delete(s.entries, key)
		return nil
	}
	entry.list = entry.list[from : to+1]
	return nil
}

func (s *MemoryStore) LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.lookup(key)
	if !ok {
		return [][]byte{}, nil
	}
	if !entry.isList {
		return nil, &Error{Op: "lrange", Key: key, Err: errWrongType}
	}

	from, to := listBounds(int64(len(entry.list)), start, stop)
	out := [][]byte{}
	for i := from; i <= to; i++ {
		out = append(out, append([]byte(nil), entry.list[i]...))
	}
	return out, nil
}

func (s *MemoryStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.lookup(key)
	if !ok {
		return nil
	}
	if ttl <= 0 {
		delete(s.entries, key)
		return nil
	}
	entry.expiresAt = s.deadline(ttl)
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// listBounds resolves Redis-style inclusive indexes against a list of
// length n. An empty range is reported as from > to.
func listBounds(n, start, stop int64) (int64, int64) {
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	return start, stop
}
