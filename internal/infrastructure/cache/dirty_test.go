package cache

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestDirtySetMarkAndClear(t *testing.T) {
	d := newDirtySet(new(atomic.Uint64))

	if d.isDirty(1) {
		t.Fatal("owner 1 should start clean")
	}

	gen := d.mark(1)
	if !d.isDirty(1) {
		t.Fatal("owner 1 should be dirty after mark")
	}
	if d.isDirty(2) {
		t.Fatal("marking owner 1 must not affect owner 2")
	}

	if !d.clear(1, gen) {
		t.Fatal("clear with the current generation should succeed")
	}
	if d.isDirty(1) {
		t.Fatal("owner 1 should be clean after clear")
	}
}

func TestDirtySetStaleClearKeepsMark(t *testing.T) {
	d := newDirtySet(new(atomic.Uint64))

	seen := d.mark(7)
	d.mark(7)

	if d.clear(7, seen) {
		t.Fatal("clear with a superseded generation must fail")
	}
	if !d.isDirty(7) {
		t.Fatal("owner 7 must stay dirty")
	}
}

func TestDirtySetConcurrentMarks(t *testing.T) {
	d := newDirtySet(new(atomic.Uint64))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(owner int64) {
			defer wg.Done()
			d.mark(owner % 5)
		}(int64(i))
	}
	wg.Wait()

	owners := d.owners()
	if len(owners) != 5 {
		t.Fatalf("owners = %v, want 5 distinct owners", owners)
	}
	for i, owner := range owners {
		if owner != int64(i) {
			t.Fatalf("owners not sorted: %v", owners)
		}
	}
}
