package cache

import (
	"sort"
	"sync"
	"sync/atomic"
)

type ViewKind string

const (
	ViewCount  ViewKind = "count"
	ViewRecent ViewKind = "recent"
)

// dirtySet tracks owners whose cached view must not be trusted. Each mark
// stores a fresh generation so a reseed only clears the mark it observed.
type dirtySet struct {
	gens sync.Map // int64 owner -> uint64 generation
	seq  *atomic.Uint64
}

func newDirtySet(seq *atomic.Uint64) *dirtySet {
	return &dirtySet{seq: seq}
}

func (d *dirtySet) mark(owner int64) uint64 {
	gen := d.seq.Add(1)
	d.gens.Store(owner, gen)
	return gen
}

func (d *dirtySet) generation(owner int64) (uint64, bool) {
	v, ok := d.gens.Load(owner)
	if !ok {
		return 0, false
	}
	return v.(uint64), true
}

func (d *dirtySet) isDirty(owner int64) bool {
	_, ok := d.gens.Load(owner)
	return ok
}

// clear removes the mark only if it is still the generation seen by the caller.
func (d *dirtySet) clear(owner int64, gen uint64) bool {
	return d.gens.CompareAndDelete(owner, gen)
}

func (d *dirtySet) owners() []int64 {
	var out []int64
	d.gens.Range(func(key, _ any) bool {
		out = append(out, key.(int64))
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Snapshot records the dirty state of one owner's view before the
// authoritative store is read for a reseed.
type Snapshot struct {
	Kind  ViewKind
	Owner int64
	gen   uint64
	dirty bool
}

func (s Snapshot) Dirty() bool {
	return s.dirty
}
