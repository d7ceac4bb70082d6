package pool

import (
	"time"

	"github.com/l1jgo/arcade/internal/render"
)

// Entity is the contract every pooled object satisfies. The free flag lives on
// the entity itself so gameplay code (and the entity's own Update) can release
// it without going through the pool.
type Entity interface {
	Free() bool
	SetFree(free bool)
	Update(dt time.Duration)
	Draw(s render.Surface)
}

// Stats is a point-in-time view of pool occupancy.
type Stats struct {
	Capacity  int
	Active    int
	Acquired  uint64 // successful acquisitions since creation
	Exhausted uint64 // acquisitions refused because every entity was active
}

// Pool is a fixed-capacity set of reusable entities. Entities are built once
// at construction and are only ever toggled between free and active.
// Single-goroutine access only (frame loop).
type Pool[T Entity] struct {
	name        string
	items       []T
	generations []uint32
	acquired    uint64
	exhausted   uint64
}

// New builds capacity entities eagerly with factory and marks each one free.
func New[T Entity](name string, capacity int, factory func(index int) T) *Pool[T] {
	p := &Pool[T]{
		name:        name,
		items:       make([]T, capacity),
		generations: make([]uint32, capacity),
	}
	for i := range p.items {
		e := factory(i)
		e.SetFree(true)
		p.items[i] = e
	}
	return p
}

func (p *Pool[T]) Name() string { return p.name }

// Size returns the capacity. It never changes over the pool's lifetime.
func (p *Pool[T]) Size() int { return len(p.items) }

// At returns the entity in slot i regardless of its state.
func (p *Pool[T]) At(i int) T { return p.items[i] }

// Acquire activates the lowest-index free entity. ok is false, with no side
// effect beyond the exhaustion counter, when every entity is active.
func (p *Pool[T]) Acquire() (h Handle, ok bool) {
	for i, e := range p.items {
		if !e.Free() {
			continue
		}
		p.generations[i]++
		e.SetFree(false)
		p.acquired++
		return NewHandle(uint32(i), p.generations[i]), true
	}
	p.exhausted++
	return 0, false
}

// Spawn acquires an entity and applies the caller's spawn parameters to it
// before returning.
func (p *Pool[T]) Spawn(init func(e T)) (Handle, bool) {
	h, ok := p.Acquire()
	if !ok {
		return 0, false
	}
	if init != nil {
		init(p.items[h.Index()])
	}
	return h, true
}

// Get resolves a handle. It fails once the entity has been released, even if
// the slot has since been reacquired.
func (p *Pool[T]) Get(h Handle) (T, bool) {
	var zero T
	if !p.Live(h) {
		return zero, false
	}
	return p.items[h.Index()], true
}

// Live reports whether h still refers to an active entity.
func (p *Pool[T]) Live(h Handle) bool {
	idx := int(h.Index())
	if idx >= len(p.items) {
		return false
	}
	return p.generations[idx] == h.Generation() && !p.items[idx].Free()
}

// Release frees the entity behind h. Releasing a stale handle is a no-op.
func (p *Pool[T]) Release(h Handle) {
	if !p.Live(h) {
		return
	}
	p.items[h.Index()].SetFree(true)
}

// ReleaseAt frees slot i. Idempotent.
func (p *Pool[T]) ReleaseAt(i int) {
	if i < 0 || i >= len(p.items) {
		return
	}
	p.items[i].SetFree(true)
}

// Reset frees every entity and zeroes the acquisition counters. Generations
// are kept, so handles issued before the reset stay stale.
func (p *Pool[T]) Reset() {
	for _, e := range p.items {
		e.SetFree(true)
	}
	p.acquired = 0
	p.exhausted = 0
}

// Update advances every active entity. Free entities are skipped entirely.
func (p *Pool[T]) Update(dt time.Duration) {
	for _, e := range p.items {
		if e.Free() {
			continue
		}
		e.Update(dt)
	}
}

// Draw renders every active entity.
func (p *Pool[T]) Draw(s render.Surface) {
	for _, e := range p.items {
		if e.Free() {
			continue
		}
		e.Draw(s)
	}
}

// Each calls fn for every active entity in index order. fn may release the
// entity it is given.
func (p *Pool[T]) Each(fn func(h Handle, e T)) {
	for i, e := range p.items {
		if e.Free() {
			continue
		}
		fn(NewHandle(uint32(i), p.generations[i]), e)
	}
}

// Active counts the entities currently in use.
func (p *Pool[T]) Active() int {
	n := 0
	for _, e := range p.items {
		if !e.Free() {
			n++
		}
	}
	return n
}

func (p *Pool[T]) Stats() Stats {
	return Stats{
		Capacity:  len(p.items),
		Active:    p.Active(),
		Acquired:  p.acquired,
		Exhausted: p.exhausted,
	}
}
