package reactive

import (
	"maps"
	"slices"
	"sync"
	"sync/atomic"
)

// Reactive is anything that announces changes.
type Reactive interface {
	// Observe registers fn to run after every change.
	Observe(fn func()) Subscription
}

// Value is a Reactive with a readable current value.
type Value[T any] interface {
	Reactive
	// Now returns the current value.
	Now() T
	// Watch registers fn to run after every change with the previous and
	// the new value. Delivery order is guaranteed only for changes made on
	// the same goroutine.
	Watch(fn func(prev, next T)) Subscription
}

// Subscription detaches an observer. Cancel is idempotent.
type Subscription interface {
	Cancel()
}

type noSubscription struct{}

func (noSubscription) Cancel() {}

// Dependencies declares the explicit dependency set of a binding. Nil
// entries are dropped.
func Dependencies(deps ...Reactive) []Reactive {
	out := make([]Reactive, 0, len(deps))
	for _, d := range deps {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

// hub keeps the watchers of one value.
type hub[T any] struct {
	mu       sync.Mutex
	seq      uint64
	watchers map[uint64]func(prev, next T)
}

func (h *hub[T]) watch(fn func(prev, next T)) Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.watchers == nil {
		h.watchers = make(map[uint64]func(prev, next T))
	}
	id := h.seq
	h.seq++
	h.watchers[id] = fn

	return &hubSubscription[T]{hub: h, id: id}
}

func (h *hub[T]) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.watchers)
}

// notify calls every watcher outside the lock, in registration order.
func (h *hub[T]) notify(prev, next T) {
	h.mu.Lock()
	ids := slices.Sorted(maps.Keys(h.watchers))
	fns := make([]func(prev, next T), len(ids))
	for i, id := range ids {
		fns[i] = h.watchers[id]
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(prev, next)
	}
}

type hubSubscription[T any] struct {
	hub      *hub[T]
	id       uint64
	canceled atomic.Bool
}

func (s *hubSubscription[T]) Cancel() {
	if s.canceled.Swap(true) {
		return
	}
	s.hub.mu.Lock()
	delete(s.hub.watchers, s.id)
	s.hub.mu.Unlock()
}
