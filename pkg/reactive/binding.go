package reactive

import (
	"sync"
	"sync/atomic"
	"time"
)

// Bound is a Value recomputed from a pure function of its dependencies.
//
// Every notification from a dependency reruns the function in full.
// Recomputations are serialized, and the new value replaces the old one in a
// single step, so Now returns either the previous or the new value.
// compute must not set the dependencies of its own binding. A panic in
// compute propagates to the caller that triggered the recomputation and
// leaves the previous value in place.
//
// Watchers run after the swap, outside the recomputation lock. Changes made
// on one goroutine reach them in order; changes racing on different
// goroutines may be delivered out of order, so a watcher that needs the
// latest value reads Now.
type Bound[T any] struct {
	cfg     config
	compute func() T

	recomputeMu sync.Mutex
	mu          sync.RWMutex
	value       T
	watchers    hub[T]

	subsMu sync.Mutex
	subs   []Subscription
	closed atomic.Bool

	recomputations atomic.Uint64
}

func newBound[T any](compute func() T, cfg config) *Bound[T] {
	return &Bound[T]{cfg: cfg, compute: compute}
}

// Binding computes an initial value and, after that, recomputes it whenever
// one of deps changes.
func Binding[T any](deps []Reactive, compute func() T, opts ...Option) *Bound[T] {
	b := newBound(compute, newConfig(opts))
	b.initialize(func() {
		for _, dep := range deps {
			b.attach(dep.Observe(b.recompute))
		}
	})
	return b
}

// initialize subscribes through setup and then computes the initial value.
// Recomputations triggered meanwhile wait for the initial value and run
// after it, so no change between subscribing and computing is lost.
func (b *Bound[T]) initialize(setup func()) {
	b.recomputeMu.Lock()
	defer b.recomputeMu.Unlock()

	built := false
	defer func() {
		if !built {
			b.Close()
		}
	}()

	setup()
	b.value = b.compute()
	built = true
}

// Map derives a value by applying f to the current value of src.
func Map[T, F any](src Value[T], f func(T) F, opts ...Option) *Bound[F] {
	return Binding(Dependencies(src), func() F { return f(src.Now()) }, opts...)
}

func (b *Bound[T]) Now() T {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}

func (b *Bound[T]) Watch(fn func(prev, next T)) Subscription {
	return b.watchers.watch(fn)
}

func (b *Bound[T]) Observe(fn func()) Subscription {
	return b.watchers.watch(func(T, T) { fn() })
}

// Recomputations reports how often the value was recomputed after the
// initial computation.
func (b *Bound[T]) Recomputations() uint64 {
	return b.recomputations.Load()
}

// Close detaches the binding from its dependencies. The last value stays
// readable.
func (b *Bound[T]) Close() {
	if b.closed.Swap(true) {
		return
	}
	b.subsMu.Lock()
	subs := b.subs
	b.subs = nil
	b.subsMu.Unlock()

	for _, s := range subs {
		s.Cancel()
	}
}

func (b *Bound[T]) attach(s Subscription) {
	b.subsMu.Lock()
	defer b.subsMu.Unlock()
	b.subs = append(b.subs, s)
}

func (b *Bound[T]) recompute() {
	prev, next, elapsed, n, ok := b.swap()
	if !ok {
		return
	}

	b.cfg.logger.Debug("binding recomputed",
		"binding", b.cfg.name,
		"elapsed", elapsed,
		"recomputations", n,
	)
	if b.cfg.hooks.OnRecompute != nil {
		b.cfg.hooks.OnRecompute(b.cfg.name, elapsed)
	}

	b.watchers.notify(prev, next)
}

// swap recomputes the value and stores it. ok is false for a closed binding.
func (b *Bound[T]) swap() (prev, next T, elapsed time.Duration, n uint64, ok bool) {
	b.recomputeMu.Lock()
	defer b.recomputeMu.Unlock()
	if b.closed.Load() {
		return prev, next, 0, 0, false
	}

	start := time.Now()
	next = b.compute()
	elapsed = time.Since(start)

	b.mu.Lock()
	prev = b.value
	b.value = next
	b.mu.Unlock()

	return prev, next, elapsed, b.recomputations.Add(1), true
}

type subscriptionFunc struct {
	once   sync.Once
	cancel func()
}

func (s *subscriptionFunc) Cancel() {
	s.once.Do(s.cancel)
}
