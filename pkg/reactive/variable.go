package reactive

import "sync"

// Var is a settable source value.
type Var[T any] struct {
	mu       sync.RWMutex
	value    T
	watchers hub[T]
}

func NewVar[T any](initial T) *Var[T] {
	return &Var[T]{value: initial}
}

func (v *Var[T]) Now() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Set stores value and then notifies watchers on the calling goroutine.
func (v *Var[T]) Set(value T) {
	v.mu.Lock()
	prev := v.value
	v.value = value
	v.mu.Unlock()

	v.watchers.notify(prev, value)
}

// Update replaces the value with f applied to it. If f panics the value is
// left unchanged.
func (v *Var[T]) Update(f func(T) T) {
	prev, next := v.apply(f)
	v.watchers.notify(prev, next)
}

func (v *Var[T]) apply(f func(T) T) (prev, next T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	prev = v.value
	next = f(prev)
	v.value = next
	return prev, next
}

func (v *Var[T]) Watch(fn func(prev, next T)) Subscription {
	return v.watchers.watch(fn)
}

func (v *Var[T]) Observe(fn func()) Subscription {
	return v.watchers.watch(func(T, T) { fn() })
}

type constant[T any] struct {
	value T
}

// Constant returns a Value that never changes; observers are never called.
func Constant[T any](value T) Value[T] {
	return constant[T]{value: value}
}

func (c constant[T]) Now() T {
	return c.value
}

func (c constant[T]) Observe(func()) Subscription {
	return noSubscription{}
}

func (c constant[T]) Watch(func(prev, next T)) Subscription {
	return noSubscription{}
}
