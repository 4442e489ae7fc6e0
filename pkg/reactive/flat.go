package reactive

import "sync"

type flat[T, F any] struct {
	src Value[T]
	f   func(T) Value[F]
	out *Bound[F]

	mu       sync.Mutex
	inner    Value[F]
	innerSub Subscription
}

// FlatMap follows the value selected by f from the current value of src.
// When src changes, the binding drops the previous inner value and tracks
// the newly selected one.
func FlatMap[T, F any](src Value[T], f func(T) Value[F], opts ...Option) *Bound[F] {
	fl := &flat[T, F]{src: src, f: f}
	b := newBound(fl.now, newConfig(opts))
	fl.out = b

	b.initialize(func() {
		b.attach(src.Observe(func() {
			fl.switchTo()
			b.recompute()
		}))
		b.attach(&subscriptionFunc{cancel: fl.detach})
		fl.switchTo()
	})
	return b
}

// switchTo selects the inner value for the current value of src. src is
// read under the lock so the last switch always follows the latest value.
func (fl *flat[T, F]) switchTo() {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	inner := fl.f(fl.src.Now())
	if fl.innerSub != nil {
		fl.innerSub.Cancel()
	}
	fl.inner = inner
	fl.innerSub = inner.Observe(fl.out.recompute)
}

func (fl *flat[T, F]) now() F {
	fl.mu.Lock()
	inner := fl.inner
	fl.mu.Unlock()
	return inner.Now()
}

func (fl *flat[T, F]) detach() {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if fl.innerSub != nil {
		fl.innerSub.Cancel()
		fl.innerSub = nil
	}
}
