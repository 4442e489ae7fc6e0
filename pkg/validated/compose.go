package validated

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Body is handed to the function run by Compose. Its termination methods end
// that composition immediately; they never return to their caller, the T
// result only lets a body write `return b.Error("...")`.
//
// A Body belongs to exactly one Compose call and must not be used after that
// call returned or from another goroutine.
type Body[T any] struct {
	id     uuid.UUID
	closed atomic.Bool
}

// termination carries the final result of a composition up to the Compose
// call that owns it.
type termination[T any] struct {
	owner  uuid.UUID
	result Validated[T]
}

func (b *Body[T]) ID() uuid.UUID {
	return b.id
}

// Terminate ends the composition with result.
func (b *Body[T]) Terminate(result Validated[T]) T {
	b.ensureOpen()
	panic(&termination[T]{owner: b.id, result: result})
}

// Yield ends the composition with Valid(value).
func (b *Body[T]) Yield(value T) T {
	return b.Terminate(Valid(value))
}

// Error ends the composition with Invalid(reason).
func (b *Body[T]) Error(reason string) T {
	b.ensureOpen()
	return b.Terminate(Invalid[T](reason))
}

// InvalidComponent ends the composition with InvalidComponent.
func (b *Body[T]) InvalidComponent() T {
	return b.Terminate(InvalidComponent[T]())
}

func (b *Body[T]) abortComponent() {
	b.InvalidComponent()
}

func (b *Body[T]) ensureOpen() {
	if b.closed.Load() {
		panic(newValidationError(ErrScopeClosed, "composition %s already returned", b.id))
	}
}

// Compose runs body and returns Valid of its return value, or the result the
// body terminated with. Only terminations of this call's own Body are
// recovered; any other panic, including the termination of an enclosing
// composition, continues unwinding.
func Compose[T any](body func(b *Body[T]) T) (result Validated[T]) {
	b := &Body[T]{id: uuid.New()}

	defer func() {
		b.closed.Store(true)

		r := recover()
		if r == nil {
			return
		}
		if sig, ok := r.(*termination[T]); ok && sig.owner == b.id {
			result = sig.result
			return
		}
		panic(r)
	}()

	return Valid(body(b))
}

func Compose1[A, T any](a Validated[A], transform func(a A) T) Validated[T] {
	return Compose(func(b *Body[T]) T {
		return transform(a.Get(b))
	})
}

func Compose2[A, B, T any](a Validated[A], b Validated[B], transform func(a A, b B) T) Validated[T] {
	return Compose(func(body *Body[T]) T {
		av := a.Get(body)
		bv := b.Get(body)
		return transform(av, bv)
	})
}

func Compose3[A, B, C, T any](a Validated[A], b Validated[B], c Validated[C],
	transform func(a A, b B, c C) T) Validated[T] {

	return Compose(func(body *Body[T]) T {
		av := a.Get(body)
		bv := b.Get(body)
		cv := c.Get(body)
		return transform(av, bv, cv)
	})
}

func Compose4[A, B, C, D, T any](a Validated[A], b Validated[B], c Validated[C], d Validated[D],
	transform func(a A, b B, c C, d D) T) Validated[T] {

	return Compose(func(body *Body[T]) T {
		av := a.Get(body)
		bv := b.Get(body)
		cv := c.Get(body)
		dv := d.Get(body)
		return transform(av, bv, cv, dv)
	})
}

func Compose5[A, B, C, D, E, T any](a Validated[A], b Validated[B], c Validated[C], d Validated[D], e Validated[E],
	transform func(a A, b B, c C, d D, e E) T) Validated[T] {

	return Compose(func(body *Body[T]) T {
		av := a.Get(body)
		bv := b.Get(body)
		cv := c.Get(body)
		dv := d.Get(body)
		ev := e.Get(body)
		return transform(av, bv, cv, dv, ev)
	})
}
