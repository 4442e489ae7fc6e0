// Package vreactive binds compositions to reactive values.
//
// Highlights:
// - Compose: rerun a validated.Compose body whenever a declared dependency
// changes
// - Compose1..Compose5: reactive fixed-arity compositions
// - Transpose: Validated of a reactive value to reactive value of Validated
// - MapValidated/FlatMapValidated/MapReactive/FlatMapReactive: lift Map and
// FlatMap through the reactive layer
package vreactive

import (
	"github.com/ib-77/validated/pkg/reactive"
	"github.com/ib-77/validated/pkg/validated"
)

// ReactiveValidated is a reactive value holding a validation result.
type ReactiveValidated[T any] = reactive.Value[validated.Validated[T]]

// ValidatedReactive is a validation result holding a reactive value.
type ValidatedReactive[T any] = validated.Validated[reactive.Value[T]]

// Binding is the recomputed value returned by the Compose functions.
type Binding[T any] = reactive.Bound[validated.Validated[T]]

// Compose reruns body in full whenever one of deps changes.
func Compose[R any](deps []reactive.Reactive, body func(b *validated.Body[R]) R,
	opts ...reactive.Option) *Binding[R] {

	return reactive.Binding(deps, func() validated.Validated[R] {
		return validated.Compose(body)
	}, opts...)
}

func Compose1[A, T any](a ReactiveValidated[A], transform func(a A) T,
	opts ...reactive.Option) *Binding[T] {

	return Compose(reactive.Dependencies(a), func(b *validated.Body[T]) T {
		return transform(a.Now().Get(b))
	}, opts...)
}

func Compose2[A, B, T any](a ReactiveValidated[A], b ReactiveValidated[B], transform func(a A, b B) T,
	opts ...reactive.Option) *Binding[T] {

	return Compose(reactive.Dependencies(a, b), func(body *validated.Body[T]) T {
		av := a.Now().Get(body)
		bv := b.Now().Get(body)
		return transform(av, bv)
	}, opts...)
}

func Compose3[A, B, C, T any](a ReactiveValidated[A], b ReactiveValidated[B], c ReactiveValidated[C],
	transform func(a A, b B, c C) T, opts ...reactive.Option) *Binding[T] {

	return Compose(reactive.Dependencies(a, b, c), func(body *validated.Body[T]) T {
		av := a.Now().Get(body)
		bv := b.Now().Get(body)
		cv := c.Now().Get(body)
		return transform(av, bv, cv)
	}, opts...)
}

func Compose4[A, B, C, D, T any](a ReactiveValidated[A], b ReactiveValidated[B], c ReactiveValidated[C],
	d ReactiveValidated[D], transform func(a A, b B, c C, d D) T, opts ...reactive.Option) *Binding[T] {

	return Compose(reactive.Dependencies(a, b, c, d), func(body *validated.Body[T]) T {
		av := a.Now().Get(body)
		bv := b.Now().Get(body)
		cv := c.Now().Get(body)
		dv := d.Now().Get(body)
		return transform(av, bv, cv, dv)
	}, opts...)
}

func Compose5[A, B, C, D, E, T any](a ReactiveValidated[A], b ReactiveValidated[B], c ReactiveValidated[C],
	d ReactiveValidated[D], e ReactiveValidated[E], transform func(a A, b B, c C, d D, e E) T,
	opts ...reactive.Option) *Binding[T] {

	return Compose(reactive.Dependencies(a, b, c, d, e), func(body *validated.Body[T]) T {
		av := a.Now().Get(body)
		bv := b.Now().Get(body)
		cv := c.Now().Get(body)
		dv := d.Now().Get(body)
		ev := e.Now().Get(body)
		return transform(av, bv, cv, dv, ev)
	}, opts...)
}

// Transpose tracks the inner value of a valid v, wrapping each value in
// Valid. A failed v becomes a constant holding that failure.
func Transpose[T any](v ValidatedReactive[T]) ReactiveValidated[T] {
	return validated.Fold(v,
		func(inner reactive.Value[T]) ReactiveValidated[T] {
			return reactive.Map(inner, validated.Valid[T])
		},
		func(actual validated.Failure) ReactiveValidated[T] {
			return reactive.Constant(validated.Fail[T](actual))
		})
}

func MapValidated[T, F any](v ReactiveValidated[T], transform func(value T) F) ReactiveValidated[F] {
	return reactive.Map(v, func(x validated.Validated[T]) validated.Validated[F] {
		return validated.Map(x, transform)
	})
}

func FlatMapValidated[T, F any](v ReactiveValidated[T], transform func(value T) validated.Validated[F]) ReactiveValidated[F] {
	return reactive.Map(v, func(x validated.Validated[T]) validated.Validated[F] {
		return validated.FlatMap(x, transform)
	})
}

func MapReactive[T, F any](v ValidatedReactive[T], transform func(value T) F) ValidatedReactive[F] {
	return validated.Map(v, func(inner reactive.Value[T]) reactive.Value[F] {
		return reactive.Map(inner, transform)
	})
}

func FlatMapReactive[T, F any](v ValidatedReactive[T], transform func(value T) reactive.Value[F]) ValidatedReactive[F] {
	return validated.Map(v, func(inner reactive.Value[T]) reactive.Value[F] {
		return reactive.FlatMap(inner, transform)
	})
}
