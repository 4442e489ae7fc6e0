package validated

// Fold matches v against its three states. onInvalid receives both Invalid
// and InvalidComponent values.
func Fold[T, F any](v Validated[T],
	onValid func(value T) F,
	onInvalid func(actual Failure) F) F {

	if v.kind == KindValid {
		return onValid(v.value)
	}
	return onInvalid(Failure{reason: v.reason, kind: v.kind})
}

func Map[T, F any](v Validated[T], transform func(value T) F) Validated[F] {
	return Fold(v,
		func(value T) Validated[F] { return Valid(transform(value)) },
		Fail[F])
}

func FlatMap[T, F any](v Validated[T], transform func(value T) Validated[F]) Validated[F] {
	return Fold(v, transform, Fail[F])
}

// OrElse returns v if it is valid and the result of def otherwise. def is
// not called for valid values.
func (v Validated[T]) OrElse(def func() Validated[T]) Validated[T] {
	if v.kind == KindValid {
		return v
	}
	return def()
}

func (v Validated[T]) Or(def Validated[T]) Validated[T] {
	return v.OrElse(func() Validated[T] { return def })
}

func (v Validated[T]) IfValid(action func(value T)) {
	if v.kind == KindValid {
		action(v.value)
	}
}

// IfInvalid returns the payload of a valid v, otherwise the fallback
// computed from the failure.
func (v Validated[T]) IfInvalid(def func(invalid Failure) T) T {
	return Fold(v, func(value T) T { return value }, def)
}

// OrZero returns the payload or the zero value of T.
func (v Validated[T]) OrZero() T {
	return v.IfInvalid(func(Failure) T {
		var zero T
		return zero
	})
}

// Force returns the payload and panics with a *ValidationError if v is not
// valid.
func (v Validated[T]) Force() T {
	return v.ForceWith(func(actual Failure) string {
		return "expected valid but got " + actual.String()
	})
}

func (v Validated[T]) ForceWith(message func(actual Failure) string) T {
	return v.IfInvalid(func(invalid Failure) T {
		panic(newValidationError(ErrForcedInvalid, "%s", message(invalid)))
	})
}

// ExpectInvalid returns the failure and panics with a *ValidationError if v
// is valid.
func (v Validated[T]) ExpectInvalid() Failure {
	return Fold(v,
		func(T) Failure {
			panic(newValidationError(ErrUnexpectedValid, "expected invalid but got %s", v))
		},
		func(actual Failure) Failure { return actual })
}

// FromPtr turns a possibly nil pointer into a Validated. def is only called
// when p is nil.
func FromPtr[T any](p *T, def func() Validated[T]) Validated[T] {
	if p == nil {
		return def()
	}
	return Valid(*p)
}

// FromOk is FromPtr for comma-ok lookups.
func FromOk[T any](value T, ok bool, def func() Validated[T]) Validated[T] {
	if !ok {
		return def()
	}
	return Valid(value)
}

// Of lifts a (value, error) pair. A non-nil error becomes Invalid with the
// error text as reason.
func Of[T any](value T, err error) Validated[T] {
	if err == nil {
		return Valid(value)
	}
	reason := err.Error()
	if reason == "" {
		reason = "unknown error"
	}
	return Invalid[T](reason)
}

func Validate[T any](value T, check func(in T) (isValid bool, errMsg string)) Validated[T] {
	return AndValidate(Valid(value), check)
}

// AndValidate applies check to a valid input. Failures pass through
// unchanged and check is not called for them.
func AndValidate[T any](input Validated[T], check func(in T) (isValid bool, errMsg string)) Validated[T] {
	return FlatMap(input, func(in T) Validated[T] {
		if isValid, errMsg := check(in); !isValid {
			if errMsg == "" {
				errMsg = "validation failed"
			}
			return Invalid[T](errMsg)
		}
		return input
	})
}
