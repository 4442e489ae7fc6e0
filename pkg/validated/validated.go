package validated

import "fmt"

// Kind tells which of the three states a Validated value is in.
type Kind uint8

const (
	// KindInvalidComponent is the zero Kind, so the zero Validated is a
	// reason-less failure rather than a valid zero payload.
	KindInvalidComponent Kind = iota
	KindValid
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindValid:
		return "Valid"
	case KindInvalid:
		return "Invalid"
	case KindInvalidComponent:
		return "InvalidComponent"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Validated is the outcome of a validation: a Valid payload, an Invalid
// failure carrying a reason, or an InvalidComponent failure caused by a
// dependency that already reported itself.
type Validated[T any] struct {
	value  T
	reason string
	kind   Kind
}

func Valid[T any](value T) Validated[T] {
	return Validated[T]{
		value: value,
		kind:  KindValid,
	}
}

// Invalid panics with a *ValidationError if reason is empty.
func Invalid[T any](reason string) Validated[T] {
	if reason == "" {
		panic(newValidationError(ErrEmptyReason, "invalid reason must not be empty"))
	}
	return Validated[T]{
		reason: reason,
		kind:   KindInvalid,
	}
}

func InvalidComponent[T any]() Validated[T] {
	return Validated[T]{kind: KindInvalidComponent}
}

// Fail re-types a failure to any payload type.
func Fail[T any](f Failure) Validated[T] {
	return Validated[T]{
		reason: f.reason,
		kind:   f.kind,
	}
}

func (v Validated[T]) Kind() Kind {
	return v.kind
}

func (v Validated[T]) IsValid() bool {
	return v.kind == KindValid
}

func (v Validated[T]) IsInvalid() bool {
	return v.kind == KindInvalid
}

func (v Validated[T]) IsInvalidComponent() bool {
	return v.kind == KindInvalidComponent
}

// Reason returns the explanation of an Invalid value and "" otherwise.
func (v Validated[T]) Reason() string {
	return v.reason
}

// Failure returns the payload-less view of v, or false if v is Valid.
func (v Validated[T]) Failure() (Failure, bool) {
	if v.kind == KindValid {
		return Failure{}, false
	}
	return Failure{reason: v.reason, kind: v.kind}, true
}

func (v Validated[T]) String() string {
	switch v.kind {
	case KindValid:
		return fmt.Sprintf("Valid(%v)", v.value)
	case KindInvalid:
		return "Invalid(" + v.reason + ")"
	default:
		return "InvalidComponent"
	}
}

// Failure is a failed Validated with its payload type erased. It holds no
// value, so it converts back to a Validated of any type via Fail.
type Failure struct {
	reason string
	kind   Kind
}

func (f Failure) IsInvalid() bool {
	return f.kind == KindInvalid
}

// IsInvalidComponent is also true for the zero Failure.
func (f Failure) IsInvalidComponent() bool {
	return f.kind != KindInvalid
}

func (f Failure) Reason() string {
	return f.reason
}

func (f Failure) String() string {
	if f.kind == KindInvalid {
		return "Invalid(" + f.reason + ")"
	}
	return "InvalidComponent"
}
