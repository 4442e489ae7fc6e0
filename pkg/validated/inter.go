package validated

import "github.com/google/uuid"

// Scope is the extraction capability of a running composition. It is
// implemented only by *Body, so values can be unwrapped with Get only inside a
// Compose call.
type Scope interface {
	// ID identifies the Compose invocation owning the scope.
	ID() uuid.UUID
	// abortComponent ends the owning composition with InvalidComponent.
	abortComponent()
	// ensureOpen panics if the owning composition already returned.
	ensureOpen()
}

// Get returns the payload of a valid v. Otherwise the composition owning s
// ends immediately with InvalidComponent; the reason of v is not repeated.
func (v Validated[T]) Get(s Scope) T {
	s.ensureOpen()
	if v.kind != KindValid {
		s.abortComponent()
	}
	return v.value
}

// Extract is Get in function form.
func Extract[T any](s Scope, v Validated[T]) T {
	return v.Get(s)
}
