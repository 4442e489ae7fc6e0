package validated

import (
	"errors"
	"fmt"
)

// Programming faults. They are raised with panic(*ValidationError) and are
// never converted into Invalid results.
var (
	ErrForcedInvalid   = errors.New("validated: forced an invalid value")
	ErrUnexpectedValid = errors.New("validated: expected an invalid value")
	ErrScopeClosed     = errors.New("validated: composition body used outside its compose call")
	ErrEmptyReason     = errors.New("validated: empty invalid reason")
)

// ValidationError is the panic value of every misuse of this package.
type ValidationError struct {
	Err     error // one of the sentinels above
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(kind error, format string, args ...any) *ValidationError {
	return &ValidationError{
		Err:     kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// AsValidationError reports whether a recovered panic value is a
// *ValidationError and returns it.
func AsValidationError(recovered any) (*ValidationError, bool) {
	err, ok := recovered.(error)
	if !ok {
		return nil, false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
