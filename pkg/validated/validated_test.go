package validated

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_States(t *testing.T) {
	t.Parallel()

	v := Valid(3)
	assert.True(t, v.IsValid())
	assert.False(t, v.IsInvalid())
	assert.False(t, v.IsInvalidComponent())
	assert.Equal(t, KindValid, v.Kind())
	assert.Empty(t, v.Reason())

	i := Invalid[int]("too small")
	assert.False(t, i.IsValid())
	assert.True(t, i.IsInvalid())
	assert.False(t, i.IsInvalidComponent())
	assert.Equal(t, "too small", i.Reason())

	c := InvalidComponent[int]()
	assert.False(t, c.IsValid())
	assert.False(t, c.IsInvalid())
	assert.True(t, c.IsInvalidComponent())
	assert.Empty(t, c.Reason())
}

func TestZeroValue_IsInvalidComponent(t *testing.T) {
	t.Parallel()

	var v Validated[string]
	assert.True(t, v.IsInvalidComponent())
	assert.Equal(t, InvalidComponent[string](), v)
}

func TestInvalidComponent_Interchangeable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, InvalidComponent[int](), InvalidComponent[int]())
	assert.True(t, InvalidComponent[int]() == Fail[int](Failure{}))
}

func TestInvalid_EmptyReasonPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		ve, ok := AsValidationError(recover())
		require.True(t, ok)
		assert.True(t, errors.Is(ve, ErrEmptyReason))
	}()

	Invalid[int]("")
	t.Fatal("Invalid with empty reason must panic")
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Valid(7)", Valid(7).String())
	assert.Equal(t, "Invalid(bad)", Invalid[int]("bad").String())
	assert.Equal(t, "InvalidComponent", InvalidComponent[int]().String())
	assert.Equal(t, "Invalid", KindInvalid.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestFailure_PreservesAsymmetry(t *testing.T) {
	t.Parallel()

	f, ok := Invalid[int]("x").Failure()
	require.True(t, ok)
	assert.True(t, f.IsInvalid())
	assert.False(t, f.IsInvalidComponent())
	assert.Equal(t, "x", f.Reason())

	f, ok = InvalidComponent[int]().Failure()
	require.True(t, ok)
	assert.False(t, f.IsInvalid())
	assert.True(t, f.IsInvalidComponent())

	_, ok = Valid(1).Failure()
	assert.False(t, ok)
}

func TestFail_RetypesFailures(t *testing.T) {
	t.Parallel()

	f, _ := Invalid[int]("x").Failure()
	s := Fail[string](f)
	assert.Equal(t, Invalid[string]("x"), s)

	c, _ := InvalidComponent[int]().Failure()
	assert.Equal(t, InvalidComponent[[]byte]().String(), Fail[[]byte](c).String())
}
