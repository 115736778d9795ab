package errs

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Domain error kinds. Handlers map these onto HTTP status codes; everything
// that does not wrap one of them is treated as ErrUnexpected.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrTooEarly     = errors.New("too early")
	ErrUnexpected   = errors.New("unexpected error")
)

func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// ActiveUnitConflictError names the unit already holding the active slot of
// a department, so callers can see exactly what is blocking them.
type ActiveUnitConflictError struct {
	UnitID   primitive.ObjectID
	UnitName string
}

func (e *ActiveUnitConflictError) Error() string {
	return fmt.Sprintf("unit %q (%s) is already active in this department", e.UnitName, e.UnitID.Hex())
}

func (e *ActiveUnitConflictError) Unwrap() error { return ErrConflict }

// TooEarlyError carries the computed cutoff before which deactivation is
// refused.
type TooEarlyError struct {
	Cutoff time.Time
}

func (e *TooEarlyError) Error() string {
	return fmt.Sprintf("unit cannot be deactivated before %s", e.Cutoff.Format(time.RFC3339))
}

func (e *TooEarlyError) Unwrap() error { return ErrTooEarly }
