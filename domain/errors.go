package domain

import (
	"errors"
	"fmt"
)

var (
	// Parsing errors
	ErrMalformedInput = errors.New("malformed numeric input")
	ErrInvalidDecimal = errors.New("invalid decimal value")

	// Range errors
	ErrNegativePrincipal = errors.New("principal must not be negative")
	ErrPrincipalTooLarge = errors.New("principal exceeds the allowed maximum")
	ErrNegativeRate      = errors.New("annual rate must not be negative")
	ErrRateTooHigh       = errors.New("annual rate exceeds the allowed maximum")
	ErrTermTooShort      = errors.New("term must be at least one year")
	ErrTermTooLong       = errors.New("term exceeds the allowed maximum")
)

// InputError ties an input failure to the field that caused it.
type InputError struct {
	Field string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// IsInputError reports whether err was caused by bad caller input rather
// than by the system.
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}
