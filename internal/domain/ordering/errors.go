package ordering

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDomainValidation tags invariant and input failures raised by the
// ordering entities themselves. The data layer maps it onto the canonical
// aggregate error codes.
var ErrDomainValidation = errors.New("ordering domain validation")

// ValidationError tags an error as an ordering domain validation failure.
func ValidationError(msg string) error {
	return errors.Join(ErrDomainValidation, errors.New(strings.TrimSpace(msg)))
}

// ValidationErrorf is ValidationError with formatting.
func ValidationErrorf(format string, args ...any) error {
	return errors.Join(ErrDomainValidation, fmt.Errorf(format, args...))
}

// IsValidation reports whether err carries the domain validation tag.
func IsValidation(err error) bool {
	return errors.Is(err, ErrDomainValidation)
}
