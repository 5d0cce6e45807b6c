package api

import (
	"errors"
	"fmt"
)

var (
	// ErrBadRequest is returned when the request body or query cannot be
	// parsed or fails validation.
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized is returned when the admin key is missing or wrong.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMethodNotAllowed is returned for unsupported HTTP methods.
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// NewKind builds an error of the shape "op: text".
func NewKind(op, text string) error {
	return errors.New(op + ": " + text)
}

// WrapKind wraps err under a sentinel kind, keeping the kind visible to
// errors.Is while prefixing the failing operation.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %s", op, kind, err.Error())
}

// Wrap annotates err with the failing operation.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
