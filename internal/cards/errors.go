package cards

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCardName is returned when a sanitized name is not in the store.
	ErrInvalidCardName = errors.New("invalid card name")

	// ErrMulticardNoNames is returned when a composite record has no names list.
	ErrMulticardNoNames = errors.New("multi-part card has no linked names")

	// ErrMulticardMalformedNames is returned when a composite record does not
	// link exactly two names.
	ErrMulticardMalformedNames = errors.New("multi-part card has malformed linked names")

	// ErrDatasetMalformed is returned when the reference dataset cannot be decoded.
	ErrDatasetMalformed = errors.New("malformed reference dataset")

	// ErrKeyCollision is returned by strict loads when two names share a key.
	ErrKeyCollision = errors.New("sanitized name collision")
)

// NameError records a resolution failure and the name that caused it.
type NameError struct {
	Name string
	Err  error
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Name)
}

func (e *NameError) Unwrap() error {
	return e.Err
}

func nameError(kind error, name string) error {
	return &NameError{Name: name, Err: kind}
}
