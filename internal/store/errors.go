package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an update or delete names an id that is not
// in the collection.
var ErrNotFound = errors.New("book not found")

// ValidationError rejects a record before it reaches the collection.
// The store is unchanged when one of these is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
