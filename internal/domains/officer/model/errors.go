package model

import (
	"errors"
	"fmt"
)

// ErrOfficerNotFound is raised by the service when a lookup misses. The
// repositories themselves report absence as a value, never as an error.
var ErrOfficerNotFound = errors.New("officer not found")

func NewOfficerNotFoundError(id int64) error {
	return fmt.Errorf("%w: id=%d", ErrOfficerNotFound, id)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrOfficerNotFound)
}
