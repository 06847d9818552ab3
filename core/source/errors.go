package source

import (
	"errors"
	"fmt"
)

// ErrLocalDisabled is returned for file references when local access is not allowed.
var ErrLocalDisabled = errors.New("local file references are disabled")

// ErrUnavailable is returned when a reference needs a backend that is not configured.
var ErrUnavailable = errors.New("source backend not configured")

// Error wraps a failure to load one dataset reference.
type Error struct {
	Ref string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Ref, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
