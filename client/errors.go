package client

import (
	"errors"
	"fmt"
)

// ErrUnexpectedStatus matches any *StatusError via errors.Is
var ErrUnexpectedStatus = errors.New("unexpected status")

// StatusError reports a non-2xx response from the backend
type StatusError struct {
	Status int
	Path   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.Path, e.Status)
}

// Is lets errors.Is(err, ErrUnexpectedStatus) match any status failure
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}
