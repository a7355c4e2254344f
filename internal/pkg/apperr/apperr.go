package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
)

// GenerationError marks a transport/quota failure from the external
// generation service. Retrieval failures never carry it; they degrade
// locally instead of aborting a workflow.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation %s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func Generation(op string, err error) error {
	return &GenerationError{Op: op, Err: err}
}

func IsGeneration(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}
