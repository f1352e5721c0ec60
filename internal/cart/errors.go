package cart

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("invalid input")
	ErrCollaborator = errors.New("collaborator failure")

	// ErrNoCollaborator is the cause reported when a session was built
	// without the collaborator an operation needs.
	ErrNoCollaborator = errors.New("collaborator not configured")
)

// CollaboratorError wraps a failure of an external collaborator (catalog,
// member directory, parked-order store, order backend). errors.Is matches both
// ErrCollaborator and the underlying cause.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

func (e *CollaboratorError) Is(target error) bool {
	return target == ErrCollaborator
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

func validation(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrValidation)
}

// collaborator passes not-found and already wrapped errors through unchanged.
func collaborator(op string, err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrCollaborator) {
		return err
	}
	return &CollaboratorError{Op: op, Err: err}
}
