package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for post operations
var (
	// ErrNotFound is returned when no post exists for the requested id
	ErrNotFound = errors.New("post not found")

	// ErrAlreadyExists is returned when create targets an id that is already taken.
	// The allocator never hands out a used id, so this indicates a corrupted counter.
	ErrAlreadyExists = errors.New("post already exists")

	// ErrUnauthorizedOperation is returned when the caller is not the post author
	ErrUnauthorizedOperation = errors.New("caller is not the post author")

	// ErrAlreadyCompleted is returned when the post's status does not permit the operation
	ErrAlreadyCompleted = errors.New("post already completed")
)

// NotFoundError carries the id that could not be resolved
type NotFoundError struct {
	ID uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("post not found: %d", e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match a *NotFoundError
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(id uint64) error {
	return &NotFoundError{ID: id}
}

// StatusError reports an operation rejected by the status policy
type StatusError struct {
	Operation Operation
	Status    Status
	ID        uint64
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cannot %s post %d in status %s", e.Operation, e.ID, e.Status)
}

// Is lets errors.Is(err, ErrAlreadyCompleted) match a *StatusError
func (e *StatusError) Is(target error) bool {
	return target == ErrAlreadyCompleted
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if error is an id collision on create
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsUnauthorized checks if error is an ownership failure
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorizedOperation)
}

// IsAlreadyCompleted checks if error is a status guard failure
func IsAlreadyCompleted(err error) bool {
	return errors.Is(err, ErrAlreadyCompleted)
}
