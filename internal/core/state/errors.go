package state

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptState is returned when a snapshot cannot be trusted to rebuild the store
	ErrCorruptState = errors.New("corrupt state snapshot")

	// ErrNoSnapshot is returned by a SnapshotStore that holds nothing yet
	ErrNoSnapshot = errors.New("no snapshot stored")
)

// CorruptStateError explains why a snapshot was rejected
type CorruptStateError struct {
	Err    error
	Reason string
}

func (e *CorruptStateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corrupt state snapshot (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("corrupt state snapshot (%s)", e.Reason)
}

func (e *CorruptStateError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrCorruptState) match a *CorruptStateError
func (e *CorruptStateError) Is(target error) bool {
	return target == ErrCorruptState
}
