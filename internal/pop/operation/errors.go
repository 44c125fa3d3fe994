package operation

import (
	"errors"
	"fmt"
)

// ErrCorruptedRecord marks a record that cannot be restored.
var ErrCorruptedRecord = errors.New("corrupted operation record")

// InvalidTransitionError is returned when a setter runs out of sequence.
type InvalidTransitionError struct {
	Expected State
	Actual   State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid operation transition: expected state %s, actual %s", e.Expected, e.Actual)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var target *InvalidTransitionError
	return errors.As(err, &target)
}
