package chain

import (
	"errors"
)

var (
	// ErrMalformedHeader marks a header that fails stateless checks.
	ErrMalformedHeader = errors.New("malformed block header")
	// ErrVerificationFailed matches every RuleError.
	ErrVerificationFailed = errors.New("block verification failed")
	// ErrStoreIO marks a block store failure. Existing state is left intact.
	ErrStoreIO = errors.New("block store io")
)

// These identify a specific RuleError.
var (
	// ErrUnknownPrevious indicates the previous block reference does not
	// resolve to a stored block.
	ErrUnknownPrevious = newRuleError("ErrUnknownPrevious")

	// ErrBadHeight indicates the height is not one above the parent.
	ErrBadHeight = newRuleError("ErrBadHeight")

	// ErrBadKeystone indicates a keystone reference disagrees with the
	// ancestor found at the keystone height.
	ErrBadKeystone = newRuleError("ErrBadKeystone")

	// ErrTimeTooOld indicates the timestamp is not after the median time
	// of the most recent ancestors.
	ErrTimeTooOld = newRuleError("ErrTimeTooOld")

	// ErrUnexpectedDifficulty indicates the difficulty bits differ from the
	// retarget result.
	ErrUnexpectedDifficulty = newRuleError("ErrUnexpectedDifficulty")
)

// RuleError identifies a rule violation. The caller can use type assertions
// or errors.Is against the sentinels above to find the specific reason.
type RuleError struct {
	message string
	inner   error
}

func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Is reports every RuleError as ErrVerificationFailed.
func (e RuleError) Is(target error) bool {
	return target == ErrVerificationFailed
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}

// Reason classifies err into a short label for metrics and logs.
func Reason(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, ErrMalformedHeader):
		return "malformed_header"
	case errors.Is(err, ErrUnknownPrevious):
		return "unknown_previous"
	case errors.Is(err, ErrBadHeight):
		return "bad_height"
	case errors.Is(err, ErrBadKeystone):
		return "bad_keystone"
	case errors.Is(err, ErrTimeTooOld):
		return "time_too_old"
	case errors.Is(err, ErrUnexpectedDifficulty):
		return "unexpected_difficulty"
	case errors.Is(err, ErrStoreIO):
		return "store_io"
	default:
		return "unknown"
	}
}
