package wait

import (
	"context"
	"errors"

	"github.com/gravitational/trace"
)

// IsTimeout returns true if err signals that a waited-for condition never became true
func IsTimeout(err error) bool {
	return trace.IsLimitExceeded(err)
}

// IsInterrupted returns true if err signals that a wait was cut short by its context
func IsInterrupted(err error) bool {
	if err == nil {
		return false
	}
	origErr := trace.Unwrap(err)
	return errors.Is(origErr, context.Canceled) || errors.Is(origErr, context.DeadlineExceeded)
}

// IsDriverError returns true if err is a failure of the underlying browser or database driver
// as opposed to a timeout or an interrupted wait
func IsDriverError(err error) bool {
	return err != nil && !IsTimeout(err) && !IsInterrupted(err)
}
