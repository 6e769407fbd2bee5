package wait

import (
	"context"
	"time"

	"github.com/gravitational/trace"
)

// ConditionFunc reports whether the awaited condition holds.
// A non-nil error is treated as "not yet" unless it is an AbortRetry
type ConditionFunc func() (done bool, err error)

// Until evaluates condition every interval until it holds, the timeout elapses
// or ctx is done.
// The condition is evaluated at least once. The last sleep is shortened to
// the remaining time so polling never extends past the timeout by more than one
// evaluation of condition.
// On timeout it returns a LimitExceeded error which carries the last condition error, if any
func Until(ctx context.Context, timeout, interval time.Duration, condition ConditionFunc) error {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for {
		if err := ctx.Err(); err != nil {
			return trace.Wrap(err)
		}
		done, err := condition()
		if origErr, ok := err.(AbortRetry); ok {
			return origErr.Err
		}
		if err == nil && done {
			return nil
		}
		if err != nil {
			lastErr = err
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			if lastErr != nil {
				return trace.LimitExceeded("timed out after %v: %v", timeout, trace.UserMessage(lastErr))
			}
			return trace.LimitExceeded("timed out after %v", timeout)
		}
		if remaining > interval {
			remaining = interval
		}
		if err := Sleep(ctx, remaining); err != nil {
			return trace.Wrap(err)
		}
	}
}
