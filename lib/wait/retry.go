package wait

import (
	"context"
	"fmt"
	"time"

	"github.com/gravitational/uitest/lib/defaults"

	"github.com/cenkalti/backoff"
	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
)

// Abort causes Retry function to stop with error
func Abort(err error) AbortRetry {
	return AbortRetry{Err: err}
}

// Continue causes Retry function to continue trying and logging message
func Continue(format string, args ...interface{}) ContinueRetry {
	message := fmt.Sprintf(format, args...)
	return ContinueRetry{Message: message}
}

// AbortRetry if returned from Retry, will lead to retries to be stopped,
// but the Retry function will return internal Error
type AbortRetry struct {
	Err error
}

func (r AbortRetry) Error() string {
	return fmt.Sprintf("Abort(%v)", r.Err)
}

// ContinueRetry if returned from Retry, will be lead to retry next time
type ContinueRetry struct {
	Message string
}

func (r ContinueRetry) Error() string {
	return fmt.Sprintf("ContinueRetry(%v)", r.Message)
}

// Retry attempts to execute fn with default delay retrying it for a default number of attempts.
// fn can return AbortRetry to abort or ContinueRetry to continue the execution.
func Retry(ctx context.Context, fn func() error) error {
	r := Retryer{
		Delay:    defaults.RetryDelay,
		Attempts: defaults.RetryAttempts,
	}
	return r.Do(ctx, fn)
}

// Do retries the given function fn for the configured number of attempts until it succeeds
// or all attempts have been exhausted.
// The delay is constant and only applied between attempts: with N attempts
// fn is called at most N times and Do sleeps at most N-1 times
func (r Retryer) Do(ctx context.Context, fn func() error) error {
	if r.FieldLogger == nil {
		r.FieldLogger = log.NewEntry(log.StandardLogger())
	}
	if r.Attempts < 1 {
		return trace.BadParameter("number of attempts should be positive, got %v", r.Attempts)
	}
	if ctx.Err() != nil {
		return trace.Wrap(ctx.Err())
	}

	var attempt int
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(r.Delay), uint64(r.Attempts-1)),
		ctx)
	err := backoff.RetryNotify(func() error {
		attempt++
		err := fn()
		if origErr, ok := err.(AbortRetry); ok {
			return backoff.Permanent(origErr)
		}
		return err
	}, policy, func(err error, delay time.Duration) {
		switch origErr := err.(type) {
		case ContinueRetry:
			r.Debugf("%v retry in %v", origErr.Message, delay)
		default:
			r.Debugf("unsuccessful attempt %v: %v, retry in %v", attempt, trace.UserMessage(err), delay)
		}
	})
	if err == nil {
		r.Debug("succeeded")
		return nil
	}
	if origErr, ok := err.(AbortRetry); ok {
		r.WithError(origErr.Err).Warn("aborted")
		return origErr.Err
	}
	if ctx.Err() != nil && attempt < r.Attempts {
		r.WithError(err).Warn("interrupted")
		return trace.Wrap(ctx.Err())
	}
	r.Debugf("all %v attempts failed: %v", attempt, trace.UserMessage(err))
	return err
}

// Retryer is a process that can retry a function
type Retryer struct {
	// Delay specifies the interval between retry attempts
	Delay time.Duration
	// Attempts specifies the number of attempts to execute before failing.
	// Should be >= 1, zero value is not useful
	Attempts int
	// FieldLogger specifies the log sink
	log.FieldLogger
}
