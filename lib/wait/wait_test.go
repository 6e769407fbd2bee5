package wait

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gravitational/trace"
	"github.com/stretchr/testify/require"
)

func TestRetryStopsOnFirstSuccess(t *testing.T) {
	var calls int
	r := Retryer{Delay: time.Millisecond, Attempts: 5}
	err := r.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return trace.Errorf("not yet")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestRetryExhaustsAttempts(t *testing.T) {
	var calls int
	r := Retryer{Delay: 20 * time.Millisecond, Attempts: 3}
	start := time.Now()
	err := r.Do(context.Background(), func() error {
		calls++
		return trace.Errorf("attempt %v", calls)
	})
	elapsed := time.Since(start)
	require.Error(t, err)
	require.Equal(t, 3, calls)
	// two sleeps between three attempts, none after the last one
	require.True(t, elapsed >= 40*time.Millisecond, "elapsed %v", elapsed)
	require.True(t, elapsed < 60*time.Millisecond+50*time.Millisecond, "elapsed %v", elapsed)
}

func TestRetryAbort(t *testing.T) {
	var calls int
	r := Retryer{Delay: time.Millisecond, Attempts: 5}
	fatal := errors.New("fatal")
	err := r.Do(context.Background(), func() error {
		calls++
		return Abort(fatal)
	})
	require.Equal(t, fatal, err)
	require.Equal(t, 1, calls)
}

func TestRetryRejectsZeroAttempts(t *testing.T) {
	var calls int
	err := Retryer{Delay: time.Millisecond}.Do(context.Background(), func() error {
		calls++
		return nil
	})
	require.True(t, trace.IsBadParameter(err))
	require.Equal(t, 0, calls)
}

func TestUntilSucceeds(t *testing.T) {
	var calls int
	err := Until(context.Background(), time.Second, time.Millisecond, func() (bool, error) {
		calls++
		return calls == 3, nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestUntilTimesOut(t *testing.T) {
	timeout := 50 * time.Millisecond
	interval := 20 * time.Millisecond
	start := time.Now()
	err := Until(context.Background(), timeout, interval, func() (bool, error) {
		return false, trace.NotFound("no such element")
	})
	elapsed := time.Since(start)
	require.True(t, IsTimeout(err), "expected timeout, got %v", err)
	require.Contains(t, err.Error(), "no such element")
	require.True(t, elapsed >= timeout, "elapsed %v", elapsed)
	require.True(t, elapsed <= timeout+interval+20*time.Millisecond, "elapsed %v", elapsed)
}

func TestUntilEvaluatesAtLeastOnce(t *testing.T) {
	var calls int
	err := Until(context.Background(), 0, time.Millisecond, func() (bool, error) {
		calls++
		return true, nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestUntilInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	err := Until(ctx, time.Minute, 5*time.Millisecond, func() (bool, error) {
		return false, nil
	})
	require.True(t, IsInterrupted(err), "expected interrupted wait, got %v", err)
	require.False(t, IsTimeout(err))
	require.False(t, IsDriverError(err))
}

func TestErrorClassification(t *testing.T) {
	require.True(t, IsDriverError(trace.Wrap(errors.New("stale element reference"))))
	require.False(t, IsDriverError(nil))
	require.False(t, IsDriverError(trace.LimitExceeded("timed out")))
	require.True(t, IsInterrupted(trace.Wrap(context.Canceled)))
}
