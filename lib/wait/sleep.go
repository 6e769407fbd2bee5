package wait

import (
	"context"
	"time"

	"github.com/gravitational/trace"
)

// Sleep is context-interruptable sleep.
// It returns an error if ctx is done before d elapses
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return trace.Wrap(ctx.Err())
	case <-timer.C:
		return nil
	}
}
