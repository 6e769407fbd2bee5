package debug

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"time"

	log "github.com/sirupsen/logrus"
)

// DumpLoop writes goroutine stacks to out on interrupt.
// A second interrupt within two seconds calls cancel and exits the loop.
// The loop also exits when ctx is done
func DumpLoop(ctx context.Context, cancel context.CancelFunc, out io.Writer) {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)
	dumpLoop(ctx, cancel, out, interrupt, 2*time.Second)
}

func dumpLoop(ctx context.Context, cancel context.CancelFunc, out io.Writer, interrupt <-chan os.Signal, grace time.Duration) {
	var interrupts byte
	var interruptTimeout <-chan time.Time
L:
	for {
		select {
		case <-interrupt:
			interrupts += 1
			if interrupts > 1 {
				cancel()
				break L
			}
			fmt.Fprintln(out, "Dumping goroutine stacks. Press Ctrl-C again to quit.")
			pprof.Lookup("goroutine").WriteTo(out, 1)
			interruptTimeout = time.After(grace)
		case <-interruptTimeout:
			interruptTimeout = nil
			interrupts = 0
		case <-ctx.Done():
			break L
		}
	}
	log.Debug("closing dump loop")
}
