package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"
)

// Lifecycle holds the cancel functions of a one-shot run context.
type Lifecycle struct {
	cancelTimeout context.CancelFunc
	stopSignals   context.CancelFunc
}

// SetupLifecycle derives a context that is canceled when timeout expires
// or when SIGINT or SIGTERM arrives, whichever happens first. Call Cleanup
// on the returned Lifecycle once the run is over.
func SetupLifecycle(ctx context.Context, timeout time.Duration) (context.Context, *Lifecycle) {
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, &Lifecycle{cancelTimeout: cancelTimeout, stopSignals: stopSignals}
}

// Cleanup stops signal delivery and releases the timeout.
func (l *Lifecycle) Cleanup() {
	l.stopSignals()
	l.cancelTimeout()
}
