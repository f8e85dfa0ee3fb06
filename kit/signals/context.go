// Package signals provides contexts that cancel on process signals.
package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WithSignals returns a context that is canceled when one of the given
// signals is received.
func WithSignals(ctx context.Context, sigs ...os.Signal) context.Context {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, sigs...)

	ctx, cancel := context.WithCancel(ctx)
	go func() {
		defer cancel()
		select {
		case <-sigCh:
		case <-ctx.Done():
		}
	}()
	return ctx
}

// WithStandardSignals cancels the context on SIGINT or SIGTERM.
func WithStandardSignals(ctx context.Context) context.Context {
	return WithSignals(ctx, syscall.SIGINT, syscall.SIGTERM)
}
