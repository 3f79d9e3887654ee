package benchmarks

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// cmdContext is cancelled on an interrupt or termination signal
func cmdContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx
}
