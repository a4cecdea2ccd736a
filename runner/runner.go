// Package runner runs components resolved from a container until they are all done.
package runner

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/a-peyrard/lazydi"
	"golang.org/x/sync/errgroup"
)

type (
	// Runnable represents a component that can be run with a context.
	Runnable interface {
		Run(ctx context.Context) error
	}

	// RunnableFunc turns a function into a Runnable.
	RunnableFunc func(ctx context.Context) error
)

func (f RunnableFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// RunAll runs all the provided runnables concurrently and waits for all of them to finish.
//
// The first failure cancels the context given to the others, and is returned.
func RunAll(parentCtx context.Context, runnables ...Runnable) error {
	group, ctx := errgroup.WithContext(parentCtx)

	for _, runnable := range runnables {
		group.Go(func() error {
			return runnable.Run(ctx)
		})
	}

	return group.Wait()
}

// RunResolved resolves every name as a Runnable, then runs them all.
//
// Nothing runs if one of the names cannot be resolved.
func RunResolved(ctx context.Context, container *lazydi.Container, names ...string) error {
	runnables := make([]Runnable, len(names))
	for i, name := range names {
		runnable, err := lazydi.Resolve[Runnable](container, name)
		if err != nil {
			return fmt.Errorf("failed to resolve runnable %s:\n\t%w", name, err)
		}
		runnables[i] = runnable
	}

	return RunAll(ctx, runnables...)
}

// WithSignalCancel returns a context cancelled on SIGINT or SIGTERM.
func WithSignalCancel(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
}
