package hello

import (
	"context"
	"fmt"
	"time"

	"github.com/a-peyrard/lazydi"
	"github.com/a-peyrard/lazydi/runner"
	"github.com/rs/zerolog"
)

const sleepDuration = 2 * time.Second

// Register adds the hello components to the container.
func Register(container *lazydi.Container) {
	container.
		Add("hello.name", lazydi.ValueInit{Value: "world"}).
		Add("hello.greet", container.InjectFunction(Greet)).
		Add("hello.runner", NewHelloRunner)
}

// Greet builds a greeting for the name found in deps, or for the first argument if any.
func Greet(deps lazydi.Deps, args ...any) (any, error) {
	if len(args) > 0 {
		return fmt.Sprintf("Hello %v", args[0]), nil
	}
	name, err := lazydi.Get[string](deps, "hello.name")
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Hello %s", name), nil
}

// NewHelloRunner creates a Runnable logging the greeting, then sleeping for a while.
func NewHelloRunner(deps lazydi.Deps) (runner.Runnable, error) {
	logger, err := lazydi.Get[*zerolog.Logger](deps, "logger")
	if err != nil {
		return nil, err
	}
	greeting, err := lazydi.Get[string](deps, "hello.greet")
	if err != nil {
		return nil, err
	}

	return runner.RunnableFunc(func(ctx context.Context) error {
		logger.Info().Msg(greeting)
		logger.Info().Msgf("sleeping for %s", sleepDuration)
		select {
		case <-ctx.Done():
			logger.Info().Msg("context cancelled, exiting early")
			return ctx.Err()
		case <-time.After(sleepDuration):
		}
		logger.Info().Msg("done sleeping, exiting now")

		return nil
	}), nil
}
