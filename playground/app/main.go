package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/a-peyrard/lazydi"
	"github.com/a-peyrard/lazydi/config"
	"github.com/a-peyrard/lazydi/debughttp"
	"github.com/a-peyrard/lazydi/logging"
	"github.com/a-peyrard/lazydi/playground/app/hello"
	"github.com/a-peyrard/lazydi/runner"
)

// -------------------------------------- PLAYGROUND CODE --------------------------------------
// this is just a playground for the container, to illustrate its API in a real application

func newDebugServer(container *lazydi.Container, addr string) (runner.Runnable, error) {
	handler, err := debughttp.NewHandler(container)
	if err != nil {
		return nil, err
	}
	server := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}

	return runner.RunnableFunc(func(ctx context.Context) error {
		go func() {
			<-ctx.Done()
			_ = server.Close()
		}()
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}), nil
}

func run() error {
	settings, err := config.LoadSettings(config.WithDotEnv(dotEnvFiles()...))
	if err != nil {
		return fmt.Errorf("failed to load settings:\n\t%w", err)
	}
	logger := logging.New(settings.LogLevel)

	container := lazydi.New(
		lazydi.WithLogger(*logger),
		lazydi.WithSettings(*settings),
	)
	container.Add("logger", lazydi.ValueInit{Value: logger})
	hello.Register(container)

	runnables := []string{"hello.runner"}
	if settings.Introspection && settings.DebugAddr != "" {
		container.Add("debug.server", func() (runner.Runnable, error) {
			return newDebugServer(container, settings.DebugAddr)
		})
		runnables = append(runnables, "debug.server")
		logger.Info().Msgf("serving introspection on %s", settings.DebugAddr)
	}

	if settings.Introspection {
		logger.Debug().Msgf("\n\nhere is what we have in store before running:\n%s", container.Describe())
	}

	ctx, cancel := runner.WithSignalCancel(context.Background())
	defer cancel()
	if err := runner.RunResolved(ctx, container, runnables...); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("error running app:\n\t%w", err)
	}

	if settings.Introspection {
		logger.Debug().Msgf("\n\nhere is what we have in store at the end:\n%s", container.Describe())
	}
	logger.Info().Msg("bye.")

	return nil
}

func dotEnvFiles() []string {
	if _, err := os.Stat(".env"); err == nil {
		return []string{".env"}
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
