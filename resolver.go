package lazydi

import (
	"errors"
	"fmt"
	"time"
)

func (c *Container) resolve(name string, t *tracker) (any, error) {
	entry, found := c.store.get(name)
	if !found {
		return nil, notRegistered(name)
	}
	if value, ok := entry.resolved(); ok {
		return value, nil
	}
	if entry.factory == nil {
		return nil, couldNotResolveDeps(name, nil)
	}

	if t == nil {
		// called outside a dependency view, for instance Container.Resolve from inside a factory
		t = c.activeTracker()
	}
	t, err := t.enter(name)
	if err != nil {
		return nil, err
	}

	// only one goroutine runs the factory, the others wait for its outcome
	value, err, _ := c.flights.Do(name, func() (any, error) {
		return c.instantiate(entry, t)
	})

	return value, err
}

func (c *Container) instantiate(entry *injectable, t *tracker) (any, error) {
	// the value might have been stored while we were waiting to enter the flight
	if value, ok := entry.resolved(); ok {
		return value, nil
	}

	start := time.Now()
	untrack := c.track(t)
	value, err := c.invoke(entry.factory, t)
	untrack()
	if err != nil {
		err = c.wrapFailure(entry.name, err)
		entry.fail(err)
		return nil, err
	}
	entry.resolve(value)

	c.logger.Debug().
		Str("name", entry.name).
		Dur("duration", time.Since(start)).
		Msg("resolved injectable")

	return value, nil
}

func (c *Container) invoke(f *factory, t *tracker) (value any, err error) {
	// panic recovery, factories can panic, either on their own or through Deps.MustGet
	defer func() {
		if r := recover(); r != nil {
			if e, ok := asError(r); ok {
				err = e
				return
			}
			if e, ok := r.(error); ok {
				err = fmt.Errorf("panic calling factory: %w", e)
				return
			}
			err = fmt.Errorf("panic calling factory: %v", r)
		}
	}()

	if f.injected != nil && f.injected.injectedBy(c) {
		return f.injected.invoke(t, nil)
	}

	return f.call(c.newDeps(nil, t))
}

// wrapFailure lets the container's own errors through, apart from a cycle closing on name,
// and wraps anything else exactly once.
func (c *Container) wrapFailure(name string, err error) error {
	var own *Error
	if errors.As(err, &own) {
		if own.Kind == CircularDependency && own.Name == name {
			return couldNotResolveDeps(name, err)
		}
		return err
	}

	c.logger.Error().
		Err(err).
		Str("name", name).
		Msg("factory failed")

	return couldNotResolveDeps(name, err)
}

func asError(r any) (error, bool) {
	err, ok := r.(error)
	if !ok {
		return nil, false
	}
	var own *Error
	if !errors.As(err, &own) {
		return nil, false
	}

	return err, true
}
