package lazydi

import (
	"github.com/google/uuid"
)

type (
	// InjectableFunc is a function receiving a dependency view plus positional arguments.
	InjectableFunc func(deps Deps, args ...any) (any, error)

	// InjectedFunc is a function bound to the dependency view of the container that wrapped it.
	//
	// Registered as a factory in that same container, it is invoked without any injected view since it
	// builds its own. Registered in another container, it is a plain factory receiving that container's view.
	InjectedFunc struct {
		owner       *Container
		containerID uuid.UUID
		fn          InjectableFunc
	}
)

// InjectFunction wraps fn so that calling it only requires the dependencies the caller wants to override.
func (c *Container) InjectFunction(fn InjectableFunc) *InjectedFunc {
	return &InjectedFunc{
		owner:       c,
		containerID: c.id,
		fn:          fn,
	}
}

// Call invokes the wrapped function with a view where overrides win over the container's injectables.
// A nil overrides map means every dependency comes from the container.
//
// From inside a factory, prefer Deps.Call: the chain of names being resolved then follows the call
// even if it moves to another goroutine.
func (f *InjectedFunc) Call(overrides Overrides, args ...any) (value any, err error) {
	defer recoverResolutionPanic(&err)

	return f.invoke(nil, overrides, args...)
}

// ContainerID returns the identity of the container that wrapped the function.
func (f *InjectedFunc) ContainerID() uuid.UUID {
	return f.containerID
}

func (f *InjectedFunc) invoke(t *tracker, overrides Overrides, args ...any) (any, error) {
	return f.fn(f.owner.newDeps(overrides, t), args...)
}

func (f *InjectedFunc) injectedBy(c *Container) bool {
	return f.containerID == c.id
}

// recoverResolutionPanic turns a panic carrying an *Error (see Deps.MustGet) back into a returned error.
// Any other panic goes on.
func recoverResolutionPanic(err *error) {
	if r := recover(); r != nil {
		if e, ok := asError(r); ok {
			*err = e
			return
		}
		panic(r)
	}
}
