package lazydi

import (
	"sort"
)

type (
	// Overrides are caller supplied dependencies. They shadow registered injectables of the same name.
	Overrides map[string]any

	// Thunk defers the resolution of a single dependency until it is called.
	Thunk func() (any, error)

	// Deps is the dependency view handed to a factory. Nothing is resolved until a name is accessed.
	Deps struct {
		container *Container
		overrides Overrides
		tracker   *tracker
	}
)

func (c *Container) newDeps(overrides Overrides, t *tracker) Deps {
	return Deps{
		container: c,
		overrides: overrides,
		tracker:   t,
	}
}

// Get returns the override for name if any, otherwise resolves name against the container.
func (d Deps) Get(name string) (any, error) {
	if value, found := d.overrides[name]; found {
		return value, nil
	}

	return d.container.resolve(name, d.tracker)
}

// MustGet is like Get but panics with the resolution error. The panic is recovered by the
// container when it happens inside a factory.
func (d Deps) MustGet(name string) any {
	value, err := d.Get(name)
	if err != nil {
		panic(err)
	}

	return value
}

// Has reports whether name is overridden or registered, without resolving it.
func (d Deps) Has(name string) bool {
	if _, found := d.overrides[name]; found {
		return true
	}

	return d.container.store.contains(name)
}

// Names lists every name reachable from this view, sorted.
func (d Deps) Names() []string {
	names := d.container.store.listNames()
	for name := range d.overrides {
		if !d.container.store.contains(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return names
}

// Lazy returns a thunk resolving name on call.
func (d Deps) Lazy(name string) Thunk {
	return func() (any, error) {
		return d.Get(name)
	}
}

// Accessors returns one thunk per reachable name.
func (d Deps) Accessors() map[string]Thunk {
	names := d.Names()
	accessors := make(map[string]Thunk, len(names))
	for _, name := range names {
		accessors[name] = d.Lazy(name)
	}

	return accessors
}

// Call invokes an injected function as part of the current resolution, so that a cycle going
// through it is reported instead of waiting on itself.
// A function wrapped by another container starts a resolution of its own.
func (d Deps) Call(f *InjectedFunc, overrides Overrides, args ...any) (value any, err error) {
	defer recoverResolutionPanic(&err)

	if f.injectedBy(d.container) {
		return f.invoke(d.tracker, overrides, args...)
	}
	return f.invoke(nil, overrides, args...)
}
