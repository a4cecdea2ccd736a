package lazydi

import (
	"fmt"
	"strings"
)

type (
	// Introspector gives white-box access to a container. It has no effect on resolution.
	Introspector struct {
		container *Container
	}

	// Getter resolves a single injectable.
	Getter struct {
		Get func() (any, error)
	}
)

// Introspect returns the developer accessors, only if the container was built with WithIntrospection(true).
func (c *Container) Introspect() (*Introspector, bool) {
	if !c.introspection {
		return nil, false
	}
	return &Introspector{container: c}, true
}

// Injectables describes the content of the store.
func (i *Introspector) Injectables() []InjectableInfo {
	return i.container.store.snapshot()
}

// Injectable describes a single injectable.
func (i *Introspector) Injectable(name string) (InjectableInfo, bool) {
	entry, found := i.container.store.get(name)
	if !found {
		return InjectableInfo{}, false
	}
	return entry.info(), true
}

// Getter returns a resolver for name. Nothing is resolved until Get is called.
func (i *Introspector) Getter(name string) Getter {
	return Getter{
		Get: func() (any, error) {
			return i.container.Resolve(name)
		},
	}
}

// Describe dumps the content of the container.
func (c *Container) Describe() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("* Container %s\n", c.id))
	b.WriteString("* Injectables:\n")
	for _, info := range c.store.snapshot() {
		kind := "value"
		switch {
		case info.Injected:
			kind = "injected function"
		case info.HasFactory:
			kind = "factory"
		}
		b.WriteString(fmt.Sprintf("\t- %s (%s, %s)\n", info.Name, kind, info.State))
		switch info.State {
		case Resolved:
			b.WriteString(fmt.Sprintf("\t\tvalue: %v\n", info.Value))
		case Failed:
			b.WriteString(fmt.Sprintf("\t\terror: %v\n", info.Err))
		}
	}
	return b.String()
}
