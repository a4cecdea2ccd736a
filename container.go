package lazydi

import (
	"fmt"
	"sort"
	"sync"

	"github.com/a-peyrard/lazydi/config"
	"github.com/a-peyrard/lazydi/logging"
	"github.com/a-peyrard/lazydi/option"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

type (
	// Container is a registry of named injectables, resolved lazily and at most once.
	Container struct {
		id    uuid.UUID
		store *store

		flights singleflight.Group
		// goroutine id -> *tracker, the chain each goroutine is currently resolving
		active sync.Map

		logger        zerolog.Logger
		introspection bool
	}

	// Options configures a container, see New.
	Options struct {
		introspection bool
		logger        zerolog.Logger
		level         *zerolog.Level
	}
)

// WithIntrospection exposes the developer accessors returned by Container.Introspect.
func WithIntrospection(enabled bool) option.Option[Options] {
	return func(opts *Options) {
		opts.introspection = enabled
	}
}

// WithLogger sets the logger of the container, zerolog.Nop() by default.
func WithLogger(logger zerolog.Logger) option.Option[Options] {
	return func(opts *Options) {
		opts.logger = logger
	}
}

// WithSettings applies settings loaded at startup, see config.Load.
func WithSettings(settings config.Settings) option.Option[Options] {
	return func(opts *Options) {
		opts.introspection = settings.Introspection
		if level, err := logging.ParseLevel(settings.LogLevel); err == nil && settings.LogLevel != "" {
			opts.level = &level
		}
	}
}

// New creates an empty container.
func New(opts ...option.Option[Options]) *Container {
	options := option.Build(
		&Options{
			logger: zerolog.Nop(),
		},
		opts...,
	)

	logger := options.logger
	if options.level != nil {
		logger = logger.Level(*options.level)
	}

	return &Container{
		id:            uuid.New(),
		store:         newStore(),
		logger:        logger,
		introspection: options.introspection,
	}
}

// NewWith creates a container holding the given registrations.
func NewWith(collection Collection, opts ...option.Option[Options]) *Container {
	return New(opts...).AddCollection(collection)
}

// ID returns the identity of the container.
func (c *Container) ID() uuid.UUID {
	return c.id
}

// Add registers init under name, replacing any previous registration of that name.
//
// init can be:
//   - a function, which becomes the factory of the injectable: Factory, func(Deps) (any, error),
//     func(Deps) any, func() (any, error), func() any, an *InjectedFunc, or any typed variant such as
//     func(Deps) (*Service, error);
//   - a FactoryInit, whose Factory field is one of the above;
//   - a ValueInit, whose Value is registered as is;
//   - anything else, registered as is.
func (c *Container) Add(name string, init any) *Container {
	entry := newInjectable(name, init)
	c.store.put(entry)

	c.logger.Debug().
		Str("name", name).
		Bool("lazy", entry.factory != nil).
		Msg("registered injectable")

	return c
}

// AddCollection registers every entry, in order.
func (c *Container) AddCollection(collection Collection) *Container {
	for _, entry := range collection {
		c.Add(entry.Name, entry.Init)
	}
	return c
}

// AddMap registers every entry of the map, in name order.
func (c *Container) AddMap(inits map[string]any) *Container {
	names := make([]string, 0, len(inits))
	for name := range inits {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c.Add(name, inits[name])
	}
	return c
}

// Resolve returns the value of the injectable registered under name, invoking its factory on first use.
//
// Fails with NotRegistered if the name is unknown, CouldNotResolveDeps if the factory fails.
// Failures are not cached, the next call invokes the factory again.
func (c *Container) Resolve(name string) (any, error) {
	return c.resolve(name, nil)
}

// MustResolve is like Resolve but panics on failure.
func (c *Container) MustResolve(name string) any {
	value, err := c.Resolve(name)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s:\n\t%v", name, err))
	}
	return value
}
