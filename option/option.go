// Package option implements variadic functional options.
package option

// Option mutates a set of options of type T.
type Option[T any] func(opts *T)

// Build applies opts, in order, on top of defaults and returns defaults.
func Build[T any](defaults *T, opts ...Option[T]) *T {
	for _, opt := range opts {
		if opt != nil {
			opt(defaults)
		}
	}
	return defaults
}

// Combine merges several options into a single one.
func Combine[T any](opts ...Option[T]) Option[T] {
	return func(target *T) {
		Build(target, opts...)
	}
}
