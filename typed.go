package lazydi

import (
	"fmt"
	"reflect"
)

// Resolve resolves name and asserts its value is a T.
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T
	value, err := c.Resolve(name)
	if err != nil {
		return zero, err
	}
	return cast[T](name, value)
}

// MustResolve is like Resolve but panics on failure.
func MustResolve[T any](c *Container, name string) T {
	value, err := Resolve[T](c, name)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s:\n\t%v", name, err))
	}
	return value
}

// Get reads name from the dependency view and asserts its value is a T.
func Get[T any](deps Deps, name string) (T, error) {
	var zero T
	value, err := deps.Get(name)
	if err != nil {
		return zero, err
	}
	return cast[T](name, value)
}

// MustGet is like Get but panics with the error, to be used inside factories.
func MustGet[T any](deps Deps, name string) T {
	value, err := Get[T](deps, name)
	if err != nil {
		panic(err)
	}
	return value
}

// Call invokes an injected function and asserts its result is a T.
func Call[T any](f *InjectedFunc, overrides Overrides, args ...any) (T, error) {
	var zero T
	value, err := f.Call(overrides, args...)
	if err != nil {
		return zero, err
	}
	res, ok := value.(T)
	if !ok && value != nil {
		return zero, fmt.Errorf("injected function returned %T, expected %s", value, TypeOf[T]())
	}
	return res, nil
}

// FactoryOf adapts a typed factory without going through reflection.
func FactoryOf[T any](fn func(deps Deps) (T, error)) Factory {
	return func(deps Deps) (any, error) {
		return fn(deps)
	}
}

// TypeOf returns the reflect.Type of I, interfaces included.
func TypeOf[I any]() reflect.Type {
	var i I
	t := reflect.TypeOf(i)
	if t == nil {
		t = reflect.TypeOf((*I)(nil)).Elem()
	}
	return t
}

func cast[T any](name string, value any) (T, error) {
	var zero T
	if value == nil {
		if nilable(TypeOf[T]()) {
			return zero, nil
		}
		return zero, fmt.Errorf("component %s is nil, expected %s", name, TypeOf[T]())
	}
	res, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("component %s is %T, expected %s", name, value, TypeOf[T]())
	}
	return res, nil
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
