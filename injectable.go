package lazydi

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

type (
	// Factory produces the value of an injectable from its dependency view.
	Factory func(deps Deps) (any, error)

	// FactoryInit registers Factory as a lazy producer. Factory may be any function shape
	// accepted by Container.Add.
	FactoryInit struct {
		Factory any
	}

	// ValueInit registers Value as an already resolved injectable, even when Value is a function.
	ValueInit struct {
		Value any
	}

	// Entry is one registration of a Collection.
	Entry struct {
		Name string
		Init any
	}

	// Collection is an ordered list of registrations. Later entries win over earlier ones with the same name.
	Collection []Entry

	// InjectableInfo describes the current state of an injectable.
	InjectableInfo struct {
		Name       string
		HasFactory bool
		Injected   bool
		State      State
		Value      any
		Err        error
	}

	// State is the resolution state of an injectable.
	State int

	factory struct {
		call func(deps Deps) (any, error)

		// injected is set when the factory is a function wrapped by InjectFunction.
		injected *InjectedFunc
	}

	injectable struct {
		name    string
		factory *factory

		mu    sync.RWMutex
		state State
		value any
		err   error
	}
)

const (
	Unresolved State = iota
	Resolved
	// Failed means the last attempt failed. The factory is invoked again on the next resolution.
	Failed
)

var (
	depsType  = reflect.TypeOf(Deps{})
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

func (s State) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// newInjectable normalises a registration. Functions are always producers unless wrapped in a ValueInit.
func newInjectable(name string, init any) *injectable {
	switch v := init.(type) {
	case ValueInit:
		return eagerInjectable(name, v.Value)
	case *ValueInit:
		if v != nil {
			return eagerInjectable(name, v.Value)
		}
	case FactoryInit:
		return lazyInjectable(name, factoryFromInit(v.Factory))
	case *FactoryInit:
		if v != nil {
			return lazyInjectable(name, factoryFromInit(v.Factory))
		}
	}

	if f, ok := toFactory(init); ok {
		return lazyInjectable(name, f)
	}
	return eagerInjectable(name, init)
}

func eagerInjectable(name string, value any) *injectable {
	return &injectable{
		name:  name,
		state: Resolved,
		value: value,
	}
}

func lazyInjectable(name string, f *factory) *injectable {
	return &injectable{
		name:    name,
		factory: f,
		state:   Unresolved,
	}
}

func factoryFromInit(init any) *factory {
	if f, ok := toFactory(init); ok {
		return f
	}
	return &factory{
		call: func(Deps) (any, error) {
			return nil, fmt.Errorf("factory of type %T is not a function", init)
		},
	}
}

func toFactory(init any) (*factory, bool) {
	switch f := init.(type) {
	case nil:
		return nil, false
	case *InjectedFunc:
		if f == nil {
			return nil, false
		}
		return &factory{
			call: func(deps Deps) (any, error) {
				return f.fn(deps)
			},
			injected: f,
		}, true
	case Factory:
		return &factory{call: f}, f != nil
	case func(Deps) (any, error):
		return &factory{call: f}, f != nil
	case func(Deps) any:
		return &factory{
			call: func(deps Deps) (any, error) {
				return f(deps), nil
			},
		}, f != nil
	case func() (any, error):
		return &factory{
			call: func(Deps) (any, error) {
				return f()
			},
		}, f != nil
	case func() any:
		return &factory{
			call: func(Deps) (any, error) {
				return f(), nil
			},
		}, f != nil
	}

	fn := reflect.ValueOf(init)
	if fn.Kind() != reflect.Func {
		return nil, false
	}
	return &factory{call: reflectFactory(fn)}, true
}

// reflectFactory adapts typed functions such as func(Deps) (*Service, error) or func() *Service.
func reflectFactory(fn reflect.Value) func(Deps) (any, error) {
	return func(deps Deps) (any, error) {
		if fn.IsNil() {
			return nil, errors.New("factory is a nil function")
		}
		t := fn.Type()
		if err := checkFactorySignature(t); err != nil {
			return nil, fmt.Errorf("unsupported factory signature %s:\n\t%w", t, err)
		}

		var in []reflect.Value
		if t.NumIn() == 1 {
			in = []reflect.Value{reflect.ValueOf(deps)}
		}
		out := fn.Call(in)
		if len(out) == 2 && !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}

		return out[0].Interface(), nil
	}
}

func checkFactorySignature(t reflect.Type) error {
	if t.IsVariadic() {
		return errors.New("factory cannot be variadic")
	}
	if t.NumIn() > 1 || (t.NumIn() == 1 && t.In(0) != depsType) {
		return errors.New("factory must either take no parameter or a single Deps parameter")
	}
	if t.NumOut() != 1 && t.NumOut() != 2 {
		return errors.New("factory must either return the instance and an error, or just the instance")
	}
	if t.NumOut() == 2 && t.Out(1) != errorType {
		return errors.New("if factory returns two elements, it must return an error as the second element")
	}

	return nil
}

func (i *injectable) resolved() (any, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.value, i.state == Resolved
}

func (i *injectable) resolve(value any) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.value = value
	i.state = Resolved
	i.err = nil
}

func (i *injectable) fail(err error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.state = Failed
	i.err = err
}

func (i *injectable) info() InjectableInfo {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return InjectableInfo{
		Name:       i.name,
		HasFactory: i.factory != nil,
		Injected:   i.factory != nil && i.factory.injected != nil,
		State:      i.state,
		Value:      i.value,
		Err:        i.err,
	}
}
