package lazydi

import (
	"fmt"
	"strings"
)

// Kind classifies the failures raised by a Container.
type Kind int

const (
	// NotRegistered is raised when a name is absent from the store. It never carries a cause.
	NotRegistered Kind = iota + 1
	// CouldNotResolveDeps is raised when a factory invocation fails.
	CouldNotResolveDeps
	// CircularDependency is raised when a name is requested again while it is still being resolved.
	CircularDependency
)

var (
	// ErrNotRegistered matches any NotRegistered error with errors.Is.
	ErrNotRegistered = &Error{Kind: NotRegistered}
	// ErrCouldNotResolveDeps matches any CouldNotResolveDeps error with errors.Is.
	ErrCouldNotResolveDeps = &Error{Kind: CouldNotResolveDeps}
	// ErrCircularDependency matches any CircularDependency error with errors.Is.
	ErrCircularDependency = &Error{Kind: CircularDependency}
)

type (
	// Error is the failure value of the container.
	Error struct {
		Kind  Kind
		Name  string
		Cause error

		// Path holds the resolution chain that closed a cycle, only set for CircularDependency.
		Path []string
	}
)

func (k Kind) String() string {
	switch k {
	case NotRegistered:
		return "NotRegistered"
	case CouldNotResolveDeps:
		return "CouldNotResolveDeps"
	case CircularDependency:
		return "CircularDependency"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(", ")
	b.WriteString(e.Name)
	if len(e.Path) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(e.Path, " -> "))
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(":\n\t")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind. An empty target name matches any name.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Name == "" || t.Name == e.Name)
}

func notRegistered(name string) *Error {
	return &Error{Kind: NotRegistered, Name: name}
}

func couldNotResolveDeps(name string, cause error) *Error {
	return &Error{Kind: CouldNotResolveDeps, Name: name, Cause: cause}
}

func circularDependency(name string, path []string) *Error {
	return &Error{Kind: CircularDependency, Name: name, Path: path}
}
