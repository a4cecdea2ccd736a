package lazydi

type (
	// tracker is the chain of names currently being resolved, innermost first.
	// It is immutable: entering a name returns a new tracker, so a chain can be shared between goroutines.
	tracker struct {
		name   string
		parent *tracker
	}
)

// enter pushes name on the chain, failing if name is already in progress.
func (t *tracker) enter(name string) (*tracker, error) {
	for cur := t; cur != nil; cur = cur.parent {
		if cur.name == name {
			return nil, circularDependency(name, t.cycle(name))
		}
	}

	return &tracker{name: name, parent: t}, nil
}

// cycle returns the part of the chain starting at name, closed by name again.
func (t *tracker) cycle(name string) []string {
	stack := t.stack()
	for i, n := range stack {
		if n == name {
			return append(stack[i:], name)
		}
	}

	return append(stack, name)
}

// stack returns the chain outermost first.
func (t *tracker) stack() []string {
	depth := 0
	for cur := t; cur != nil; cur = cur.parent {
		depth++
	}
	stack := make([]string, depth)
	for cur := t; cur != nil; cur = cur.parent {
		depth--
		stack[depth] = cur.name
	}

	return stack
}
