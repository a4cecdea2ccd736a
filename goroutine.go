package lazydi

import (
	"bytes"
	"runtime"
	"strconv"
)

var goroutinePrefix = []byte("goroutine ")

// goroutineID returns the id of the calling goroutine, read from the header of its stack trace:
// "goroutine 18 [running]:".
func goroutineID() uint64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	buf = bytes.TrimPrefix(buf, goroutinePrefix)
	if i := bytes.IndexByte(buf, ' '); i >= 0 {
		buf = buf[:i]
	}
	id, err := strconv.ParseUint(string(buf), 10, 64)
	if err != nil {
		panic("cannot read goroutine id from stack: " + err.Error())
	}

	return id
}

// activeTracker returns the chain being resolved by the calling goroutine, nil if it is not inside a factory
// of this container.
func (c *Container) activeTracker() *tracker {
	raw, found := c.active.Load(goroutineID())
	if !found {
		return nil
	}

	return raw.(*tracker)
}

// track records t as the chain resolved by the calling goroutine, until the returned func is called.
func (c *Container) track(t *tracker) (untrack func()) {
	id := goroutineID()
	previous, hadPrevious := c.active.Swap(id, t)

	return func() {
		if hadPrevious {
			c.active.Store(id, previous)
			return
		}
		c.active.Delete(id)
	}
}
