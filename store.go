package lazydi

import (
	"sort"
	"sync"
)

// store maps names to injectables.
type store struct {
	inner sync.Map
}

func newStore() *store {
	return &store{}
}

func (s *store) put(entry *injectable) {
	s.inner.Store(entry.name, entry)
}

func (s *store) get(name string) (entry *injectable, found bool) {
	raw, found := s.inner.Load(name)
	if found {
		return raw.(*injectable), true
	}

	return nil, false
}

func (s *store) contains(name string) bool {
	_, found := s.inner.Load(name)
	return found
}

// listNames returns the registered names, sorted.
func (s *store) listNames() []string {
	names := make([]string, 0)
	s.inner.Range(func(name, _ any) bool {
		names = append(names, name.(string))
		return true // continue iteration
	})
	sort.Strings(names)

	return names
}

// snapshot describes every injectable of the store, sorted by name.
func (s *store) snapshot() []InjectableInfo {
	names := s.listNames()
	infos := make([]InjectableInfo, 0, len(names))
	for _, name := range names {
		if entry, found := s.get(name); found {
			infos = append(infos, entry.info())
		}
	}

	return infos
}
