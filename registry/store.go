package registry

import "sort"

// Store is an immutable snapshot of the registry export: fully-qualified
// type name to schema. It is fetched once per session and never mutated
// afterwards, so concurrent walks may share one Store freely.
type Store struct {
	types map[string]*Schema
}

// NewStore builds a store over the given schemas. The map is retained,
// not copied; callers hand over ownership.
func NewStore(types map[string]*Schema) *Store {
	if types == nil {
		types = map[string]*Schema{}
	}
	return &Store{types: types}
}

// Get looks up a schema by fully-qualified type name.
func (s *Store) Get(typeName string) (*Schema, bool) {
	sch, ok := s.types[typeName]
	return sch, ok
}

// Len returns the number of registered types.
func (s *Store) Len() int { return len(s.types) }

// TypeNames returns every registered type name in sorted order.
func (s *Store) TypeNames() []string {
	names := make([]string, 0, len(s.types))
	for name := range s.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
