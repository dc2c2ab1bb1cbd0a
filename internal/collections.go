package internal

import "github.com/lychee-technology/formdesk"

// Set is a collection of unique items backed by a map.
type Set[T comparable] struct {
	items map[T]struct{}
}

// NewSet creates a set holding the given items.
func NewSet[T comparable](items ...T) *Set[T] {
	s := &Set[T]{items: make(map[T]struct{}, len(items))}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add inserts an item; adding an existing item has no effect.
func (s *Set[T]) Add(item T) {
	s.items[item] = struct{}{}
}

// Contains checks if an item exists in the set.
func (s *Set[T]) Contains(item T) bool {
	_, exists := s.items[item]
	return exists
}

// Size returns the number of items in the set.
func (s *Set[T]) Size() int {
	return len(s.items)
}

// fieldNames collects the names currently used on a field list.
func fieldNames(fields []formdesk.Field) *Set[string] {
	names := NewSet[string]()
	for _, f := range fields {
		names.Add(f.Name)
	}
	return names
}
