// Package foldset provides case-insensitive string comparison and an
// insertion-ordered set keyed on the folded form. The directory and the
// contact book share it so their uniqueness rules cannot drift apart.
package foldset

import "strings"

// Key returns the canonical comparison form of s: trimmed and lower-cased.
func Key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Equal reports whether a and b are the same string under Key folding.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}

// Set is an ordered collection of strings with case-insensitive membership.
// Items keep their original spelling and insertion order.
type Set struct {
	items []string
	index map[string]struct{}
}

// New builds a set from items, dropping case-insensitive duplicates.
func New(items ...string) *Set {
	s := &Set{index: make(map[string]struct{}, len(items))}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Has reports case-insensitive membership.
func (s *Set) Has(item string) bool {
	_, ok := s.index[Key(item)]
	return ok
}

// Add appends item unless a case-insensitive equal is already present.
// It reports whether the item was actually added.
func (s *Set) Add(item string) bool {
	k := Key(item)
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = struct{}{}
	s.items = append(s.items, item)
	return true
}

// Items returns the members in insertion order. The caller owns the slice.
func (s *Set) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of members.
func (s *Set) Len() int { return len(s.items) }
