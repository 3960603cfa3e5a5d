package usecase

import "sort"

// SaveSet is the set of listing IDs the user has marked as favorites.
// Membership does not depend on whether a listing is currently visible.
type SaveSet struct {
	ids map[string]struct{}
}

// NewSaveSet returns an empty set.
func NewSaveSet() *SaveSet {
	return &SaveSet{ids: make(map[string]struct{})}
}

// Toggle adds id if absent and removes it if present. It returns the new membership.
func (s *SaveSet) Toggle(id string) bool {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Contains reports whether id is saved.
func (s *SaveSet) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len is the number of saved listings.
func (s *SaveSet) Len() int { return len(s.ids) }

// IDs returns the saved IDs in sorted order.
func (s *SaveSet) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
