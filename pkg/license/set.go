package license

// Set is an insertion-ordered set of license identifiers. A nil *Set is
// empty for reads.
type Set struct {
	items map[string]struct{}
	order []string
}

// NewSet returns a set holding ids.
func NewSet(ids ...string) *Set {
	s := &Set{items: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id and reports whether it was new.
func (s *Set) Add(id string) bool {
	if s.items == nil {
		s.items = make(map[string]struct{})
	}
	if _, ok := s.items[id]; ok {
		return false
	}
	s.items[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

// Contains reports whether id is in the set.
func (s *Set) Contains(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.items[id]
	return ok
}

// Len returns the number of identifiers.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Items returns the identifiers in insertion order.
func (s *Set) Items() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}
