package manifest

// Set is an ordered, read-only collection of manifests keyed by id.
//
// Iteration order is the order in which ids were first added. Adding a
// manifest whose id is already present replaces the earlier manifest but
// keeps the earlier position: last loaded wins, first position stays.
type Set struct {
	ids  []string
	byID map[string]*Manifest
}

// NewSet builds a Set from ms in order, applying the last-wins policy on id
// collisions.
func NewSet(ms ...*Manifest) *Set {
	s := &Set{byID: make(map[string]*Manifest, len(ms))}
	for _, m := range ms {
		s.add(m)
	}
	return s
}

func (s *Set) add(m *Manifest) (replaced bool) {
	if _, ok := s.byID[m.ID]; ok {
		s.byID[m.ID] = m
		return true
	}
	s.ids = append(s.ids, m.ID)
	s.byID[m.ID] = m
	return false
}

// Len returns the number of manifests.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// IDs returns a copy of the ids in iteration order.
func (s *Set) IDs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Get returns the manifest for id.
func (s *Set) Get(id string) (*Manifest, bool) {
	if s == nil {
		return nil, false
	}
	m, ok := s.byID[id]
	return m, ok
}

// Each calls fn for every manifest in iteration order until fn returns false.
func (s *Set) Each(fn func(id string, m *Manifest) bool) {
	if s == nil {
		return
	}
	for _, id := range s.ids {
		if !fn(id, s.byID[id]) {
			return
		}
	}
}
