package domain

// NameSet is a string set that preserves insertion order. Renderers rely on
// the order selections were admitted in, so a plain map is not enough.
type NameSet struct {
	order   []string
	members map[string]struct{}
}

func NewNameSet(names ...string) *NameSet {
	set := &NameSet{members: make(map[string]struct{}, len(names))}
	for _, name := range names {
		set.Add(name)
	}
	return set
}

// Add inserts name and reports whether it was newly added.
func (s *NameSet) Add(name string) bool {
	if _, ok := s.members[name]; ok {
		return false
	}
	s.members[name] = struct{}{}
	s.order = append(s.order, name)
	return true
}

// Remove deletes name and reports whether it was present.
func (s *NameSet) Remove(name string) bool {
	if _, ok := s.members[name]; !ok {
		return false
	}
	delete(s.members, name)
	for i, existing := range s.order {
		if existing == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *NameSet) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.members[name]
	return ok
}

func (s *NameSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Names returns the members in insertion order. The slice is a copy.
func (s *NameSet) Names() []string {
	if s == nil || len(s.order) == 0 {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Clone returns an independent copy with the same order.
func (s *NameSet) Clone() *NameSet {
	if s == nil {
		return NewNameSet()
	}
	return NewNameSet(s.order...)
}
