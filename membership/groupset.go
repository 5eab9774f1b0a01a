package membership

import (
	"github.com/jonwraymond/membercache/store"
)

// GroupSet indexes one logical set of group names two ways: an ordered
// sequence for iteration and a self-mapped membership map for O(1)
// containment tests. Both indices always agree. A GroupSet is never
// mutated after construction, so it is safe to share across goroutines
// and to use as an identity-keyed cache key.
type GroupSet struct {
	names   []string
	members map[string]string
}

func newGroupSet(names []string) *GroupSet {
	set := &GroupSet{
		names:   make([]string, 0, len(names)),
		members: make(map[string]string, len(names)),
	}
	for _, name := range names {
		set.names = append(set.names, name)
		set.members[name] = name
	}
	return set
}

// GroupSetFromNames builds a GroupSet directly from a list of group
// names, preserving order.
func GroupSetFromNames(names []string) *GroupSet {
	return newGroupSet(names)
}

// GroupSetFromAssignments builds a GroupSet from raw assignment
// records. A nil or empty Assignments yields an empty set.
func GroupSetFromAssignments(a *store.Assignments) *GroupSet {
	if a.Len() == 0 {
		return newGroupSet(nil)
	}
	names := make([]string, 0, len(a.Records))
	for _, rec := range a.Records {
		names = append(names, rec.Group)
	}
	return newGroupSet(names)
}

// Contains reports whether name is a member of the set.
func (s *GroupSet) Contains(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.members[name]
	return ok
}

// Names returns the group names in insertion order. The returned slice
// is a copy; callers may modify it freely.
func (s *GroupSet) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of names in the ordered sequence.
func (s *GroupSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}
