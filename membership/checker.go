package membership

import (
	"context"

	"github.com/jonwraymond/membercache/observe"
)

// List is a caller-owned groups-to-check list. The decision cache keys
// on List identity, so a given logical list must be constructed once
// and reused; throwaway instances get no caching benefit and each seed
// a separate (weakly held) cache entry.
type List struct {
	groups []string
}

// NewList creates a groups-to-check list from the given names.
func NewList(groups ...string) *List {
	return &List{groups: append([]string(nil), groups...)}
}

// Groups returns the names in check order. The returned slice is a copy.
func (l *List) Groups() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.groups))
	copy(out, l.groups)
	return out
}

// Len returns the number of names in the list.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.groups)
}

// Checker answers whether any group in a check list appears in a
// GroupSet, memoized two levels deep: by check-list identity, then by
// group-set identity. Both levels cache false results as well as true,
// and both are weakly keyed.
type Checker struct {
	resolver  *Resolver
	decisions *weakMap[List, *weakMap[GroupSet, bool]]
	metrics   observe.Metrics
}

// NewChecker creates a Checker backed by the given resolver. The
// checker records decision-cache metrics through the resolver's
// metrics recorder.
func NewChecker(resolver *Resolver) (*Checker, error) {
	if resolver == nil {
		return nil, ErrNilResolver
	}
	return &Checker{
		resolver:  resolver,
		decisions: newWeakMap[List, *weakMap[GroupSet, bool]](),
		metrics:   resolver.metrics,
	}, nil
}

// InGroups reports whether any name in check is a member of set. An
// empty check list is false without iteration; an empty set is false
// for any list. The order of check affects only how many names are
// scanned on a cache miss, never the result.
func (c *Checker) InGroups(ctx context.Context, check *List, set *GroupSet) bool {
	if check.Len() == 0 || set == nil {
		return false
	}

	inner, _ := c.decisions.GetOrInsert(check, func() *weakMap[GroupSet, bool] {
		return newWeakMap[GroupSet, bool]()
	})

	decision, loaded := inner.GetOrInsert(set, func() bool {
		for _, name := range check.groups {
			if set.Contains(name) {
				return true
			}
		}
		return false
	})
	if loaded {
		c.metrics.RecordCacheHit(ctx, observe.CacheLevelDecision)
	} else {
		c.metrics.RecordCacheMiss(ctx, observe.CacheLevelDecision)
	}
	return decision
}

// PrincipalInGroups resolves the consumer's GroupSet and tests it
// against check. Resolution errors propagate with a false result.
func (c *Checker) PrincipalInGroups(ctx context.Context, check *List, consumerID string) (bool, error) {
	set, err := c.resolver.ConsumerGroups(ctx, consumerID)
	if err != nil {
		return false, err
	}
	return c.InGroups(ctx, check, set), nil
}
