package membership

import (
	"context"

	"github.com/jonwraymond/membercache/loadcache"
	"github.com/jonwraymond/membercache/observe"
	"github.com/jonwraymond/membercache/store"
)

// EmptyAssignments is the shared sentinel for "this consumer has no
// group assignments". Exactly one instance exists for the lifetime of
// the process; it is never mutated and never copied. Returning the
// sentinel instead of a fresh empty allocation gives every negative
// result the same identity, which downstream identity-keyed caches
// depend on.
var EmptyAssignments = &store.Assignments{}

// Resolver resolves a consumer's group assignments through the load
// cache and memoizes the derived GroupSet per raw-result identity.
//
// Contract:
//   - Concurrency: safe for concurrent use. Derivation runs at most once
//     per raw-result identity; every caller observes the same GroupSet
//     instance for a given raw result.
//   - Errors: backing-store errors propagate unchanged and are never
//     masked as "no groups".
type Resolver struct {
	store   store.GroupStore
	cache   loadcache.Cache
	derived *weakMap[store.Assignments, *GroupSet]
	mw      *observe.Middleware
	metrics observe.Metrics
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithMiddleware sets the observability middleware wrapped around the
// backing-store loader.
func WithMiddleware(mw *observe.Middleware) ResolverOption {
	return func(r *Resolver) {
		if mw != nil {
			r.mw = mw
		}
	}
}

// WithMetrics sets the metrics recorder for cache hit/miss/negative counts.
func WithMetrics(m observe.Metrics) ResolverOption {
	return func(r *Resolver) {
		if m != nil {
			r.metrics = m
		}
	}
}

// NewResolver creates a Resolver over the given store and load cache.
func NewResolver(st store.GroupStore, cache loadcache.Cache, opts ...ResolverOption) (*Resolver, error) {
	if st == nil {
		return nil, ErrNilStore
	}
	if cache == nil {
		return nil, ErrNilCache
	}

	r := &Resolver{
		store:   st,
		cache:   cache,
		derived: newWeakMap[store.Assignments, *GroupSet](),
		mw:      observe.NoopMiddleware(),
		metrics: observe.NoopMetrics(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// RawGroups returns the consumer's assignment records through the load
// cache. A consumer with no assignments yields EmptyAssignments, never
// a fresh empty value. Loader and store errors are returned verbatim;
// no retries are performed here.
func (r *Resolver) RawGroups(ctx context.Context, consumerID string) (*store.Assignments, error) {
	key := r.store.CacheKey(consumerID)

	load := r.mw.Wrap(
		observe.LookupMeta{Component: "resolver", Operation: "raw_groups"},
		func(ctx context.Context) (any, error) {
			records, err := r.store.FindGroupAssignments(ctx, consumerID)
			if err != nil {
				return nil, err
			}
			if len(records) == 0 {
				// Cached as a successful absence; translated to
				// the sentinel on the way out.
				return nil, nil
			}
			return &store.Assignments{Records: records}, nil
		},
	)

	value, err := r.cache.GetOrLoad(ctx, key, loadcache.Loader(load))
	if err != nil {
		return nil, err
	}
	if value == nil {
		r.metrics.RecordNegative(ctx)
		return EmptyAssignments, nil
	}

	assignments, ok := value.(*store.Assignments)
	if !ok {
		return nil, ErrUnexpectedCacheValue
	}
	return assignments, nil
}

// ConsumerGroups returns the consumer's GroupSet, deriving it from the
// raw assignments at most once per raw-result identity. All consumers
// with no assignments share one canonical empty GroupSet, keyed by the
// EmptyAssignments sentinel.
func (r *Resolver) ConsumerGroups(ctx context.Context, consumerID string) (*GroupSet, error) {
	raw, err := r.RawGroups(ctx, consumerID)
	if err != nil {
		return nil, err
	}
	return r.groupSetFor(ctx, raw), nil
}

// groupSetFor memoizes GroupSet derivation by raw-result identity.
// Derivation runs at most once per identity.
func (r *Resolver) groupSetFor(ctx context.Context, raw *store.Assignments) *GroupSet {
	set, loaded := r.derived.GetOrInsert(raw, func() *GroupSet {
		return GroupSetFromAssignments(raw)
	})
	if loaded {
		r.metrics.RecordCacheHit(ctx, observe.CacheLevelGroupSet)
	} else {
		r.metrics.RecordCacheMiss(ctx, observe.CacheLevelGroupSet)
	}
	return set
}

// Invalidate drops any cached raw-groups entry for the consumer. The
// derived GroupSet for the old raw result expires with its key once the
// load cache releases it.
func (r *Resolver) Invalidate(ctx context.Context, consumerID string) error {
	return r.cache.Invalidate(ctx, r.store.CacheKey(consumerID))
}
