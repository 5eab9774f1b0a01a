package loadcache

import "time"

// Policy configures caching behavior.
type Policy struct {
	// TTL is the validity window for cached values.
	// If zero, caching is disabled.
	TTL time.Duration

	// NegativeTTL is the validity window for cached absences.
	// If zero, TTL is used.
	NegativeTTL time.Duration

	// MaxEntries bounds the number of cached entries per class
	// (values and absences are bounded independently).
	// If zero, no bound is enforced.
	MaxEntries int
}

// DefaultPolicy returns the default caching policy.
// TTL: 5 minutes, NegativeTTL: 30 seconds, MaxEntries: 10000
func DefaultPolicy() Policy {
	return Policy{
		TTL:         5 * time.Minute,
		NegativeTTL: 30 * time.Second,
		MaxEntries:  10000,
	}
}

// ShouldCache returns true if caching is enabled by this policy.
func (p Policy) ShouldCache() bool {
	return p.TTL > 0
}

// EffectiveNegativeTTL returns the validity window for cached absences,
// falling back to TTL when unset.
func (p Policy) EffectiveNegativeTTL() time.Duration {
	if p.NegativeTTL > 0 {
		return p.NegativeTTL
	}
	return p.TTL
}
